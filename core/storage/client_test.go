package storage_test

import (
	"testing"

	"storage-kit/core/account"
	"storage-kit/core/policy"
	"storage-kit/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	// base64 of "testsecret"
	acct := account.New("testaccount", "dGVzdHNlY3JldA==")

	t.Run("Azure", func(t *testing.T) {
		client, err := storage.NewClient(storage.Config{Driver: storage.DriverAzure}, acct, policy.Default())
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("AzureDefaultDriver", func(t *testing.T) {
		client, err := storage.NewClient(storage.Config{}, acct, policy.Default())
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("AzureBadKey", func(t *testing.T) {
		client, err := storage.NewClient(storage.Config{Driver: storage.DriverAzure}, account.New("a", "%%%"), policy.Default())
		assert.Error(t, err)
		assert.Nil(t, client)
	})

	t.Run("AzureSASOnly", func(t *testing.T) {
		sasAcct, err := account.Parse("BlobEndpoint=https://a.blob.core.windows.net;SharedAccessSignature=sv=2020&sig=abc")
		require.NoError(t, err)

		client, err := storage.NewClient(storage.Config{Driver: storage.DriverAzure}, sasAcct, policy.Default())
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("S3EndpointWithHTTP", func(t *testing.T) {
		s3Acct, err := account.Parse("AccountName=testkey;AccountKey=testsecret;BlobEndpoint=http://localhost:9000")
		require.NoError(t, err)

		client, err := storage.NewClient(storage.Config{Driver: storage.DriverS3, Region: "us-east-1"}, s3Acct, policy.Default())
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("S3EndpointWithHTTPS", func(t *testing.T) {
		s3Acct, err := account.Parse("AccountName=testkey;AccountKey=testsecret;BlobEndpoint=https://s3.amazonaws.com")
		require.NoError(t, err)

		client, err := storage.NewClient(storage.Config{Driver: storage.DriverS3, Region: "us-east-1"}, s3Acct, policy.Default())
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("Memory", func(t *testing.T) {
		client, err := storage.NewClient(storage.Config{Driver: storage.DriverMemory}, acct, policy.Default())
		assert.NoError(t, err)
		assert.IsType(t, &storage.MemoryClient{}, client)
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		client, err := storage.NewClient(storage.Config{Driver: "ftp"}, acct, policy.Default())
		assert.Error(t, err)
		assert.Nil(t, client)
	})
}

func TestConfig_Account(t *testing.T) {
	t.Run("ConnectionStringWins", func(t *testing.T) {
		cfg := storage.Config{
			ConnectionString: "AccountName=fromconn;AccountKey=k",
			AccountName:      "fromfields",
			AccountKey:       "k",
		}
		acct, err := cfg.Account()
		require.NoError(t, err)
		assert.Equal(t, "fromconn", acct.Name())
	})

	t.Run("NameAndKey", func(t *testing.T) {
		acct, err := storage.Config{AccountName: "n", AccountKey: "k"}.Account()
		require.NoError(t, err)
		assert.Equal(t, "n", acct.Name())
	})

	t.Run("MemoryWithoutCredentials", func(t *testing.T) {
		acct, err := storage.Config{Driver: storage.DriverMemory}.Account()
		require.NoError(t, err)
		assert.Equal(t, account.DevelopmentAccountName, acct.Name())
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := storage.Config{Driver: storage.DriverAzure}.Account()
		assert.ErrorIs(t, err, account.ErrConfiguration)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := storage.Config{ConnectionString: "nonsense"}.Account()
		assert.ErrorIs(t, err, account.ErrConfiguration)
	})
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		in      string
		want    storage.Tier
		wantErr bool
	}{
		{"", storage.TierUnspecified, false},
		{"unspecified", storage.TierUnspecified, false},
		{"Hot", storage.TierHot, false},
		{"cool", storage.TierCool, false},
		{"ARCHIVE", storage.TierArchive, false},
		{"frozen", storage.TierUnspecified, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := storage.ParseTier(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "cool", storage.TierCool.String())
	assert.Equal(t, "unspecified", storage.Tier(42).String())
}
