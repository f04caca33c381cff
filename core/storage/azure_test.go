package storage

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"storage-kit/core/account"
	"storage-kit/core/policy"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAzureClient_Secondary(t *testing.T) {
	acct := account.New("testaccount", "dGVzdHNlY3JldA==")

	t.Run("PrimaryOnlySkipsSecondary", func(t *testing.T) {
		c, err := newAzureClient(Config{}, acct, policy.Default())
		require.NoError(t, err)
		assert.NotNil(t, c.primary)
		assert.Nil(t, c.secondary)
	})

	t.Run("PrimaryThenSecondary", func(t *testing.T) {
		pol := policy.Default()
		pol.LocationMode = policy.PrimaryThenSecondary
		c, err := newAzureClient(Config{}, acct, pol)
		require.NoError(t, err)
		assert.NotNil(t, c.secondary)
		assert.Contains(t, c.secondary.URL(), "testaccount-secondary")
	})

	t.Run("NoEndpoint", func(t *testing.T) {
		sasAcct, err := account.Parse("QueueEndpoint=https://a.queue.core.windows.net;SharedAccessSignature=sig=x")
		require.NoError(t, err)
		_, err = newAzureClient(Config{}, sasAcct, policy.Default())
		assert.ErrorIs(t, err, account.ErrConfiguration)
	})
}

func TestAppendSAS(t *testing.T) {
	got, err := appendSAS("https://a.blob.core.windows.net/", "sv=1&sig=2")
	require.NoError(t, err)
	assert.Equal(t, "https://a.blob.core.windows.net/?sv=1&sig=2", got)

	got, err = appendSAS("https://a.blob.core.windows.net/?x=y", "sig=2")
	require.NoError(t, err)
	assert.Equal(t, "https://a.blob.core.windows.net/?x=y&sig=2", got)
}

func TestIsNotFound(t *testing.T) {
	notFound := &azcore.ResponseError{StatusCode: http.StatusNotFound}
	assert.True(t, isNotFound(notFound))
	assert.True(t, isNotFound(fmt.Errorf("wrapped: %w", notFound)))
	assert.False(t, isNotFound(&azcore.ResponseError{StatusCode: http.StatusInternalServerError}))
	assert.False(t, isNotFound(errors.New("boom")))

	err := wrapAzureError(notFound, "download", "c", "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAzureTiers(t *testing.T) {
	for _, tier := range []Tier{TierHot, TierCool, TierArchive} {
		at, ok := azureAccessTier(tier)
		require.True(t, ok)
		assert.Equal(t, tier, tierFromAzure(string(at)))
	}
	_, ok := azureAccessTier(TierUnspecified)
	assert.False(t, ok)
	assert.Equal(t, TierUnspecified, tierFromAzure(""))
}
