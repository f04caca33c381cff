package storage

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockMinio is a mock implementation of minioAPI.
type mockMinio struct {
	mock.Mock
}

func (m *mockMinio) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *mockMinio) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	args := m.Called(ctx, bucketName, opts)
	return args.Error(0)
}

func (m *mockMinio) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func (m *mockMinio) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	if obj, ok := args.Get(0).(io.ReadCloser); ok {
		return obj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMinio) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	return args.Get(0).(minio.ObjectInfo), args.Error(1)
}

func (m *mockMinio) CopyObject(ctx context.Context, dst minio.CopyDestOptions, src minio.CopySrcOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, dst, src)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func (m *mockMinio) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	args := m.Called(ctx, bucketName, opts)
	if ch, ok := args.Get(0).(<-chan minio.ObjectInfo); ok {
		return ch
	}
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}

func (m *mockMinio) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	args := m.Called(ctx, bucketName, objectName, opts)
	return args.Error(0)
}

var errNoSuchKey = minio.ErrorResponse{Code: minio.NoSuchKey, StatusCode: 404}

func objectChan(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

func TestS3Client_CreateContainer(t *testing.T) {
	t.Run("AlreadyExists", func(t *testing.T) {
		api := new(mockMinio)
		api.On("BucketExists", mock.Anything, "assets").Return(true, nil)

		c := &s3Client{api: api}
		require.NoError(t, c.CreateContainer(context.Background(), "assets"))
		api.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing", func(t *testing.T) {
		api := new(mockMinio)
		api.On("BucketExists", mock.Anything, "assets").Return(false, nil)
		api.On("MakeBucket", mock.Anything, "assets", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)

		c := &s3Client{api: api, region: "eu-west-1"}
		require.NoError(t, c.CreateContainer(context.Background(), "assets"))
		api.AssertExpectations(t)
	})

	t.Run("RaceLostToAnotherCreator", func(t *testing.T) {
		api := new(mockMinio)
		api.On("BucketExists", mock.Anything, "assets").Return(false, nil)
		api.On("MakeBucket", mock.Anything, "assets", mock.Anything).Return(minio.ErrorResponse{Code: "BucketAlreadyOwnedByYou"})

		c := &s3Client{api: api}
		assert.NoError(t, c.CreateContainer(context.Background(), "assets"))
	})
}

func TestS3Client_Upload(t *testing.T) {
	api := new(mockMinio)
	payload := bytes.NewReader([]byte("hello"))
	api.On("PutObject", mock.Anything, "assets", "folder/a.txt", payload, int64(5), mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
		return opts.ContentType == "text/plain"
	})).Return(minio.UploadInfo{}, nil)

	c := &s3Client{api: api}
	err := c.Upload(context.Background(), "assets", "folder/a.txt", payload, PutOptions{ContentType: "text/plain", Size: 5})
	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestS3Client_Download(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		api := new(mockMinio)
		api.On("GetObject", mock.Anything, "assets", "a.txt", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte("data"))), nil)

		c := &s3Client{api: api}
		rc, err := c.Download(context.Background(), "assets", "a.txt")
		require.NoError(t, err)
		b, _ := io.ReadAll(rc)
		assert.Equal(t, "data", string(b))
	})

	t.Run("NotFound", func(t *testing.T) {
		api := new(mockMinio)
		api.On("GetObject", mock.Anything, "assets", "missing", mock.Anything).Return(nil, errNoSuchKey)

		c := &s3Client{api: api}
		_, err := c.Download(context.Background(), "assets", "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestS3Client_Delete(t *testing.T) {
	t.Run("Existing", func(t *testing.T) {
		api := new(mockMinio)
		api.On("StatObject", mock.Anything, "assets", "a", mock.Anything).Return(minio.ObjectInfo{Key: "a"}, nil)
		api.On("RemoveObject", mock.Anything, "assets", "a", mock.Anything).Return(nil)

		c := &s3Client{api: api}
		deleted, err := c.Delete(context.Background(), "assets", "a")
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("Missing", func(t *testing.T) {
		api := new(mockMinio)
		api.On("StatObject", mock.Anything, "assets", "a", mock.Anything).Return(minio.ObjectInfo{}, errNoSuchKey)

		c := &s3Client{api: api}
		deleted, err := c.Delete(context.Background(), "assets", "a")
		require.NoError(t, err)
		assert.False(t, deleted)
		api.AssertNotCalled(t, "RemoveObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestS3Client_SetTier(t *testing.T) {
	api := new(mockMinio)
	api.On("StatObject", mock.Anything, "assets", "a", mock.Anything).Return(minio.ObjectInfo{
		Key:          "a",
		ContentType:  "image/png",
		UserMetadata: minio.StringMap{"Owner": "me"},
	}, nil)
	api.On("CopyObject", mock.Anything, mock.MatchedBy(func(dst minio.CopyDestOptions) bool {
		return dst.Bucket == "assets" &&
			dst.Object == "a" &&
			dst.ReplaceMetadata &&
			dst.ContentType == "image/png" &&
			dst.UserMetadata[amzStorageClass] == "STANDARD_IA" &&
			dst.UserMetadata["Owner"] == "me"
	}), minio.CopySrcOptions{Bucket: "assets", Object: "a"}).Return(minio.UploadInfo{}, nil)

	c := &s3Client{api: api}
	require.NoError(t, c.SetTier(context.Background(), "assets", "a", TierCool))
	api.AssertExpectations(t)

	assert.Error(t, c.SetTier(context.Background(), "assets", "a", TierUnspecified))
}

func TestS3Client_Properties(t *testing.T) {
	api := new(mockMinio)
	api.On("StatObject", mock.Anything, "assets", "a", mock.Anything).Return(minio.ObjectInfo{
		Key:          "a",
		Size:         12,
		ContentType:  "text/plain",
		ETag:         "abc",
		StorageClass: "GLACIER",
	}, nil)
	api.On("StatObject", mock.Anything, "assets", "missing", mock.Anything).Return(minio.ObjectInfo{}, errNoSuchKey)

	c := &s3Client{api: api}
	props, err := c.Properties(context.Background(), "assets", "a")
	require.NoError(t, err)
	assert.Equal(t, int64(12), props.Size)
	assert.Equal(t, TierArchive, props.Tier)
	assert.Equal(t, "abc", props.ETag)

	_, err = c.Properties(context.Background(), "assets", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	exists, err := c.Exists(context.Background(), "assets", "missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestS3Client_List(t *testing.T) {
	t.Run("Keys", func(t *testing.T) {
		api := new(mockMinio)
		api.On("ListObjects", mock.Anything, "assets", minio.ListObjectsOptions{Prefix: "img/", Recursive: true}).
			Return(objectChan(minio.ObjectInfo{Key: "img/a.png"}, minio.ObjectInfo{Key: "img/sub/b.png"}))

		c := &s3Client{api: api}
		keys, err := c.List(context.Background(), "assets", "img/")
		require.NoError(t, err)
		assert.Equal(t, []string{"img/a.png", "img/sub/b.png"}, keys)
	})

	t.Run("MissingBucket", func(t *testing.T) {
		api := new(mockMinio)
		api.On("ListObjects", mock.Anything, "nobucket", mock.Anything).
			Return(objectChan(minio.ObjectInfo{Err: minio.ErrorResponse{Code: minio.NoSuchBucket}}))

		c := &s3Client{api: api}
		keys, err := c.List(context.Background(), "nobucket", "")
		require.NoError(t, err)
		assert.NotNil(t, keys)
		assert.Empty(t, keys)
	})

	t.Run("Failure", func(t *testing.T) {
		api := new(mockMinio)
		api.On("ListObjects", mock.Anything, "assets", mock.Anything).
			Return(objectChan(minio.ObjectInfo{Err: minio.ErrorResponse{Code: "AccessDenied"}}))

		c := &s3Client{api: api}
		_, err := c.List(context.Background(), "assets", "")
		assert.Error(t, err)
	})
}

func TestTierFromS3(t *testing.T) {
	assert.Equal(t, TierHot, tierFromS3(""))
	assert.Equal(t, TierHot, tierFromS3("STANDARD"))
	assert.Equal(t, TierCool, tierFromS3("standard_ia"))
	assert.Equal(t, TierArchive, tierFromS3("DEEP_ARCHIVE"))
	assert.Equal(t, TierUnspecified, tierFromS3("OUTPOSTS"))
}
