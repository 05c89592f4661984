package asset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type objectAPIMock struct {
	mock.Mock
}

func (m *objectAPIMock) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, in)
	return &s3.PutObjectOutput{}, args.Error(0)
}

func (m *objectAPIMock) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, in)
	return &s3.DeleteObjectOutput{}, args.Error(0)
}

func TestImageExtension(t *testing.T) {
	ext, err := ImageExtension("image/PNG; charset=binary")
	require.NoError(t, err)
	assert.Equal(t, ".png", ext)

	_, err = ImageExtension("application/pdf")
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestProductAvatarKey(t *testing.T) {
	assert.Equal(t, "products/42/avatar-v1.jpg", ProductAvatarKey("42", "v1", ".jpg"))
}

func TestCleanKeyRejectsEscapes(t *testing.T) {
	key, err := cleanKey("../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, "etc/passwd", key)

	_, err = cleanKey("  ")
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestLocalStorePutAndDelete(t *testing.T) {
	root := t.TempDir()
	store, err := newLocalStore(config.AssetConfig{LocalRoot: root, BaseURL: "/assets/"})
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "products/1/avatar.png", "image/png", strings.NewReader("png-bytes"), 9)
	require.NoError(t, err)
	assert.Equal(t, "/assets/products/1/avatar.png", url)

	data, err := os.ReadFile(filepath.Join(root, "products", "1", "avatar.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(context.Background(), "products/1/avatar.png"))
	require.NoError(t, store.Delete(context.Background(), "products/1/avatar.png"))
	_, err = os.Stat(filepath.Join(root, "products", "1", "avatar.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestS3StorePut(t *testing.T) {
	api := &objectAPIMock{}
	store := &s3Store{client: api, bucket: "catalog", baseURL: "https://cdn.example.com"}

	api.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "catalog" &&
			aws.ToString(in.Key) == "products/7/avatar.jpg" &&
			aws.ToString(in.ContentType) == "image/jpeg"
	})).Return(nil).Once()

	url, err := store.Put(context.Background(), "/products/7/avatar.jpg", "image/jpeg", strings.NewReader("x"), 1)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/products/7/avatar.jpg", url)
	api.AssertExpectations(t)
}

func TestS3StorePutError(t *testing.T) {
	api := &objectAPIMock{}
	store := &s3Store{client: api, bucket: "catalog", baseURL: "https://cdn.example.com"}
	api.On("PutObject", mock.Anything, mock.Anything).Return(errors.New("boom")).Once()

	_, err := store.Put(context.Background(), "k.png", "image/png", strings.NewReader("x"), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestNewStoreSelectsDriver(t *testing.T) {
	cfg := config.Config{Asset: config.AssetConfig{Driver: config.AssetDriverLocal, LocalRoot: t.TempDir(), BaseURL: "/assets"}}
	store, err := NewStore(Params{Config: cfg, Log: zap.NewNop()})
	require.NoError(t, err)
	assert.Equal(t, config.AssetDriverLocal, store.Driver())

	local, ok := store.(LocalRoot)
	require.True(t, ok)
	assert.NotEmpty(t, local.Root())

	cfg.Asset.Driver = "ftp"
	_, err = NewStore(Params{Config: cfg, Log: zap.NewNop()})
	require.Error(t, err)
}
