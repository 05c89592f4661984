package asset

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported_media_type")
	ErrTooLarge        = errors.New("file_too_large")
	ErrInvalidKey      = errors.New("invalid_asset_key")
)

// MaxImageSize bounds uploaded product images.
const MaxImageSize = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Store persists uploaded files and returns their public URL.
type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, key string) error
	Driver() string
}

// ImageExtension returns the file extension for an accepted image content type.
func ImageExtension(contentType string) (string, error) {
	mediaType, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(contentType)), ";")
	ext, ok := imageExtensions[strings.TrimSpace(mediaType)]
	if !ok {
		return "", ErrUnsupportedType
	}
	return ext, nil
}

// ProductAvatarKey is the object key of a product avatar. version keeps replaced
// avatars from being served out of stale caches.
func ProductAvatarKey(productID, version, ext string) string {
	return path.Join("products", productID, "avatar-"+version+ext)
}

func cleanKey(key string) (string, error) {
	cleaned := path.Clean("/" + strings.TrimSpace(key))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
