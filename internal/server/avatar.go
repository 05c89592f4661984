package server

import (
	"bufio"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/asset"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/observability/logger"
	productdomain "github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/product/domain"
	"go.uber.org/zap"
)

const (
	avatarFormField   = "avatar"
	multipartOverhead = 1 << 20
	sniffLen          = 512
)

// UploadProductAvatar stores the uploaded image and points the product at its URL.
// The content type is sniffed from the file rather than trusted from the client.
func (s *Server) UploadProductAvatar(c *gin.Context) {
	ctx := c.Request.Context()
	productID := strings.TrimSpace(c.Param("id"))

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, asset.MaxImageSize+multipartOverhead)
	header, err := c.FormFile(avatarFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			AbortWithError(c, asset.ErrTooLarge)
			return
		}
		AbortWithError(c, newValidationError(avatarFormField, "required", "avatar file is required"))
		return
	}
	if header.Size > asset.MaxImageSize {
		AbortWithError(c, asset.ErrTooLarge)
		return
	}

	file, err := header.Open()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	defer file.Close()

	body := bufio.NewReaderSize(file, sniffLen)
	head, err := body.Peek(sniffLen)
	if err != nil && len(head) == 0 {
		AbortWithError(c, newValidationError(avatarFormField, "empty", "avatar file is empty"))
		return
	}
	contentType := http.DetectContentType(head)
	ext, err := asset.ImageExtension(contentType)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	version := strconv.FormatInt(s.clock.Now().UnixMilli(), 10)
	key := asset.ProductAvatarKey(productID, version, ext)
	url, err := s.assets.Put(ctx, key, contentType, body, header.Size)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.products.Update(ctx, productdomain.UpdateRequest{
		ID:     productID,
		Avatar: &url,
	})
	if err != nil {
		if delErr := s.assets.Delete(ctx, key); delErr != nil {
			logger.FromContext(ctx).Warn("orphaned avatar upload",
				zap.String("key", key),
				zap.Error(delErr),
			)
		}
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
