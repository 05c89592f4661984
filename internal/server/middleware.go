package server

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/auth"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/merchantcontext"
	obscontext "github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/observability/context"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/observability/logger"
	productdomain "github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/product/domain"
	"go.uber.org/zap"
)

const (
	contextIdentityKey = "identity"
	actorTypeUser      = "user"
)

// AuthRequired verifies the bearer token and binds the caller to the request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := auth.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		identity, err := s.verifier.Verify(c.Request.Context(), raw)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		ctx := obscontext.WithActor(c.Request.Context(), actorTypeUser, identity.UserID)
		if identity.HasMerchant() {
			ctx = merchantcontext.WithMerchantID(ctx, identity.MerchantID.Int64())
			ctx = obscontext.WithMerchantID(ctx, identity.MerchantID.String())
		}
		c.Request = c.Request.WithContext(ctx)
		c.Set(contextIdentityKey, identity)
		c.Next()
	}
}

// RequireMerchant rejects callers whose token is not bound to a merchant.
func (s *Server) RequireMerchant() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := merchantcontext.MerchantIDFromContext(c.Request.Context()); !ok {
			AbortWithError(c, ErrMerchantRequired)
			return
		}
		c.Next()
	}
}

// WriteRateLimit throttles catalog mutations per merchant.
func (s *Server) WriteRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Enabled() {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		merchantID, ok := merchantcontext.MerchantIDFromContext(ctx)
		if !ok {
			AbortWithError(c, ErrMerchantRequired)
			return
		}

		result, err := s.limiter.AllowMerchant(ctx, merchantID.String())
		if err != nil {
			logger.FromContext(ctx).Warn("catalog write rate limit check failed", zap.Error(err))
			AbortWithError(c, ErrServiceUnavailable)
			return
		}
		if !result.Allowed {
			retryAfter := int(math.Ceil(result.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			logger.FromContext(ctx).Warn("catalog write rate limit exceeded",
				zap.String("route", c.FullPath()),
			)
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			AbortWithError(c, ErrRateLimited)
			return
		}
		c.Next()
	}
}

// RequireProductOwner rejects writes to a product owned by another merchant. A product
// that does not exist passes through so the handler can report it.
func (s *Server) RequireProductOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		resp, err := s.catalog.Get(ctx, strings.TrimSpace(c.Param("id")))
		if err != nil {
			if errors.Is(err, productdomain.ErrNotFound) {
				c.Next()
				return
			}
			AbortWithError(c, err)
			return
		}
		if !ownedByCaller(c, resp.MerchantID) {
			AbortWithError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}

// RequireVariantOwner resolves the variant's parent product before checking ownership.
func (s *Server) RequireVariantOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		variant, err := s.catalog.GetVariant(ctx, strings.TrimSpace(c.Param("id")))
		if err != nil {
			if errors.Is(err, productdomain.ErrVariantNotFound) {
				c.Next()
				return
			}
			AbortWithError(c, err)
			return
		}

		owner := ""
		if variant.Product != nil {
			owner = variant.Product.MerchantID
		} else {
			parent, err := s.catalog.Get(ctx, variant.ProductID)
			if err != nil {
				AbortWithError(c, err)
				return
			}
			owner = parent.MerchantID
		}
		if !ownedByCaller(c, owner) {
			AbortWithError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}

func ownedByCaller(c *gin.Context, ownerID string) bool {
	merchantID, ok := merchantcontext.MerchantIDFromContext(c.Request.Context())
	if !ok {
		return false
	}
	return merchantID.String() == strings.TrimSpace(ownerID)
}

func identityFromContext(c *gin.Context) (*auth.Identity, bool) {
	value, ok := c.Get(contextIdentityKey)
	if !ok {
		return nil, false
	}
	identity, ok := value.(*auth.Identity)
	return identity, ok && identity != nil
}
