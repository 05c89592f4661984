package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	merchantdomain "github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/merchant/domain"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/observability/logger"
	"go.uber.org/zap"
)

func (s *Server) CreateMerchant(c *gin.Context) {
	var req merchantdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.merchants.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if identity, ok := identityFromContext(c); ok {
		logger.WithMerchant(s.log, resp.ID).Info("merchant registered",
			zap.String("user_id", identity.UserID),
		)
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetMerchantByID(c *gin.Context) {
	resp, err := s.merchants.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CurrentMerchant(c *gin.Context) {
	resp, err := s.merchants.Current(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
