package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	productdomain "github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/product/domain"
)

func (s *Server) AddVariant(c *gin.Context) {
	var req productdomain.VariantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.products.AddVariant(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if resp == nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

// DeleteVariant returns the result body for refusals too, so callers can branch on reason.
func (s *Server) DeleteVariant(c *gin.Context) {
	result, err := s.products.DeleteVariant(
		c.Request.Context(),
		strings.TrimSpace(c.Param("id")),
		strings.TrimSpace(c.Param("vid")),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(deleteVariantStatus(result), gin.H{"data": result})
}

func deleteVariantStatus(result *productdomain.DeleteVariantResult) int {
	if result.Success {
		return http.StatusOK
	}
	switch result.Reason {
	case productdomain.ReasonProductNotFound, productdomain.ReasonVariantNotFound:
		return http.StatusNotFound
	case productdomain.ReasonCannotDeleteLastVariant:
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

func (s *Server) UpdateVariant(c *gin.Context) {
	var req productdomain.UpdateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.products.UpdateVariant(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if resp == nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
