package server

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	productdomain "github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/product/domain"
)

func parseOptionalInt(value string) (*int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// listRequestFromQuery reads page and limit. Missing values are left at zero so the
// query service applies its configured defaults.
func listRequestFromQuery(c *gin.Context) (productdomain.ListRequest, error) {
	var req productdomain.ListRequest

	page, err := parseOptionalInt(c.Query("page"))
	if err != nil {
		return req, newValidationError("page", "invalid_page", "invalid page")
	}
	limit, err := parseOptionalInt(c.Query("limit"))
	if err != nil {
		return req, newValidationError("limit", "invalid_limit", "invalid limit")
	}

	if page != nil {
		req.Page = *page
	}
	if limit != nil {
		req.Limit = *limit
	}
	return req, nil
}
