package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	skuPrefixLen   = 3
	maxSKUAttempts = 20
	fallbackPrefix = "PRD"
)

// skuPrefix is the upper-cased first three runes of the trimmed name.
func skuPrefix(name string) string {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) == 0 {
		return fallbackPrefix
	}
	if len(runes) > skuPrefixLen {
		runes = runes[:skuPrefixLen]
	}
	return strings.ToUpper(string(runes))
}

// defaultSKU builds PREFIX-<unix millis> and appends -N until the sku is free.
func (s *Service) defaultSKU(ctx context.Context, tx *gorm.DB, name string) (string, error) {
	base := skuPrefix(name) + "-" + strconv.FormatInt(s.clock.Now().UnixMilli(), 10)

	candidate := base
	for attempt := 1; attempt <= maxSKUAttempts; attempt++ {
		existing, err := s.variants.FindBySKU(ctx, tx, candidate, 0)
		if err != nil {
			return "", fmt.Errorf("check default sku: %w", err)
		}
		if existing == nil {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(attempt)
	}
	return "", fmt.Errorf("default sku: no free candidate for %q after %d attempts", base, maxSKUAttempts)
}
