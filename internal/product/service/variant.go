package service

import (
	"context"
	"fmt"

	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/observability/metrics"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/product/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AddVariant inserts one variant and persists the recomputed has_variant.
// A missing product yields (nil, nil).
func (s *Service) AddVariant(ctx context.Context, productID string, req domain.VariantInput) (*domain.VariantResponse, error) {
	pid, err := parseID(productID, domain.ErrInvalidID)
	if err != nil {
		return nil, err
	}
	pending, err := validateVariantInput(req)
	if err != nil {
		return nil, err
	}

	var (
		variantID int64
		found     bool
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := s.products.FindByID(ctx, tx, pid, true)
		if err != nil {
			return fmt.Errorf("load product: %w", err)
		}
		if product == nil {
			return nil
		}
		found = true

		variantID = s.genID.Generate().Int64()
		if err := s.insertVariantWithID(ctx, tx, variantID, pid, pending); err != nil {
			return err
		}

		count, err := s.variants.CountByProduct(ctx, tx, pid)
		if err != nil {
			return fmt.Errorf("count variants: %w", err)
		}
		if product.HasVariant == (count > 1) {
			return nil
		}
		return s.syncHasVariant(ctx, tx, pid, count)
	})
	if err != nil {
		s.recordWrite("add_variant", err)
		return nil, err
	}
	if !found {
		s.recordWrite("add_variant", domain.ErrNotFound)
		return nil, nil
	}
	s.recordWrite("add_variant", nil)

	s.invalidateListings(ctx)
	return s.loadVariantResponse(ctx, variantID)
}

// DeleteVariant removes a single variant. It refuses instead of failing when the product or
// variant is missing, or when the variant is the last one the product has.
func (s *Service) DeleteVariant(ctx context.Context, productID, variantID string) (*domain.DeleteVariantResult, error) {
	pid, err := parseID(productID, domain.ErrInvalidID)
	if err != nil {
		return nil, err
	}
	vid, err := parseID(variantID, domain.ErrInvalidVariantID)
	if err != nil {
		return nil, err
	}

	var result *domain.DeleteVariantResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := s.products.FindByID(ctx, tx, pid, true)
		if err != nil {
			return fmt.Errorf("load product: %w", err)
		}
		if product == nil {
			result = refusal(domain.ReasonProductNotFound)
			return nil
		}

		variant, err := s.variants.FindByID(ctx, tx, vid)
		if err != nil {
			return fmt.Errorf("load variant: %w", err)
		}
		if variant == nil || variant.ProductID != pid {
			result = refusal(domain.ReasonVariantNotFound)
			return nil
		}

		count, err := s.variants.CountByProduct(ctx, tx, pid)
		if err != nil {
			return fmt.Errorf("count variants: %w", err)
		}
		if count <= 1 {
			result = refusal(domain.ReasonCannotDeleteLastVariant)
			result.RemainingVariantCount = count
			result.ProductHasVariant = product.HasVariant
			return nil
		}

		if err := s.variants.Delete(ctx, tx, vid); err != nil {
			return translateWriteErr("delete variant", err)
		}
		remaining := count - 1
		if err := s.syncHasVariant(ctx, tx, pid, remaining); err != nil {
			return err
		}

		result = &domain.DeleteVariantResult{
			Success:               true,
			DeletedVariantID:      variantID,
			RemainingVariantCount: remaining,
			ProductHasVariant:     remaining > 1,
		}
		return nil
	})
	if err != nil {
		s.recordWrite("delete_variant", err)
		return nil, err
	}

	if !result.Success {
		s.metrics.RecordVariantRefusal(string(result.Reason))
		s.metrics.RecordProductWrite("delete_variant", metrics.OutcomeRefused)
		s.log.Info("variant delete refused",
			zap.Int64("product_id", pid),
			zap.Int64("variant_id", vid),
			zap.String("reason", string(result.Reason)),
		)
		return result, nil
	}

	s.recordWrite("delete_variant", nil)
	s.invalidateListings(ctx)
	return result, nil
}

// UpdateVariant patches a variant in place. A missing variant yields (nil, nil); a patch
// without fields returns the stored variant and writes nothing.
func (s *Service) UpdateVariant(ctx context.Context, req domain.UpdateVariantRequest) (*domain.VariantResponse, error) {
	change, err := validateVariantChange(req.ID, req.SKU, req.Stock, req.ColourID, req.SizeID)
	if err != nil {
		return nil, err
	}

	if change.empty() {
		return s.loadVariantResponse(ctx, change.id)
	}

	var found bool
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		variant, err := s.variants.FindByID(ctx, tx, change.id)
		if err != nil {
			return fmt.Errorf("load variant: %w", err)
		}
		if variant == nil {
			return nil
		}
		found = true

		if change.sku != nil && *change.sku != variant.SKU {
			if err := s.ensureSKUFree(ctx, tx, *change.sku, change.id); err != nil {
				return err
			}
		}
		if err := s.ensureVariantRefs(ctx, tx, derefRef(change.colourID), derefRef(change.sizeID)); err != nil {
			return err
		}
		fields := change.fields()
		fields["updated_at"] = s.clock.Now()
		return translateWriteErr("update variant", s.variants.UpdateFields(ctx, tx, change.id, fields))
	})
	if err != nil {
		s.recordWrite("update_variant", err)
		return nil, err
	}
	if !found {
		s.recordWrite("update_variant", domain.ErrVariantNotFound)
		return nil, nil
	}
	s.recordWrite("update_variant", nil)

	s.invalidateListings(ctx)
	return s.loadVariantResponse(ctx, change.id)
}

func (s *Service) loadVariantResponse(ctx context.Context, variantID int64) (*domain.VariantResponse, error) {
	variant, err := s.variants.FindWithAssociations(ctx, s.db.WithContext(ctx), variantID)
	if err != nil {
		return nil, fmt.Errorf("load variant: %w", err)
	}
	if variant == nil {
		return nil, nil
	}
	resp := toVariantResponse(variant)
	return &resp, nil
}

func refusal(reason domain.RefusalReason) *domain.DeleteVariantResult {
	return &domain.DeleteVariantResult{Success: false, Reason: reason}
}
