package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/cache"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/clock"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/merchantcontext"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/observability/metrics"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/product/domain"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Products domain.ProductRepository
	Variants domain.VariantRepository
	Cache    cache.Store
	Metrics  *metrics.CatalogMetrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	products domain.ProductRepository
	variants domain.VariantRepository
	cache    cache.Store
	metrics  *metrics.CatalogMetrics
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("product.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		products: p.Products,
		variants: p.Variants,
		cache:    p.Cache,
		metrics:  p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	merchantID, ok := merchantcontext.MerchantIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidMerchant
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	price, err := validatePrice(req.Price)
	if err != nil {
		return nil, err
	}
	discount, err := validateNonNegative(req.Discount, domain.ErrInvalidDiscount)
	if err != nil {
		return nil, err
	}
	weight, err := validateNonNegative(req.Weight, domain.ErrInvalidWeight)
	if err != nil {
		return nil, err
	}
	_, categoryID, err := parseOptionalID(req.CategoryID, domain.ErrInvalidCategory)
	if err != nil {
		return nil, err
	}
	plan, err := buildPlan(&domain.VariantBatch{Create: req.Variants})
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	product := &domain.Product{
		ID:          s.genID.Generate().Int64(),
		MerchantID:  merchantID.Int64(),
		CategoryID:  categoryID,
		Name:        name,
		Price:       price,
		Description: normalizeDescription(req.Description),
		Discount:    discount,
		Weight:      weight,
		HasVariant:  len(plan.create) > 1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ensureMerchant(ctx, tx, product.MerchantID); err != nil {
			return err
		}
		if err := s.ensureCategory(ctx, tx, categoryID); err != nil {
			return err
		}
		if err := s.products.Insert(ctx, tx, product); err != nil {
			return fmt.Errorf("insert product: %w", err)
		}
		if len(plan.create) == 0 {
			return s.insertDefaultVariant(ctx, tx, product)
		}
		for _, pending := range plan.create {
			if err := s.insertVariant(ctx, tx, product.ID, pending); err != nil {
				return err
			}
		}
		return nil
	})
	s.recordWrite("create", err)
	if err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)
	s.log.Info("product created",
		zap.Int64("product_id", product.ID),
		zap.Int64("merchant_id", product.MerchantID),
		zap.Int("variants", max(len(plan.create), 1)),
	)
	return s.loadResponse(ctx, product.ID)
}

// Update applies the product field changes and the variant batch in one transaction. Creates,
// updates and deletes run before the variant count is recomputed, so the stored has_variant
// reflects the net effect and an emptied product gets a fresh default variant.
func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	productID, err := parseID(req.ID, domain.ErrInvalidID)
	if err != nil {
		return nil, err
	}
	fields, categoryChanged, categoryID, err := productFields(req)
	if err != nil {
		return nil, err
	}
	plan, err := buildPlan(req.Variants)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := s.products.FindByID(ctx, tx, productID, true)
		if err != nil {
			return fmt.Errorf("load product: %w", err)
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if categoryChanged {
			if err := s.ensureCategory(ctx, tx, categoryID); err != nil {
				return err
			}
		}

		fields["updated_at"] = s.clock.Now()
		if err := s.products.UpdateFields(ctx, tx, productID, fields); err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		if name, ok := fields["name"].(string); ok {
			product.Name = name
		}

		return s.applyPlan(ctx, tx, product, plan)
	})
	s.recordWrite("update", err)
	if err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)
	return s.loadResponse(ctx, productID)
}

// Delete removes the product and all of its variants.
func (s *Service) Delete(ctx context.Context, id string) error {
	productID, err := parseID(id, domain.ErrInvalidID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := s.products.FindByID(ctx, tx, productID, true)
		if err != nil {
			return fmt.Errorf("load product: %w", err)
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := s.variants.DeleteByProduct(ctx, tx, productID); err != nil {
			return fmt.Errorf("delete variants: %w", err)
		}
		if err := s.products.Delete(ctx, tx, productID); err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		return nil
	})
	s.recordWrite("delete", err)
	if err != nil {
		return err
	}

	s.invalidateListings(ctx)
	s.log.Info("product deleted", zap.Int64("product_id", productID))
	return nil
}

func (s *Service) applyPlan(ctx context.Context, tx *gorm.DB, product *domain.Product, plan variantPlan) error {
	for _, pending := range plan.create {
		if err := s.insertVariant(ctx, tx, product.ID, pending); err != nil {
			return err
		}
	}

	for _, change := range plan.update {
		variant, err := s.variants.FindByID(ctx, tx, change.id)
		if err != nil {
			return fmt.Errorf("load variant: %w", err)
		}
		if variant == nil || variant.ProductID != product.ID {
			return domain.ErrVariantNotFound
		}
		if change.empty() {
			continue
		}
		if change.sku != nil {
			if err := s.ensureSKUFree(ctx, tx, *change.sku, change.id); err != nil {
				return err
			}
		}
		if err := s.ensureVariantRefs(ctx, tx, derefRef(change.colourID), derefRef(change.sizeID)); err != nil {
			return err
		}
		fields := change.fields()
		fields["updated_at"] = s.clock.Now()
		if err := s.variants.UpdateFields(ctx, tx, change.id, fields); err != nil {
			return translateWriteErr("update variant", err)
		}
	}

	if len(plan.delete) > 0 {
		if _, err := s.variants.DeleteByIDs(ctx, tx, product.ID, plan.delete); err != nil {
			return fmt.Errorf("delete variants: %w", err)
		}
	}

	count, err := s.variants.CountByProduct(ctx, tx, product.ID)
	if err != nil {
		return fmt.Errorf("count variants: %w", err)
	}
	if count == 0 {
		if err := s.insertDefaultVariant(ctx, tx, product); err != nil {
			return err
		}
		count = 1
	}
	return s.syncHasVariant(ctx, tx, product.ID, count)
}

func (s *Service) insertVariant(ctx context.Context, tx *gorm.DB, productID int64, pending pendingVariant) error {
	return s.insertVariantWithID(ctx, tx, s.genID.Generate().Int64(), productID, pending)
}

func (s *Service) insertVariantWithID(ctx context.Context, tx *gorm.DB, id, productID int64, pending pendingVariant) error {
	if err := s.ensureSKUFree(ctx, tx, pending.sku, 0); err != nil {
		return err
	}
	if err := s.ensureVariantRefs(ctx, tx, pending.colourID, pending.sizeID); err != nil {
		return err
	}
	now := s.clock.Now()
	variant := &domain.Variant{
		ID:        id,
		ProductID: productID,
		SKU:       pending.sku,
		Stock:     pending.stock,
		ColourID:  pending.colourID,
		SizeID:    pending.sizeID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return translateWriteErr("insert variant", s.variants.Insert(ctx, tx, variant))
}

func (s *Service) insertDefaultVariant(ctx context.Context, tx *gorm.DB, product *domain.Product) error {
	sku, err := s.defaultSKU(ctx, tx, product.Name)
	if err != nil {
		return err
	}
	return s.insertVariant(ctx, tx, product.ID, pendingVariant{sku: sku})
}

func (s *Service) ensureSKUFree(ctx context.Context, tx *gorm.DB, sku string, excludeID int64) error {
	existing, err := s.variants.FindBySKU(ctx, tx, sku, excludeID)
	if err != nil {
		return fmt.Errorf("check sku: %w", err)
	}
	if existing != nil {
		return domain.ErrDuplicateSKU
	}
	return nil
}

func (s *Service) ensureCategory(ctx context.Context, tx *gorm.DB, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	category, err := s.products.FindCategory(ctx, tx, *categoryID)
	if err != nil {
		return fmt.Errorf("load category: %w", err)
	}
	if category == nil {
		return domain.ErrInvalidCategory
	}
	return nil
}

func (s *Service) ensureMerchant(ctx context.Context, tx *gorm.DB, merchantID int64) error {
	merchant, err := s.products.FindMerchant(ctx, tx, merchantID)
	if err != nil {
		return fmt.Errorf("load merchant: %w", err)
	}
	if merchant == nil {
		return domain.ErrInvalidMerchant
	}
	return nil
}

// ensureVariantRefs checks that the referenced colour and size exist. Nil ids are skipped.
func (s *Service) ensureVariantRefs(ctx context.Context, tx *gorm.DB, colourID, sizeID *int64) error {
	if colourID != nil {
		colour, err := s.variants.FindColour(ctx, tx, *colourID)
		if err != nil {
			return fmt.Errorf("load colour: %w", err)
		}
		if colour == nil {
			return domain.ErrInvalidColour
		}
	}
	if sizeID != nil {
		size, err := s.variants.FindSize(ctx, tx, *sizeID)
		if err != nil {
			return fmt.Errorf("load size: %w", err)
		}
		if size == nil {
			return domain.ErrInvalidSize
		}
	}
	return nil
}

// syncHasVariant persists has_variant = count > 1.
func (s *Service) syncHasVariant(ctx context.Context, tx *gorm.DB, productID, count int64) error {
	if err := s.products.UpdateHasVariant(ctx, tx, productID, count > 1); err != nil {
		return fmt.Errorf("update has_variant: %w", err)
	}
	return nil
}

func (s *Service) loadResponse(ctx context.Context, productID int64) (*domain.Response, error) {
	product, err := s.products.FindWithAssociations(ctx, s.db.WithContext(ctx), productID)
	if err != nil {
		return nil, fmt.Errorf("reload product: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	resp := toResponse(product)
	return &resp, nil
}

func (s *Service) invalidateListings(ctx context.Context) {
	cache.InvalidateProductListings(ctx, s.cache)
}

func (s *Service) recordWrite(operation string, err error) {
	s.metrics.RecordProductWrite(operation, writeOutcome(err))
	if err != nil && outcomeIsFailure(err) {
		s.log.Error("product write failed", zap.String("operation", operation), zap.Error(err))
	}
}

func derefRef(ref **int64) *int64 {
	if ref == nil {
		return nil
	}
	return *ref
}

func productFields(req domain.UpdateRequest) (fields map[string]any, categoryChanged bool, categoryID *int64, err error) {
	fields = map[string]any{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, false, nil, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.Price != nil {
		price, err := validatePrice(req.Price)
		if err != nil {
			return nil, false, nil, err
		}
		fields["price"] = price
	}
	if req.Description != nil {
		fields["description"] = nullable(normalizeDescription(req.Description))
	}
	if req.Discount != nil {
		discount, err := validateNonNegative(req.Discount, domain.ErrInvalidDiscount)
		if err != nil {
			return nil, false, nil, err
		}
		fields["discount"] = discount
	}
	if req.Weight != nil {
		weight, err := validateNonNegative(req.Weight, domain.ErrInvalidWeight)
		if err != nil {
			return nil, false, nil, err
		}
		fields["weight"] = weight
	}
	if req.Avatar != nil {
		fields["avatar"] = nullable(normalizeDescription(req.Avatar))
	}

	categoryChanged, categoryID, err = parseOptionalID(req.CategoryID, domain.ErrInvalidCategory)
	if err != nil {
		return nil, false, nil, err
	}
	if categoryChanged {
		fields["category_id"] = nullable(categoryID)
	}
	return fields, categoryChanged, categoryID, nil
}

func translateWriteErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if db.IsDuplicateKeyErr(err) {
		return domain.ErrDuplicateSKU
	}
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

func writeOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case domain.IsValidationError(err):
		return metrics.OutcomeValidation
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrVariantNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, domain.ErrDuplicateSKU):
		return metrics.OutcomeDuplicateSKU
	default:
		return metrics.ClassifyStoreError(err)
	}
}

func outcomeIsFailure(err error) bool {
	switch writeOutcome(err) {
	case metrics.OutcomeValidation, metrics.OutcomeNotFound, metrics.OutcomeDuplicateSKU:
		return false
	default:
		return true
	}
}
