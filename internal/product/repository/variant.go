package repository

import (
	"context"
	"errors"

	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/product/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type variantRepo struct{}

func ProvideVariant() domain.VariantRepository {
	return &variantRepo{}
}

func (r *variantRepo) Insert(ctx context.Context, conn *gorm.DB, variant *domain.Variant) error {
	return conn.WithContext(ctx).Omit(clause.Associations).Create(variant).Error
}

func (r *variantRepo) FindByID(ctx context.Context, conn *gorm.DB, id int64) (*domain.Variant, error) {
	var v domain.Variant
	err := conn.WithContext(ctx).Where("id = ?", id).First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

// FindBySKU returns the variant holding sku, ignoring excludeID when it is non-zero.
func (r *variantRepo) FindBySKU(ctx context.Context, conn *gorm.DB, sku string, excludeID int64) (*domain.Variant, error) {
	stmt := conn.WithContext(ctx).Where("sku = ?", sku)
	if excludeID != 0 {
		stmt = stmt.Where("id <> ?", excludeID)
	}

	var v domain.Variant
	err := stmt.First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *variantRepo) CountByProduct(ctx context.Context, conn *gorm.DB, productID int64) (int64, error) {
	var count int64
	err := conn.WithContext(ctx).Model(&domain.Variant{}).Where("product_id = ?", productID).Count(&count).Error
	return count, err
}

func (r *variantRepo) UpdateFields(ctx context.Context, conn *gorm.DB, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	res := conn.WithContext(ctx).Model(&domain.Variant{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *variantRepo) Delete(ctx context.Context, conn *gorm.DB, id int64) error {
	res := conn.WithContext(ctx).Where("id = ?", id).Delete(&domain.Variant{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByIDs removes the listed variants of one product and reports how many rows went away.
// Ids that belong to other products are left untouched.
func (r *variantRepo) DeleteByIDs(ctx context.Context, conn *gorm.DB, productID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := conn.WithContext(ctx).
		Where("product_id = ? AND id IN ?", productID, ids).
		Delete(&domain.Variant{})
	return res.RowsAffected, res.Error
}

func (r *variantRepo) DeleteByProduct(ctx context.Context, conn *gorm.DB, productID int64) error {
	return conn.WithContext(ctx).Where("product_id = ?", productID).Delete(&domain.Variant{}).Error
}

func (r *variantRepo) FindWithAssociations(ctx context.Context, conn *gorm.DB, id int64) (*domain.Variant, error) {
	var v domain.Variant
	err := conn.WithContext(ctx).
		Preload("Product").
		Preload("Colour").
		Preload("Size").
		Where("id = ?", id).
		First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *variantRepo) FindColour(ctx context.Context, conn *gorm.DB, id int64) (*domain.ColourSummary, error) {
	return findSummary[domain.ColourSummary](ctx, conn, id)
}

func (r *variantRepo) FindSize(ctx context.Context, conn *gorm.DB, id int64) (*domain.SizeSummary, error) {
	return findSummary[domain.SizeSummary](ctx, conn, id)
}
