package repository

import (
	"context"
	"errors"

	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/product/domain"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/pkg/db"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/pkg/db/option"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepo struct{}

func ProvideProduct() domain.ProductRepository {
	return &productRepo{}
}

func (r *productRepo) Insert(ctx context.Context, conn *gorm.DB, product *domain.Product) error {
	return conn.WithContext(ctx).Omit(clause.Associations).Create(product).Error
}

func (r *productRepo) FindByID(ctx context.Context, conn *gorm.DB, id int64, lock bool) (*domain.Product, error) {
	stmt := conn.WithContext(ctx)
	if lock && db.SupportsRowLocking(conn) {
		stmt = stmt.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var p domain.Product
	err := stmt.Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindWithAssociations(ctx context.Context, conn *gorm.DB, id int64) (*domain.Product, error) {
	var p domain.Product
	err := withAssociations(conn.WithContext(ctx)).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) UpdateFields(ctx context.Context, conn *gorm.DB, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	res := conn.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepo) UpdateHasVariant(ctx context.Context, conn *gorm.DB, id int64, hasVariant bool) error {
	res := conn.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).Update("has_variant", hasVariant)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, conn *gorm.DB, id int64) error {
	res := conn.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepo) List(ctx context.Context, conn *gorm.DB, filter domain.ListFilter) ([]domain.Product, int64, error) {
	base := conn.WithContext(ctx).Model(&domain.Product{})
	if filter.CategoryID != nil {
		base = base.Where("category_id = ?", *filter.CategoryID)
	}
	base = option.WithNameLike(filter.NameTerm).Apply(base)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := []domain.Product{}
	if total == 0 {
		return items, 0, nil
	}

	stmt := withAssociations(base.Session(&gorm.Session{}))
	switch filter.OrderBy {
	case domain.OrderByNameAsc:
		stmt = stmt.Order("name ASC").Order("id ASC")
	default:
		stmt = stmt.Order("created_at DESC").Order("id DESC")
	}
	stmt = option.ApplyPagination(filter.Page).Apply(stmt)

	if err := stmt.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *productRepo) FindCategory(ctx context.Context, conn *gorm.DB, id int64) (*domain.CategorySummary, error) {
	return findSummary[domain.CategorySummary](ctx, conn, id)
}

func (r *productRepo) FindMerchant(ctx context.Context, conn *gorm.DB, id int64) (*domain.MerchantSummary, error) {
	return findSummary[domain.MerchantSummary](ctx, conn, id)
}

func withAssociations(stmt *gorm.DB) *gorm.DB {
	return stmt.
		Preload("Merchant").
		Preload("Category").
		Preload("Variants", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC").Order("id ASC")
		}).
		Preload("Variants.Colour").
		Preload("Variants.Size")
}

// findSummary loads one row of a referenced table, returning nil when it does not exist.
func findSummary[T any](ctx context.Context, conn *gorm.DB, id int64) (*T, error) {
	var row T
	err := conn.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
