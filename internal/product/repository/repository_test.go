package repository

import (
	"context"
	"testing"
	"time"

	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/product/domain"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/pkg/db"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	created   = time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	firstPage = pagination.Pagination{Page: 1, Limit: 10}
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&domain.MerchantSummary{},
		&domain.CategorySummary{},
		&domain.ColourSummary{},
		&domain.SizeSummary{},
		&domain.Product{},
		&domain.Variant{},
	))
	return conn
}

func seedProduct(t *testing.T, conn *gorm.DB, id int64, name string, at time.Time) {
	t.Helper()
	require.NoError(t, ProvideProduct().Insert(context.Background(), conn, &domain.Product{
		ID:         id,
		MerchantID: 1,
		Name:       name,
		Price:      1,
		CreatedAt:  at,
		UpdatedAt:  at,
	}))
}

func seedVariant(t *testing.T, conn *gorm.DB, id, productID int64, sku string) {
	t.Helper()
	require.NoError(t, ProvideVariant().Insert(context.Background(), conn, &domain.Variant{
		ID:        id,
		ProductID: productID,
		SKU:       sku,
		CreatedAt: created,
		UpdatedAt: created,
	}))
}

func TestProductRowsAffected(t *testing.T) {
	conn := setupDB(t)
	repo := ProvideProduct()
	ctx := context.Background()

	require.ErrorIs(t, repo.UpdateFields(ctx, conn, 99, map[string]any{"name": "x"}), domain.ErrNotFound)
	require.ErrorIs(t, repo.UpdateHasVariant(ctx, conn, 99, true), domain.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, conn, 99), domain.ErrNotFound)

	seedProduct(t, conn, 1, "Meja", created)
	require.NoError(t, repo.UpdateHasVariant(ctx, conn, 1, true))

	product, err := repo.FindByID(ctx, conn, 1, true)
	require.NoError(t, err)
	assert.True(t, product.HasVariant)

	missing, err := repo.FindByID(ctx, conn, 2, false)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductListFilters(t *testing.T) {
	conn := setupDB(t)
	repo := ProvideProduct()
	ctx := context.Background()

	category := int64(500)
	require.NoError(t, conn.Create(&domain.CategorySummary{ID: category, Name: "Dapur", Slug: "dapur"}).Error)

	seedProduct(t, conn, 1, "Wajan Besar", created)
	seedProduct(t, conn, 2, "wajan kecil", created.Add(time.Minute))
	seedProduct(t, conn, 3, "Panci", created.Add(2*time.Minute))
	require.NoError(t, repo.UpdateFields(ctx, conn, 3, map[string]any{"category_id": category}))
	seedVariant(t, conn, 10, 1, "W-1")

	items, total, err := repo.List(ctx, conn, domain.ListFilter{NameTerm: "WAJAN", OrderBy: domain.OrderByCreatedAtDesc, Page: firstPage})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), items[0].ID)
	assert.Len(t, items[1].Variants, 1)

	items, total, err = repo.List(ctx, conn, domain.ListFilter{CategoryID: &category, Page: firstPage})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Category)
	assert.Equal(t, "Dapur", items[0].Category.Name)

	items, total, err = repo.List(ctx, conn, domain.ListFilter{NameTerm: "kursi", Page: firstPage})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	items, total, err = repo.List(ctx, conn, domain.ListFilter{OrderBy: domain.OrderByNameAsc, Page: pagination.Pagination{Page: 2, Limit: 1}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Wajan Besar", items[0].Name)
}

func TestVariantQueries(t *testing.T) {
	conn := setupDB(t)
	repo := ProvideVariant()
	ctx := context.Background()

	seedProduct(t, conn, 1, "Meja", created)
	seedProduct(t, conn, 2, "Kursi", created)
	seedVariant(t, conn, 10, 1, "M-1")
	seedVariant(t, conn, 11, 1, "M-2")
	seedVariant(t, conn, 20, 2, "K-1")

	found, err := repo.FindBySKU(ctx, conn, "M-1", 0)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, int64(10), found.ID)

	excluded, err := repo.FindBySKU(ctx, conn, "M-1", 10)
	require.NoError(t, err)
	assert.Nil(t, excluded)

	count, err := repo.CountByProduct(ctx, conn, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	deleted, err := repo.DeleteByIDs(ctx, conn, 1, []int64{11, 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	other, err := repo.FindByID(ctx, conn, 20)
	require.NoError(t, err)
	assert.NotNil(t, other)

	require.ErrorIs(t, repo.Delete(ctx, conn, 11), domain.ErrNotFound)
	require.ErrorIs(t, repo.UpdateFields(ctx, conn, 11, map[string]any{"stock": 1}), domain.ErrNotFound)

	require.NoError(t, repo.DeleteByProduct(ctx, conn, 1))
	count, err = repo.CountByProduct(ctx, conn, 1)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestVariantDuplicateSKUHitsIndex(t *testing.T) {
	conn := setupDB(t)
	seedProduct(t, conn, 1, "Meja", created)
	seedVariant(t, conn, 10, 1, "M-1")

	err := ProvideVariant().Insert(context.Background(), conn, &domain.Variant{
		ID:        11,
		ProductID: 1,
		SKU:       "M-1",
		CreatedAt: created,
		UpdatedAt: created,
	})
	require.Error(t, err)
	assert.True(t, db.IsDuplicateKeyErr(err))
}

func TestVariantWithAssociations(t *testing.T) {
	conn := setupDB(t)
	repo := ProvideVariant()
	ctx := context.Background()

	require.NoError(t, conn.Create(&domain.SizeSummary{ID: 7, Name: "XL"}).Error)
	seedProduct(t, conn, 1, "Kaos", created)
	size := int64(7)
	require.NoError(t, repo.Insert(ctx, conn, &domain.Variant{
		ID:        10,
		ProductID: 1,
		SKU:       "KA-XL",
		SizeID:    &size,
		CreatedAt: created,
		UpdatedAt: created,
	}))

	v, err := repo.FindWithAssociations(ctx, conn, 10)
	require.NoError(t, err)
	require.NotNil(t, v.Product)
	assert.Equal(t, "Kaos", v.Product.Name)
	require.NotNil(t, v.Size)
	assert.Equal(t, "XL", v.Size.Name)
	assert.Nil(t, v.Colour)

	s, err := repo.FindSize(ctx, conn, 7)
	require.NoError(t, err)
	assert.NotNil(t, s)
	c, err := repo.FindColour(ctx, conn, 7)
	require.NoError(t, err)
	assert.Nil(t, c)
}
