package service

import (
	"testing"
	"time"

	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/product/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddVariantPersistsHasVariant(t *testing.T) {
	f := newFixture(t)
	created := f.createProduct(t, "Kemeja", "KM-S")

	colour := domain.ColourSummary{ID: f.node.Generate().Int64(), Name: "Merah"}
	require.NoError(t, f.db.Create(&colour).Error)

	resp, err := f.svc.AddVariant(f.ctx, created.ID, domain.VariantInput{
		SKU:      "KM-M",
		Stock:    ptr(4),
		ColourID: ptr(formatID(colour.ID)),
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "KM-M", resp.SKU)
	require.NotNil(t, resp.Colour)
	assert.Equal(t, "Merah", resp.Colour.Name)
	require.NotNil(t, resp.Product)
	assert.True(t, resp.Product.HasVariant)
	f.assertConsistent(t, created.ID)
}

func TestAddVariantMissingProductIsAbsent(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.AddVariant(f.ctx, f.node.Generate().String(), domain.VariantInput{SKU: "X", Stock: ptr(1)})
	require.NoError(t, err)
	assert.Nil(t, resp)
	assert.Zero(t, f.countVariants(t))
}

func TestAddVariantDuplicateSKU(t *testing.T) {
	f := newFixture(t)
	created := f.createProduct(t, "Kemeja", "KM-S")

	_, err := f.svc.AddVariant(f.ctx, created.ID, domain.VariantInput{SKU: "KM-S", Stock: ptr(1)})
	require.ErrorIs(t, err, domain.ErrDuplicateSKU)
	f.assertConsistent(t, created.ID)
}

func TestDeleteVariantRefusesLastVariant(t *testing.T) {
	f := newFixture(t)
	created := f.createProduct(t, "Piring", "PR-1")
	vid := variantID(t, created, "PR-1")

	result, err := f.svc.DeleteVariant(f.ctx, created.ID, vid)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, domain.ReasonCannotDeleteLastVariant, result.Reason)
	assert.Equal(t, int64(1), result.RemainingVariantCount)
	f.variantBySKU(t, "PR-1")
	f.assertConsistent(t, created.ID)
}

func TestDeleteVariantRefusals(t *testing.T) {
	f := newFixture(t)
	mine := f.createProduct(t, "Piring", "PR-1", "PR-2")
	theirs := f.createProduct(t, "Sendok", "SD-1", "SD-2")

	result, err := f.svc.DeleteVariant(f.ctx, f.node.Generate().String(), variantID(t, mine, "PR-1"))
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonProductNotFound, result.Reason)

	result, err = f.svc.DeleteVariant(f.ctx, mine.ID, variantID(t, theirs, "SD-1"))
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonVariantNotFound, result.Reason)

	result, err = f.svc.DeleteVariant(f.ctx, mine.ID, f.node.Generate().String())
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonVariantNotFound, result.Reason)

	assert.Equal(t, int64(4), f.countVariants(t))
}

func TestDeleteVariantFlipsHasVariant(t *testing.T) {
	f := newFixture(t)
	created := f.createProduct(t, "Piring", "PR-1", "PR-2")
	vid := variantID(t, created, "PR-2")

	result, err := f.svc.DeleteVariant(f.ctx, created.ID, vid)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, vid, result.DeletedVariantID)
	assert.Equal(t, int64(1), result.RemainingVariantCount)
	assert.False(t, result.ProductHasVariant)
	f.assertConsistent(t, created.ID)
}

func TestUpdateVariantAppliesFields(t *testing.T) {
	f := newFixture(t)
	created := f.createProduct(t, "Rok", "RK-1", "RK-2")
	f.clock.Advance(time.Second)

	resp, err := f.svc.UpdateVariant(f.ctx, domain.UpdateVariantRequest{
		ID:    variantID(t, created, "RK-1"),
		SKU:   ptr("RK-1A"),
		Stock: ptr(12),
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "RK-1A", resp.SKU)
	assert.Equal(t, 12, resp.Stock)
	require.NotNil(t, resp.Product)
	assert.Equal(t, "Rok", resp.Product.Name)
}

func TestUpdateVariantNoFieldsIsNoop(t *testing.T) {
	f := newFixture(t)
	created := f.createProduct(t, "Rok", "RK-1")
	vid := variantID(t, created, "RK-1")
	before := f.variantBySKU(t, "RK-1")
	invalidations := f.cache.invalidations()
	f.clock.Advance(time.Hour)

	resp, err := f.svc.UpdateVariant(f.ctx, domain.UpdateVariantRequest{ID: vid})
	require.NoError(t, err)
	require.NotNil(t, resp)

	after := f.variantBySKU(t, "RK-1")
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
	assert.Equal(t, "RK-1", resp.SKU)
	assert.Equal(t, invalidations, f.cache.invalidations())
}

func TestUpdateVariantMissingIsAbsent(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.UpdateVariant(f.ctx, domain.UpdateVariantRequest{ID: f.node.Generate().String(), Stock: ptr(1)})
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestUpdateVariantDuplicateSKU(t *testing.T) {
	f := newFixture(t)
	created := f.createProduct(t, "Rok", "RK-1", "RK-2")

	_, err := f.svc.UpdateVariant(f.ctx, domain.UpdateVariantRequest{
		ID:    variantID(t, created, "RK-1"),
		SKU:   ptr("RK-2"),
		Stock: ptr(7),
	})
	require.ErrorIs(t, err, domain.ErrDuplicateSKU)
	assert.Equal(t, 1, f.variantBySKU(t, "RK-1").Stock)

	_, err = f.svc.UpdateVariant(f.ctx, domain.UpdateVariantRequest{ID: variantID(t, created, "RK-1"), Stock: ptr(-2)})
	require.ErrorIs(t, err, domain.ErrInvalidStock)
}

func TestUpdateVariantClearsColour(t *testing.T) {
	f := newFixture(t)
	colour := domain.ColourSummary{ID: f.node.Generate().Int64(), Name: "Biru"}
	require.NoError(t, f.db.Create(&colour).Error)

	created := f.createProduct(t, "Rok", "RK-1")
	vid := variantID(t, created, "RK-1")

	resp, err := f.svc.UpdateVariant(f.ctx, domain.UpdateVariantRequest{ID: vid, ColourID: ptr(formatID(colour.ID))})
	require.NoError(t, err)
	require.NotNil(t, resp.Colour)

	resp, err = f.svc.UpdateVariant(f.ctx, domain.UpdateVariantRequest{ID: vid, ColourID: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, resp.ColourID)
	assert.Nil(t, resp.Colour)
}
