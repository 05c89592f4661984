package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/cache"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/clock"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/config"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/merchantcontext"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/product/domain"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/product/repository"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testEpoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	db       *gorm.DB
	node     *snowflake.Node
	clock    *clock.FakeClock
	cache    *recordingCache
	svc      domain.Service
	query    domain.QueryService
	merchant int64
	ctx      context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, conn.AutoMigrate(
		&domain.MerchantSummary{},
		&domain.CategorySummary{},
		&domain.ColourSummary{},
		&domain.SizeSummary{},
		&domain.Product{},
		&domain.Variant{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	f := &fixture{
		db:    conn,
		node:  node,
		clock: clock.NewFakeClock(testEpoch),
		cache: newRecordingCache(),
	}

	f.merchant = node.Generate().Int64()
	require.NoError(t, conn.Create(&domain.MerchantSummary{ID: f.merchant, Name: "Toko Maju"}).Error)
	f.ctx = merchantcontext.WithMerchantID(context.Background(), f.merchant)

	products := repository.ProvideProduct()
	variants := repository.ProvideVariant()
	f.svc = New(Params{
		DB:       conn,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    f.clock,
		Products: products,
		Variants: variants,
		Cache:    f.cache,
	})
	f.query = NewQuery(QueryParams{
		DB:       conn,
		Log:      zap.NewNop(),
		Config:   config.NewStaticCatalogConfigHolder(config.DefaultCatalogConfig()),
		Products: products,
		Variants: variants,
		Cache:    f.cache,
	})
	return f
}

func (f *fixture) createCategory(t *testing.T, name string) int64 {
	t.Helper()
	id := f.node.Generate().Int64()
	require.NoError(t, f.db.Create(&domain.CategorySummary{ID: id, Name: name, Slug: strings.ToLower(name)}).Error)
	return id
}

func (f *fixture) createProduct(t *testing.T, name string, skus ...string) *domain.Response {
	t.Helper()
	req := domain.CreateRequest{Name: name, Price: ptr(10000.0)}
	for _, sku := range skus {
		req.Variants = append(req.Variants, domain.VariantInput{SKU: sku, Stock: ptr(1)})
	}
	resp, err := f.svc.Create(f.ctx, req)
	require.NoError(t, err)
	return resp
}

// assertConsistent checks that the stored product has at least one variant and that has_variant matches the count.
func (f *fixture) assertConsistent(t *testing.T, productID string) {
	t.Helper()

	var product domain.Product
	require.NoError(t, f.db.Where("id = ?", productID).First(&product).Error)

	var count int64
	require.NoError(t, f.db.Model(&domain.Variant{}).Where("product_id = ?", productID).Count(&count).Error)

	require.GreaterOrEqual(t, count, int64(1), "product %s has no variants", productID)
	require.Equal(t, count > 1, product.HasVariant, "has_variant out of sync for %d variants", count)
}

func (f *fixture) variantBySKU(t *testing.T, sku string) domain.Variant {
	t.Helper()
	var v domain.Variant
	require.NoError(t, f.db.Where("sku = ?", sku).First(&v).Error)
	return v
}

func (f *fixture) countVariants(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&domain.Variant{}).Count(&count).Error)
	return count
}

func variantID(t *testing.T, resp *domain.Response, sku string) string {
	t.Helper()
	for _, v := range resp.Variants {
		if v.SKU == sku {
			return v.ID
		}
	}
	t.Fatalf("variant %q not in response", sku)
	return ""
}

func ptr[T any](v T) *T {
	return &v
}

type recordingCache struct {
	mu          sync.Mutex
	values      map[string][]byte
	invalidated []string
	generations map[string]int64
	// beforeSet runs once, ahead of the next Set.
	beforeSet func()
}

func newRecordingCache() *recordingCache {
	return &recordingCache{values: map[string][]byte{}, generations: map[string]int64{}}
}

func (c *recordingCache) Get(_ context.Context, key string, dest any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.values[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (c *recordingCache) Set(_ context.Context, key string, value any, _ time.Duration) {
	c.mu.Lock()
	hook := c.beforeSet
	c.beforeSet = nil
	c.mu.Unlock()
	if hook != nil {
		hook()
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = raw
}

func (c *recordingCache) DeletePrefix(_ context.Context, prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, prefix)
	for key := range c.values {
		if strings.HasPrefix(key, prefix) {
			delete(c.values, key)
		}
	}
}

func (c *recordingCache) Generation(_ context.Context, key string) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[key], true
}

func (c *recordingCache) Bump(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[key]++
}

func (c *recordingCache) invalidations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.invalidated)
}

func (c *recordingCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.values)
}

var _ cache.Store = (*recordingCache)(nil)
