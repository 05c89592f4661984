package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/auth"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/clock"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/config"
	masterdatadomain "github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/masterdata/domain"
	merchantdomain "github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/merchant/domain"
	productdomain "github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/product/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	merchantToken = "merchant-token"
	otherToken    = "other-token"
	userToken     = "user-token"
)

var testNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type harness struct {
	server     *Server
	products   *productServiceMock
	catalog    *queryServiceMock
	masterdata *masterdataServiceMock
	merchants  *merchantServiceMock
	assets     *memoryAssets
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	h := &harness{
		products:   &productServiceMock{},
		catalog:    &queryServiceMock{},
		masterdata: &masterdataServiceMock{},
		merchants:  &merchantServiceMock{},
		assets:     &memoryAssets{objects: map[string][]byte{}},
	}
	h.server = NewServer(ServerParams{
		Gin:   engine,
		Cfg:   config.Config{Asset: config.AssetConfig{BaseURL: "/assets"}},
		Log:   zap.NewNop(),
		Clock: clock.NewFakeClock(testNow),
		Verifier: stubVerifier{
			merchantToken: {UserID: "u-1", MerchantID: snowflake.ID(7)},
			otherToken:    {UserID: "u-2", MerchantID: snowflake.ID(8)},
			userToken:     {UserID: "u-3"},
		},
		Products:   h.products,
		Catalog:    h.catalog,
		Masterdata: h.masterdata,
		Merchants:  h.merchants,
		Assets:     h.assets,
	})

	t.Cleanup(func() {
		h.products.AssertExpectations(t)
		h.catalog.AssertExpectations(t)
		h.masterdata.AssertExpectations(t)
		h.merchants.AssertExpectations(t)
	})
	return h
}

func (h *harness) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return h.send(req, token)
}

func (h *harness) send(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.server.Engine().ServeHTTP(rec, req)
	return rec
}

// ownedProduct stubs the ownership lookup for a product that belongs to merchant 7.
func (h *harness) ownedProduct(id string) {
	h.catalog.On("Get", mock.Anything, id).Return(&productdomain.Response{ID: id, MerchantID: "7"}, nil)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func errorType(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	payload, _ := decodeBody(t, rec)["error"].(map[string]any)
	value, _ := payload["type"].(string)
	return value
}

type stubVerifier map[string]*auth.Identity

func (v stubVerifier) Verify(_ context.Context, token string) (*auth.Identity, error) {
	identity, ok := v[token]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return identity, nil
}

type memoryAssets struct {
	objects map[string][]byte
	deleted []string
}

func (m *memoryAssets) Put(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.objects[key] = data
	return "https://cdn.test/" + key, nil
}

func (m *memoryAssets) Delete(_ context.Context, key string) error {
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *memoryAssets) Driver() string { return "memory" }

type productServiceMock struct {
	mock.Mock
}

func (m *productServiceMock) Create(ctx context.Context, req productdomain.CreateRequest) (*productdomain.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*productdomain.Response)
	return resp, args.Error(1)
}

func (m *productServiceMock) Update(ctx context.Context, req productdomain.UpdateRequest) (*productdomain.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*productdomain.Response)
	return resp, args.Error(1)
}

func (m *productServiceMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *productServiceMock) AddVariant(ctx context.Context, productID string, req productdomain.VariantInput) (*productdomain.VariantResponse, error) {
	args := m.Called(ctx, productID, req)
	resp, _ := args.Get(0).(*productdomain.VariantResponse)
	return resp, args.Error(1)
}

func (m *productServiceMock) DeleteVariant(ctx context.Context, productID, variantID string) (*productdomain.DeleteVariantResult, error) {
	args := m.Called(ctx, productID, variantID)
	resp, _ := args.Get(0).(*productdomain.DeleteVariantResult)
	return resp, args.Error(1)
}

func (m *productServiceMock) UpdateVariant(ctx context.Context, req productdomain.UpdateVariantRequest) (*productdomain.VariantResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*productdomain.VariantResponse)
	return resp, args.Error(1)
}

type queryServiceMock struct {
	mock.Mock
}

func (m *queryServiceMock) Get(ctx context.Context, id string) (*productdomain.Response, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*productdomain.Response)
	return resp, args.Error(1)
}

func (m *queryServiceMock) GetVariant(ctx context.Context, id string) (*productdomain.VariantResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*productdomain.VariantResponse)
	return resp, args.Error(1)
}

func (m *queryServiceMock) List(ctx context.Context, req productdomain.ListRequest) (*productdomain.ListResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*productdomain.ListResponse)
	return resp, args.Error(1)
}

func (m *queryServiceMock) ListByCategory(ctx context.Context, categoryID string, req productdomain.ListRequest) (*productdomain.CategoryListResponse, error) {
	args := m.Called(ctx, categoryID, req)
	resp, _ := args.Get(0).(*productdomain.CategoryListResponse)
	return resp, args.Error(1)
}

func (m *queryServiceMock) Search(ctx context.Context, term string, req productdomain.ListRequest) (*productdomain.ListResponse, error) {
	args := m.Called(ctx, term, req)
	resp, _ := args.Get(0).(*productdomain.ListResponse)
	return resp, args.Error(1)
}

type masterdataServiceMock struct {
	mock.Mock
}

func (m *masterdataServiceMock) ListCategories(ctx context.Context) ([]masterdatadomain.CategoryResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).([]masterdatadomain.CategoryResponse)
	return resp, args.Error(1)
}

func (m *masterdataServiceMock) CreateCategory(ctx context.Context, req masterdatadomain.CategoryRequest) (*masterdatadomain.CategoryResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*masterdatadomain.CategoryResponse)
	return resp, args.Error(1)
}

func (m *masterdataServiceMock) UpdateCategory(ctx context.Context, id string, req masterdatadomain.CategoryRequest) (*masterdatadomain.CategoryResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*masterdatadomain.CategoryResponse)
	return resp, args.Error(1)
}

func (m *masterdataServiceMock) DeleteCategory(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *masterdataServiceMock) ListColours(ctx context.Context) ([]masterdatadomain.ColourResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).([]masterdatadomain.ColourResponse)
	return resp, args.Error(1)
}

func (m *masterdataServiceMock) CreateColour(ctx context.Context, req masterdatadomain.ColourRequest) (*masterdatadomain.ColourResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*masterdatadomain.ColourResponse)
	return resp, args.Error(1)
}

func (m *masterdataServiceMock) UpdateColour(ctx context.Context, id string, req masterdatadomain.ColourRequest) (*masterdatadomain.ColourResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*masterdatadomain.ColourResponse)
	return resp, args.Error(1)
}

func (m *masterdataServiceMock) DeleteColour(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *masterdataServiceMock) ListSizes(ctx context.Context) ([]masterdatadomain.SizeResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).([]masterdatadomain.SizeResponse)
	return resp, args.Error(1)
}

func (m *masterdataServiceMock) CreateSize(ctx context.Context, req masterdatadomain.SizeRequest) (*masterdatadomain.SizeResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*masterdatadomain.SizeResponse)
	return resp, args.Error(1)
}

func (m *masterdataServiceMock) UpdateSize(ctx context.Context, id string, req masterdatadomain.SizeRequest) (*masterdatadomain.SizeResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*masterdatadomain.SizeResponse)
	return resp, args.Error(1)
}

func (m *masterdataServiceMock) DeleteSize(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type merchantServiceMock struct {
	mock.Mock
}

func (m *merchantServiceMock) Create(ctx context.Context, req merchantdomain.CreateRequest) (*merchantdomain.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*merchantdomain.Response)
	return resp, args.Error(1)
}

func (m *merchantServiceMock) Get(ctx context.Context, id string) (*merchantdomain.Response, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*merchantdomain.Response)
	return resp, args.Error(1)
}

func (m *merchantServiceMock) Current(ctx context.Context) (*merchantdomain.Response, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*merchantdomain.Response)
	return resp, args.Error(1)
}
