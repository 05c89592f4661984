package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/cache"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/config"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/observability/metrics"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/product/domain"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QueryParams struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Config   *config.CatalogConfigHolder
	Products domain.ProductRepository
	Variants domain.VariantRepository
	Cache    cache.Store
	Metrics  *metrics.Metrics `optional:"true"`
}

type QueryService struct {
	db       *gorm.DB
	log      *zap.Logger
	cfg      *config.CatalogConfigHolder
	products domain.ProductRepository
	variants domain.VariantRepository
	cache    cache.Store
	metrics  *metrics.Metrics
}

func NewQuery(p QueryParams) domain.QueryService {
	return &QueryService{
		db:       p.DB,
		log:      p.Log.Named("product.query"),
		cfg:      p.Config,
		products: p.Products,
		variants: p.Variants,
		cache:    p.Cache,
		metrics:  p.Metrics,
	}
}

func (s *QueryService) Get(ctx context.Context, id string) (*domain.Response, error) {
	productID, err := parseID(id, domain.ErrInvalidID)
	if err != nil {
		return nil, err
	}
	product, err := s.products.FindWithAssociations(ctx, s.db, productID)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	resp := toResponse(product)
	return &resp, nil
}

func (s *QueryService) GetVariant(ctx context.Context, id string) (*domain.VariantResponse, error) {
	variantID, err := parseID(id, domain.ErrInvalidVariantID)
	if err != nil {
		return nil, err
	}
	variant, err := s.variants.FindWithAssociations(ctx, s.db, variantID)
	if err != nil {
		return nil, fmt.Errorf("load variant: %w", err)
	}
	if variant == nil {
		return nil, domain.ErrVariantNotFound
	}
	resp := toVariantResponse(variant)
	return &resp, nil
}

// List pages through every product ordered by name.
func (s *QueryService) List(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	page := s.normalize(req)

	var cached domain.ListResponse
	key, hit := s.lookup(ctx, "product_list", "all", "", page, &cached)
	if hit {
		return &cached, nil
	}

	products, total, err := s.products.List(ctx, s.db, domain.ListFilter{
		OrderBy: domain.OrderByNameAsc,
		Page:    page,
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	resp := &domain.ListResponse{
		Products:   toResponses(products),
		Pagination: pagination.NewPageInfo(total, page),
	}
	s.store(ctx, key, resp)
	return resp, nil
}

// ListByCategory returns (nil, nil) when the category does not exist.
func (s *QueryService) ListByCategory(ctx context.Context, categoryID string, req domain.ListRequest) (*domain.CategoryListResponse, error) {
	cid, err := parseID(categoryID, domain.ErrInvalidCategory)
	if err != nil {
		return nil, err
	}
	page := s.normalize(req)

	var cached domain.CategoryListResponse
	key, hit := s.lookup(ctx, "product_list", "category", strconv.FormatInt(cid, 10), page, &cached)
	if hit {
		return &cached, nil
	}

	category, err := s.products.FindCategory(ctx, s.db, cid)
	if err != nil {
		return nil, fmt.Errorf("load category: %w", err)
	}
	if category == nil {
		return nil, nil
	}

	products, total, err := s.products.List(ctx, s.db, domain.ListFilter{
		CategoryID: &cid,
		OrderBy:    domain.OrderByCreatedAtDesc,
		Page:       page,
	})
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}

	resp := &domain.CategoryListResponse{
		Category:   toCategoryRef(category),
		Products:   toResponses(products),
		Pagination: pagination.NewPageInfo(total, page),
	}
	s.store(ctx, key, resp)
	return resp, nil
}

// Search matches name case-insensitively. A blank term matches nothing.
func (s *QueryService) Search(ctx context.Context, term string, req domain.ListRequest) (*domain.ListResponse, error) {
	page := s.normalize(req)
	term = strings.TrimSpace(term)
	if term == "" {
		return &domain.ListResponse{
			Products:   []domain.Response{},
			Pagination: pagination.NewPageInfo(0, page),
		}, nil
	}

	var cached domain.ListResponse
	key, hit := s.lookup(ctx, "product_search", "search", strings.ToLower(term), page, &cached)
	if hit {
		return &cached, nil
	}

	products, total, err := s.products.List(ctx, s.db, domain.ListFilter{
		NameTerm: term,
		OrderBy:  domain.OrderByCreatedAtDesc,
		Page:     page,
	})
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	resp := &domain.ListResponse{
		Products:   toResponses(products),
		Pagination: pagination.NewPageInfo(total, page),
	}
	s.store(ctx, key, resp)
	return resp, nil
}

func (s *QueryService) normalize(req domain.ListRequest) pagination.Pagination {
	cfg := s.cfg.Get().Pagination
	return pagination.Pagination{Page: req.Page, Limit: req.Limit}.Normalize(cfg.DefaultLimit, cfg.MaxLimit)
}

func toResponses(products []domain.Product) []domain.Response {
	out := make([]domain.Response, 0, len(products))
	for i := range products {
		out = append(out, toResponse(&products[i]))
	}
	return out
}
