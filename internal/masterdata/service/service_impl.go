package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/cache"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/clock"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/masterdata/domain"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/pkg/db"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/pkg/db/option"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var hexColour = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Cache      cache.Store
	Categories repository.Repository[domain.Category]
	Colours    repository.Repository[domain.Colour]
	Sizes      repository.Repository[domain.Size]
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	cache      cache.Store
	categories repository.Repository[domain.Category]
	colours    repository.Repository[domain.Colour]
	sizes      repository.Repository[domain.Size]
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("masterdata.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		cache:      p.Cache,
		categories: p.Categories,
		colours:    p.Colours,
		sizes:      p.Sizes,
	}
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.CategoryResponse, error) {
	items, err := s.categories.Find(ctx, nil, byName())
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]domain.CategoryResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toCategoryResponse(item))
	}
	return out, nil
}

func (s *Service) CreateCategory(ctx context.Context, req domain.CategoryRequest) (*domain.CategoryResponse, error) {
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	category := &domain.Category{
		ID:        s.genID.Generate().Int64(),
		Name:      name,
		Slug:      slug.Make(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, translate("create category", err)
	}

	resp := toCategoryResponse(category)
	return &resp, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id string, req domain.CategoryRequest) (*domain.CategoryResponse, error) {
	categoryID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}

	err = s.categories.Update(ctx, categoryID, map[string]any{
		"name":       name,
		"slug":       slug.Make(name),
		"updated_at": s.clock.Now(),
	})
	if err != nil {
		return nil, translate("update category", err)
	}
	s.invalidateListings(ctx)

	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("load category: %w", err)
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	resp := toCategoryResponse(category)
	return &resp, nil
}

// DeleteCategory removes the category and leaves its products uncategorised.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	categoryID, err := parseID(id)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := detach(ctx, tx, "products", "category_id", categoryID); err != nil {
			return err
		}
		return s.categories.WithTrx(tx).Delete(ctx, categoryID)
	})
	if err != nil {
		return translate("delete category", err)
	}
	s.invalidateListings(ctx)
	return nil
}

func (s *Service) ListColours(ctx context.Context) ([]domain.ColourResponse, error) {
	items, err := s.colours.Find(ctx, nil, byName())
	if err != nil {
		return nil, fmt.Errorf("list colours: %w", err)
	}
	out := make([]domain.ColourResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toColourResponse(item))
	}
	return out, nil
}

func (s *Service) CreateColour(ctx context.Context, req domain.ColourRequest) (*domain.ColourResponse, error) {
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}
	hex, err := validateHex(req.Hex)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	colour := &domain.Colour{
		ID:        s.genID.Generate().Int64(),
		Name:      name,
		Hex:       hex,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.colours.Create(ctx, colour); err != nil {
		return nil, translate("create colour", err)
	}

	resp := toColourResponse(colour)
	return &resp, nil
}

func (s *Service) UpdateColour(ctx context.Context, id string, req domain.ColourRequest) (*domain.ColourResponse, error) {
	colourID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}
	hex, err := validateHex(req.Hex)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{"name": name, "updated_at": s.clock.Now()}
	if req.Hex != nil {
		if hex == nil {
			fields["hex"] = nil
		} else {
			fields["hex"] = *hex
		}
	}
	if err := s.colours.Update(ctx, colourID, fields); err != nil {
		return nil, translate("update colour", err)
	}
	s.invalidateListings(ctx)

	colour, err := s.colours.FindByID(ctx, colourID)
	if err != nil {
		return nil, fmt.Errorf("load colour: %w", err)
	}
	if colour == nil {
		return nil, domain.ErrNotFound
	}
	resp := toColourResponse(colour)
	return &resp, nil
}

func (s *Service) DeleteColour(ctx context.Context, id string) error {
	colourID, err := parseID(id)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := detach(ctx, tx, "variants", "colour_id", colourID); err != nil {
			return err
		}
		return s.colours.WithTrx(tx).Delete(ctx, colourID)
	})
	if err != nil {
		return translate("delete colour", err)
	}
	s.invalidateListings(ctx)
	return nil
}

func (s *Service) ListSizes(ctx context.Context) ([]domain.SizeResponse, error) {
	items, err := s.sizes.Find(ctx, nil, bySortOrder())
	if err != nil {
		return nil, fmt.Errorf("list sizes: %w", err)
	}
	out := make([]domain.SizeResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toSizeResponse(item))
	}
	return out, nil
}

func (s *Service) CreateSize(ctx context.Context, req domain.SizeRequest) (*domain.SizeResponse, error) {
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}
	sortOrder := 0
	if req.SortOrder != nil {
		if *req.SortOrder < 0 {
			return nil, domain.ErrInvalidSortOrder
		}
		sortOrder = *req.SortOrder
	}

	now := s.clock.Now()
	size := &domain.Size{
		ID:        s.genID.Generate().Int64(),
		Name:      name,
		SortOrder: sortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sizes.Create(ctx, size); err != nil {
		return nil, translate("create size", err)
	}

	resp := toSizeResponse(size)
	return &resp, nil
}

func (s *Service) UpdateSize(ctx context.Context, id string, req domain.SizeRequest) (*domain.SizeResponse, error) {
	sizeID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{"name": name, "updated_at": s.clock.Now()}
	if req.SortOrder != nil {
		if *req.SortOrder < 0 {
			return nil, domain.ErrInvalidSortOrder
		}
		fields["sort_order"] = *req.SortOrder
	}
	if err := s.sizes.Update(ctx, sizeID, fields); err != nil {
		return nil, translate("update size", err)
	}
	s.invalidateListings(ctx)

	size, err := s.sizes.FindByID(ctx, sizeID)
	if err != nil {
		return nil, fmt.Errorf("load size: %w", err)
	}
	if size == nil {
		return nil, domain.ErrNotFound
	}
	resp := toSizeResponse(size)
	return &resp, nil
}

func (s *Service) DeleteSize(ctx context.Context, id string) error {
	sizeID, err := parseID(id)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := detach(ctx, tx, "variants", "size_id", sizeID); err != nil {
			return err
		}
		return s.sizes.WithTrx(tx).Delete(ctx, sizeID)
	})
	if err != nil {
		return translate("delete size", err)
	}
	s.invalidateListings(ctx)
	return nil
}

func (s *Service) invalidateListings(ctx context.Context) {
	cache.InvalidateProductListings(ctx, s.cache)
}

// detach nulls every reference to id in table.column.
func detach(ctx context.Context, tx *gorm.DB, table, column string, id int64) error {
	err := tx.WithContext(ctx).Table(table).Where(column+" = ?", id).Update(column, gorm.Expr("NULL")).Error
	if err != nil {
		return fmt.Errorf("detach %s.%s: %w", table, column, err)
	}
	return nil
}

func byName() option.QueryOption {
	return option.WithSortBy(option.WithQuerySortBy("name", "asc", map[string]bool{"name": true}))
}

func bySortOrder() option.QueryOption {
	return option.WithSortBy(option.WithQuerySortBy("sort_order", "asc", map[string]bool{"sort_order": true}))
}

func parseID(raw string) (int64, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}
	return id.Int64(), nil
}

func validateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", domain.ErrInvalidName
	}
	return name, nil
}

// validateHex accepts #rrggbb. An empty string clears the value.
func validateHex(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return nil, nil
	}
	if !hexColour.MatchString(value) {
		return nil, domain.ErrInvalidHex
	}
	value = strings.ToUpper(value)
	return &value, nil
}

func translate(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return domain.ErrNotFound
	case db.IsDuplicateKeyErr(err):
		return domain.ErrDuplicateName
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func toCategoryResponse(c *domain.Category) domain.CategoryResponse {
	return domain.CategoryResponse{
		ID:        formatID(c.ID),
		Name:      c.Name,
		Slug:      c.Slug,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toColourResponse(c *domain.Colour) domain.ColourResponse {
	return domain.ColourResponse{
		ID:        formatID(c.ID),
		Name:      c.Name,
		Hex:       c.Hex,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toSizeResponse(s *domain.Size) domain.SizeResponse {
	return domain.SizeResponse{
		ID:        formatID(s.ID),
		Name:      s.Name,
		SortOrder: s.SortOrder,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
