package service

import (
	"context"
	"fmt"
	"net/mail"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/clock"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/merchant/domain"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/merchantcontext"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/pkg/db"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  repository.Repository[domain.Merchant]
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  repository.Repository[domain.Merchant]
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("merchant.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, domain.ErrInvalidEmail
	}

	now := s.clock.Now()
	merchant := &domain.Merchant{
		ID:        s.genID.Generate().Int64(),
		Name:      name,
		Email:     email,
		Metadata:  datatypes.JSONMap(req.Metadata),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, merchant); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("create merchant: %w", err)
	}

	s.log.Info("merchant created", zap.Int64("merchant_id", merchant.ID))
	return toResponse(merchant), nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	merchantID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || merchantID <= 0 {
		return nil, domain.ErrInvalidID
	}
	return s.load(ctx, merchantID.Int64())
}

func (s *Service) Current(ctx context.Context) (*domain.Response, error) {
	merchantID, ok := merchantcontext.MerchantIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.load(ctx, merchantID.Int64())
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Response, error) {
	merchant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load merchant: %w", err)
	}
	if merchant == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(merchant), nil
}

func toResponse(m *domain.Merchant) *domain.Response {
	return &domain.Response{
		ID:        strconv.FormatInt(m.ID, 10),
		Name:      m.Name,
		Email:     m.Email,
		Metadata:  map[string]any(m.Metadata),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
