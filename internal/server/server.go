package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/asset"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/auth"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/cache"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/clock"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/config"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/masterdata"
	masterdatadomain "github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/masterdata/domain"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/merchant"
	merchantdomain "github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/merchant/domain"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/observability"
	obsmiddleware "github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/observability/logger"
	obsmetrics "github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/observability/metrics"
	obstracing "github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/observability/tracing"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/product"
	productdomain "github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/product/domain"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/ratelimit"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	cache.Module,
	ratelimit.Module,
	auth.Module,
	asset.Module,
	merchant.Module,
	masterdata.Module,
	product.Module,
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(httpMetrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	log        *zap.Logger
	clock      clock.Clock
	verifier   auth.Verifier
	products   productdomain.Service
	catalog    productdomain.QueryService
	masterdata masterdatadomain.Service
	merchants  merchantdomain.Service
	assets     asset.Store
	limiter    *ratelimit.WriteLimiter
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	Log        *zap.Logger
	Clock      clock.Clock
	Verifier   auth.Verifier
	Products   productdomain.Service
	Catalog    productdomain.QueryService
	Masterdata masterdatadomain.Service
	Merchants  merchantdomain.Service
	Assets     asset.Store
	Limiter    *ratelimit.WriteLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		log:        p.Log.Named("http.server"),
		clock:      p.Clock,
		verifier:   p.Verifier,
		products:   p.Products,
		catalog:    p.Catalog,
		masterdata: p.Masterdata,
		merchants:  p.Merchants,
		assets:     p.Assets,
		limiter:    p.Limiter,
	}

	svc.registerAssetRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Products --------
	api.GET("/products", s.ListProducts)
	api.GET("/products/search", s.SearchProducts)
	api.GET("/products/:id", s.GetProductByID)
	api.GET("/categories/:id/products", s.ListProductsByCategory)

	writes := api.Group("", s.AuthRequired(), s.RequireMerchant(), s.WriteRateLimit())
	writes.POST("/products", s.CreateProduct)
	writes.PATCH("/products/:id", s.RequireProductOwner(), s.UpdateProduct)
	writes.DELETE("/products/:id", s.RequireProductOwner(), s.DeleteProduct)
	writes.PUT("/products/:id/avatar", s.RequireProductOwner(), s.UploadProductAvatar)

	// -------- Variants --------
	writes.POST("/products/:id/variants", s.RequireProductOwner(), s.AddVariant)
	writes.DELETE("/products/:id/variants/:vid", s.RequireProductOwner(), s.DeleteVariant)
	writes.PATCH("/variants/:id", s.RequireVariantOwner(), s.UpdateVariant)

	// -------- Master data --------
	api.GET("/categories", s.ListCategories)
	api.GET("/colours", s.ListColours)
	api.GET("/sizes", s.ListSizes)

	admin := api.Group("", s.AuthRequired())
	admin.POST("/categories", s.CreateCategory)
	admin.PATCH("/categories/:id", s.UpdateCategory)
	admin.DELETE("/categories/:id", s.DeleteCategory)
	admin.POST("/colours", s.CreateColour)
	admin.PATCH("/colours/:id", s.UpdateColour)
	admin.DELETE("/colours/:id", s.DeleteColour)
	admin.POST("/sizes", s.CreateSize)
	admin.PATCH("/sizes/:id", s.UpdateSize)
	admin.DELETE("/sizes/:id", s.DeleteSize)

	// -------- Merchants --------
	admin.POST("/merchants", s.CreateMerchant)
	admin.GET("/merchants/me", s.RequireMerchant(), s.CurrentMerchant)
	admin.GET("/merchants/:id", s.GetMerchantByID)
}

// registerAssetRoutes serves uploaded files when they live on the local disk.
func (s *Server) registerAssetRoutes() {
	local, ok := s.assets.(asset.LocalRoot)
	if !ok {
		return
	}
	root := strings.TrimSpace(local.Root())
	base := strings.TrimSpace(s.cfg.Asset.BaseURL)
	if root == "" || !strings.HasPrefix(base, "/") {
		return
	}
	s.engine.Static(base, root)
}
