package product

import (
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/product/repository"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.ProvideProduct),
	fx.Provide(repository.ProvideVariant),
	fx.Provide(service.New),
	fx.Provide(service.NewQuery),
)
