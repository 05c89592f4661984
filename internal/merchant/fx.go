package merchant

import (
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/merchant/domain"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/merchant/service"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/pkg/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("merchant.service",
	fx.Provide(repository.ProvideStore[domain.Merchant]),
	fx.Provide(service.New),
)
