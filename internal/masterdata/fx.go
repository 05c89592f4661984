package masterdata

import (
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/masterdata/domain"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/masterdata/service"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/pkg/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("masterdata.service",
	fx.Provide(repository.ProvideStore[domain.Category]),
	fx.Provide(repository.ProvideStore[domain.Colour]),
	fx.Provide(repository.ProvideStore[domain.Size]),
	fx.Provide(service.New),
)
