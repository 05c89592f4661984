package asset

import (
	"context"
	"fmt"
	"io"

	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/config"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("asset",
	fx.Provide(NewStore),
)

type Params struct {
	fx.In

	Config  config.Config
	Log     *zap.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

// LocalRoot is implemented by stores that keep files on the local disk.
type LocalRoot interface {
	Root() string
}

func NewStore(p Params) (Store, error) {
	var (
		store Store
		err   error
	)
	switch p.Config.Asset.Driver {
	case config.AssetDriverS3:
		store, err = newS3Store(context.Background(), p.Config.Asset)
	case config.AssetDriverLocal, "":
		store, err = newLocalStore(p.Config.Asset)
	default:
		return nil, fmt.Errorf("asset: unsupported driver %q", p.Config.Asset.Driver)
	}
	if err != nil {
		return nil, err
	}

	p.Log.Named("asset").Info("asset store ready", zap.String("driver", store.Driver()))
	return &instrumented{Store: store, metrics: p.Metrics}, nil
}

type instrumented struct {
	Store
	metrics *metrics.Metrics
}

func (s *instrumented) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	url, err := s.Store.Put(ctx, key, contentType, body, size)
	if s.metrics != nil {
		s.metrics.RecordAssetUpload(ctx, s.Store.Driver(), err)
	}
	return url, err
}

func (s *instrumented) Root() string {
	if local, ok := s.Store.(LocalRoot); ok {
		return local.Root()
	}
	return ""
}
