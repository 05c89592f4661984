package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type CatalogConfig struct {
	Pagination PaginationConfig `mapstructure:"pagination"`
	Cache      CacheConfig      `mapstructure:"cache"`
}

type PaginationConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
}

type CacheConfig struct {
	ListTTL time.Duration `mapstructure:"list_ttl"`
}

func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		Pagination: PaginationConfig{DefaultLimit: 10, MaxLimit: 100},
		Cache:      CacheConfig{ListTTL: 5 * time.Minute},
	}
}

type CatalogConfigHolder struct {
	current atomic.Value // holds CatalogConfig
}

// NewStaticCatalogConfigHolder returns a holder that never reloads.
func NewStaticCatalogConfigHolder(cfg CatalogConfig) *CatalogConfigHolder {
	holder := &CatalogConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewCatalogConfigHolder() (*CatalogConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("catalog")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/catalog")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultCatalogConfig()
	v.SetDefault("catalog.pagination.default_limit", defaults.Pagination.DefaultLimit)
	v.SetDefault("catalog.pagination.max_limit", defaults.Pagination.MaxLimit)
	v.SetDefault("catalog.cache.list_ttl", defaults.Cache.ListTTL)

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		fileFound = false
	}

	var cfg CatalogConfig
	if err := v.UnmarshalKey("catalog", &cfg); err != nil {
		return nil, err
	}
	if err := validateCatalogConfig(cfg); err != nil {
		return nil, err
	}

	holder := NewStaticCatalogConfigHolder(cfg)
	if !fileFound {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated CatalogConfig
		if err := v.UnmarshalKey("catalog", &updated); err != nil {
			log.Printf("[catalog-config] reload failed: %v", err)
			return
		}
		if err := validateCatalogConfig(updated); err != nil {
			log.Printf("[catalog-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[catalog-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *CatalogConfigHolder) Get() CatalogConfig {
	return h.current.Load().(CatalogConfig)
}

func validateCatalogConfig(cfg CatalogConfig) error {
	if cfg.Pagination.DefaultLimit <= 0 {
		return errors.New("catalog.pagination.default_limit must be positive")
	}
	if cfg.Pagination.MaxLimit < cfg.Pagination.DefaultLimit {
		return errors.New("catalog.pagination.max_limit must be >= default_limit")
	}
	if cfg.Cache.ListTTL < 0 {
		return errors.New("catalog.cache.list_ttl cannot be negative")
	}
	return nil
}
