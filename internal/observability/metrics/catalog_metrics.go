package metrics

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

const (
	OutcomeOK           = "ok"
	OutcomeValidation   = "validation"
	OutcomeNotFound     = "not_found"
	OutcomeDuplicateSKU = "duplicate_sku"
	OutcomeRefused      = "refused"
	OutcomeTimeout      = "timeout"
	OutcomeLockTimeout  = "lock_timeout"
	OutcomeDBError      = "db_error"
	OutcomeUnknown      = "unknown"
)

// CatalogMetrics counts consistency engine writes and refusals.
type CatalogMetrics struct {
	productWrites   *prometheus.CounterVec
	variantRefusals *prometheus.CounterVec
}

func NewCatalogMetrics(registerer prometheus.Registerer, cfg Config) *CatalogMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "catalog"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	productWrites := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "catalog_product_writes_total",
		Help:        "Product and variant writes by operation and outcome.",
		ConstLabels: constLabels,
	}, []string{"operation", "outcome"})
	variantRefusals := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "catalog_variant_refusals_total",
		Help:        "Variant deletions refused by reason.",
		ConstLabels: constLabels,
	}, []string{"reason"})

	registerer.MustRegister(productWrites, variantRefusals)

	return &CatalogMetrics{
		productWrites:   productWrites,
		variantRefusals: variantRefusals,
	}
}

// RecordProductWrite increments the write counter for an engine operation.
func (m *CatalogMetrics) RecordProductWrite(operation, outcome string) {
	if m == nil || m.productWrites == nil {
		return
	}
	if outcome == "" {
		outcome = OutcomeUnknown
	}
	m.productWrites.WithLabelValues(operation, outcome).Inc()
}

// RecordVariantRefusal increments the refusal counter.
func (m *CatalogMetrics) RecordVariantRefusal(reason string) {
	if m == nil || m.variantRefusals == nil {
		return
	}
	m.variantRefusals.WithLabelValues(reason).Inc()
}

// ClassifyStoreError maps a persistence error to a low-cardinality outcome.
func ClassifyStoreError(err error) string {
	if err == nil {
		return OutcomeOK
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return OutcomeTimeout
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return OutcomeNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || hasPGCode(err, "23505") {
		return OutcomeDuplicateSKU
	}
	if hasPGCode(err, "55P03") {
		return OutcomeLockTimeout
	}
	if isDBError(err) {
		return OutcomeDBError
	}
	return OutcomeUnknown
}

func hasPGCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

func isDBError(err error) bool {
	if errors.Is(err, gorm.ErrInvalidDB) ||
		errors.Is(err, gorm.ErrInvalidTransaction) ||
		errors.Is(err, gorm.ErrInvalidField) ||
		errors.Is(err, gorm.ErrInvalidData) ||
		errors.Is(err, gorm.ErrMissingWhereClause) ||
		errors.Is(err, gorm.ErrInvalidValue) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr)
}
