package metrics

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("kind", "list"),
		attribute.String("product_id", "456"),
		attribute.String("result", "hit"),
	)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	for _, attr := range attrs {
		if attr.Key == "product_id" {
			t.Fatalf("expected product_id to be dropped")
		}
	}
}

func TestRecordersTolerateNoopProvider(t *testing.T) {
	m, err := New(Config{ServiceName: "catalog"}, noop.NewMeterProvider())
	if err != nil {
		t.Fatalf("new metrics: %v", err)
	}
	m.RecordCacheLookup(context.Background(), "list", true)
	m.RecordAssetUpload(context.Background(), "local", errors.New("boom"))

	var nilMetrics *Metrics
	nilMetrics.RecordCacheLookup(context.Background(), "list", false)
}
