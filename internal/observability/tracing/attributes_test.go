package tracing

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestSafeAttributesDropsUnknownKeys(t *testing.T) {
	attrs := SafeAttributes(
		attribute.String("http.route", "/api/products/:id"),
		attribute.String("db.statement", "SELECT 1"),
	)
	assert.Len(t, attrs, 1)
	assert.Equal(t, attribute.Key("http.route"), attrs[0].Key)
}

func TestSafeErrorTruncates(t *testing.T) {
	err := SafeError(errors.New("first line\nINSERT INTO products ..."))
	assert.EqualError(t, err, "first line")

	long := SafeError(errors.New(strings.Repeat("x", 500)))
	assert.Len(t, long.Error(), 200)

	assert.Nil(t, SafeError(nil))
}
