package correlation

import (
	"context"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureCorrelationIDKeepsExisting(t *testing.T) {
	ctx := ContextWithCorrelationID(context.Background(), "abc")
	ctx, id := EnsureCorrelationID(ctx)
	assert.Equal(t, "abc", id)
	assert.Equal(t, "abc", ExtractCorrelationID(ctx))
}

func TestEnsureCorrelationIDGeneratesULID(t *testing.T) {
	ctx, id := EnsureCorrelationID(context.Background())
	_, err := ulid.ParseStrict(id)
	require.NoError(t, err)
	assert.Equal(t, id, ExtractCorrelationID(ctx))
}
