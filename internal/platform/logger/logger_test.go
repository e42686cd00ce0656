package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	t.Parallel()

	// Without a logger in the context, the process default is returned.
	assert.Equal(t, slog.Default(), FromContext(context.Background()))

	scoped := slog.Default().With(slog.String("trace_id", "abc123"))
	ctx := WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, FromContext(ctx))
}

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	fallback := slog.Default().With(slog.String("component", "test"))

	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	assert.Equal(t, slog.Default(), FromContextOrDefault(context.Background(), nil))

	scoped := slog.Default().With(slog.String("trace_id", "abc123"))
	ctx := WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, FromContextOrDefault(ctx, fallback))
}
