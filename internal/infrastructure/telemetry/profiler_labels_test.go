package telemetry

import (
	"context"
	"runtime/pprof"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithProfilingLabels(t *testing.T) {
	var route, method, role string
	var hasEmpty bool

	WithProfilingLabels(context.Background(), map[string]string{
		ProfilingLabelRoute:  "/api/v1/properties/:id",
		ProfilingLabelMethod: "GET",
		ProfilingLabelRole:   "",
	}, func(ctx context.Context) {
		route, _ = pprof.Label(ctx, ProfilingLabelRoute)
		method, _ = pprof.Label(ctx, ProfilingLabelMethod)
		role, hasEmpty = pprof.Label(ctx, ProfilingLabelRole)
	})

	assert.Equal(t, "/api/v1/properties/:id", route)
	assert.Equal(t, "GET", method)
	assert.False(t, hasEmpty)
	assert.Empty(t, role)
}

func TestWithProfilingLabels_Truncates(t *testing.T) {
	var got string
	WithProfilingLabels(context.Background(), map[string]string{
		ProfilingLabelOperation: strings.Repeat("x", 300),
	}, func(ctx context.Context) {
		got, _ = pprof.Label(ctx, ProfilingLabelOperation)
	})
	assert.Len(t, got, maxLabelValueLength)
}

func TestWithProfilingLabels_NoLabels(t *testing.T) {
	called := false
	WithProfilingLabels(context.Background(), nil, func(context.Context) { called = true })
	assert.True(t, called)
}
