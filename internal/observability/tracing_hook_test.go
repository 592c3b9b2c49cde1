package observability

import (
	"context"
	"testing"

	"github.com/annel0/ocean-terrain/internal/config"
	"github.com/annel0/ocean-terrain/internal/tile"
	"github.com/annel0/ocean-terrain/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracingHook_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	hook := NewTracingHook(context.Background(), tp)
	tl := tile.New(vec.Vec3Float{X: 20, Z: 30}, 10, tile.WithHook(hook))
	n := tile.New(vec.Vec3Float{}, 10)

	tl.AddNeighbor(tile.Bottom, n)
	tl.AddNeighbor(tile.Bottom, n)
	tl.RemoveNeighbor(tile.Bottom)
	tl.Deactivate()

	spans := recorder.Ended()
	require.Len(t, spans, 3)

	assert.Equal(t, "tile.neighbor_rejected", spans[0].Name())
	assert.Equal(t, "tile.neighbor_removed", spans[1].Name())
	assert.Equal(t, "tile.deactivate", spans[2].Name())

	dir, ok := attrValue(spans[0].Attributes(), "offset.direction")
	require.True(t, ok)
	assert.Equal(t, "Bottom", dir.AsString())

	x, ok := attrValue(spans[2].Attributes(), "tile.x")
	require.True(t, ok)
	assert.Equal(t, 20.0, x.AsFloat64())

	id, ok := attrValue(spans[2].Attributes(), "tile.id")
	require.True(t, ok)
	assert.Equal(t, tl.ID().String(), id.AsString())
}

func TestTracingHook_RawOffsetHasNoDirection(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	tl := tile.New(vec.Vec3Float{}, 10, tile.WithHook(NewTracingHook(context.Background(), tp)))
	tl.RemoveNeighborAt(vec.Vec2Float{X: 3, Y: 3})

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	_, ok := attrValue(spans[0].Attributes(), "offset.direction")
	assert.False(t, ok)
}

func TestTracingHook_DefaultsToGlobalProvider(t *testing.T) {
	hook := NewTracingHook(context.TODO(), nil)

	tl := tile.New(vec.Vec3Float{}, 10, tile.WithHook(hook))
	assert.NotPanics(t, tl.Deactivate)
}

func TestCollectProcessStats(t *testing.T) {
	stats, err := CollectProcessStats()
	if err != nil {
		t.Skipf("process stats unavailable: %v", err)
	}

	assert.Greater(t, stats.HeapMB, 0.0)
	assert.GreaterOrEqual(t, stats.Goroutines, 1)
	assert.Contains(t, stats.String(), "goroutines=")
}

func TestInitTelemetry_DisabledIsNoop(t *testing.T) {
	shutdown, err := InitTelemetry(context.Background(), config.TelemetryConfig{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
