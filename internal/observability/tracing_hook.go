package observability

import (
	"context"

	"github.com/annel0/ocean-terrain/internal/tile"
	"github.com/annel0/ocean-terrain/internal/vec"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/annel0/ocean-terrain/internal/tile"

// TracingHook превращает события тайла в короткие спаны OpenTelemetry
type TracingHook struct {
	ctx    context.Context
	tracer trace.Tracer
}

// NewTracingHook создаёт хук поверх tp; nil означает глобальный провайдер
func NewTracingHook(ctx context.Context, tp trace.TracerProvider) *TracingHook {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &TracingHook{
		ctx:    ctx,
		tracer: tp.Tracer(tracerName),
	}
}

func (h *TracingHook) NeighborRejected(t *tile.Tile, offset vec.Vec2Float) {
	_, span := h.tracer.Start(h.ctx, "tile.neighbor_rejected",
		trace.WithAttributes(tileAttributes(t)...),
		trace.WithAttributes(offsetAttributes(offset)...),
	)
	span.AddEvent("neighbor already exists")
	span.End()
}

func (h *TracingHook) NeighborRemoved(t *tile.Tile, offset vec.Vec2Float) {
	_, span := h.tracer.Start(h.ctx, "tile.neighbor_removed",
		trace.WithAttributes(tileAttributes(t)...),
		trace.WithAttributes(offsetAttributes(offset)...),
	)
	span.End()
}

func (h *TracingHook) Deactivating(t *tile.Tile) {
	_, span := h.tracer.Start(h.ctx, "tile.deactivate",
		trace.WithAttributes(tileAttributes(t)...),
		trace.WithAttributes(attribute.Int("tile.islands", t.IslandCount())),
	)
	span.End()
}

func tileAttributes(t *tile.Tile) []attribute.KeyValue {
	c := t.Coordinate()
	return []attribute.KeyValue{
		attribute.String("tile.id", t.ID().String()),
		attribute.Float64("tile.x", c.X),
		attribute.Float64("tile.z", c.Z),
		attribute.Float64("tile.size", t.Size()),
		attribute.Int("tile.neighbors", t.NeighborCount()),
	}
}

func offsetAttributes(offset vec.Vec2Float) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.Float64("offset.x", offset.X),
		attribute.Float64("offset.y", offset.Y),
	}
	if d, ok := tile.DirectionFromOffset(offset); ok {
		attrs = append(attrs, attribute.String("offset.direction", d.String()))
	}
	return attrs
}
