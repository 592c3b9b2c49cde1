package metrics

import (
	"github.com/annel0/ocean-terrain/internal/tile"
	"github.com/annel0/ocean-terrain/internal/vec"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector инкапсулирует Prometheus-метрики тайлов и менеджера местности.
// Реализует tile.Hook и слушатель менеджера (TileCreated/TileReleased).
type Collector struct {
	neighborRejected prometheus.Counter
	neighborRemoved  prometheus.Counter
	deactivated      prometheus.Counter
	islandsDestroyed prometheus.Counter
	tilesCreated     prometheus.Counter
	islandsCreated   prometheus.Counter
	tilesActive      prometheus.Gauge
}

// NewCollector создаёт метрики и регистрирует их в reg.
// nil означает глобальный регистр Prometheus.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		neighborRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ocean",
			Subsystem: "tile",
			Name:      "neighbor_rejected_total",
			Help:      "Попытки зарегистрировать соседа поверх существующего.",
		}),
		neighborRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ocean",
			Subsystem: "tile",
			Name:      "neighbor_removed_total",
			Help:      "Вызовы удаления соседа (включая отсутствующих).",
		}),
		deactivated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ocean",
			Subsystem: "tile",
			Name:      "deactivated_total",
			Help:      "Количество деактиваций тайлов.",
		}),
		islandsDestroyed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ocean",
			Subsystem: "island",
			Name:      "destroyed_total",
			Help:      "Острова, которым был отправлен Destroy при деактивации тайла.",
		}),
		tilesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ocean",
			Subsystem: "terrain",
			Name:      "tiles_created_total",
			Help:      "Тайлы, созданные менеджером местности.",
		}),
		islandsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ocean",
			Subsystem: "island",
			Name:      "created_total",
			Help:      "Острова, сгенерированные для новых тайлов.",
		}),
		tilesActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ocean",
			Name:      "tiles_active",
			Help:      "Количество активных тайлов.",
		}),
	}

	collectors := []prometheus.Collector{
		c.neighborRejected, c.neighborRemoved, c.deactivated,
		c.islandsDestroyed, c.tilesCreated, c.islandsCreated, c.tilesActive,
	}
	for _, col := range collectors {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) NeighborRejected(*tile.Tile, vec.Vec2Float) {
	c.neighborRejected.Inc()
}

func (c *Collector) NeighborRemoved(*tile.Tile, vec.Vec2Float) {
	c.neighborRemoved.Inc()
}

func (c *Collector) Deactivating(t *tile.Tile) {
	c.deactivated.Inc()
	c.islandsDestroyed.Add(float64(t.IslandCount()))
}

func (c *Collector) TileCreated(_ *tile.Tile, islands int) {
	c.tilesCreated.Inc()
	c.islandsCreated.Add(float64(islands))
	c.tilesActive.Inc()
}

func (c *Collector) TileReleased(*tile.Tile) {
	c.tilesActive.Dec()
}
