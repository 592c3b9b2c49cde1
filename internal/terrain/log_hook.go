package terrain

import (
	"github.com/annel0/ocean-terrain/internal/logging"
	"github.com/annel0/ocean-terrain/internal/tile"
	"github.com/annel0/ocean-terrain/internal/vec"
)

// LogHook пишет диагностику тайлов в логгер компонента.
// Отклонённый сосед — WARN, удаление соседа — TRACE, деактивация — DEBUG.
type LogHook struct {
	logger *logging.Logger
}

// NewLogHook создаёт хук; nil означает логгер компонента "tile"
func NewLogHook(logger *logging.Logger) *LogHook {
	if logger == nil {
		logger = logging.GetTileLogger()
	}
	return &LogHook{logger: logger}
}

func (h *LogHook) NeighborRejected(t *tile.Tile, offset vec.Vec2Float) {
	h.logger.Warn("[AddNeighbor] neighbor at %s already exists, keeping current one", offset)
	if h.logger.Enabled(logging.DEBUG) {
		h.logger.Debug("%s", t)
	}
}

func (h *LogHook) NeighborRemoved(t *tile.Tile, offset vec.Vec2Float) {
	if h.logger.Enabled(logging.TRACE) {
		h.logger.Trace("[RemoveNeighbor] %s for: %s", offset, t)
	}
}

func (h *LogHook) Deactivating(t *tile.Tile) {
	h.logger.Debug("Deactivating tile %s with %d islands", t.ID(), t.IslandCount())
}

// TileCreated и TileReleased делают LogHook также слушателем менеджера
func (h *LogHook) TileCreated(t *tile.Tile, islands int) {
	h.logger.Debug("Initialized tile %s at %s (%d islands)", t.ID(), t.Coordinate(), islands)
}

func (h *LogHook) TileReleased(t *tile.Tile) {
	h.logger.Debug("Released tile %s at %s", t.ID(), t.Coordinate())
}
