package terrain

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/annel0/ocean-terrain/internal/config"
	"github.com/annel0/ocean-terrain/internal/tile"
	"github.com/annel0/ocean-terrain/internal/vec"
)

// Populator заполняет новый тайл островами
type Populator interface {
	Populate(t *tile.Tile) int
}

// Listener получает уведомления о жизненном цикле тайлов в менеджере
type Listener interface {
	TileCreated(t *tile.Tile, islands int)
	TileReleased(t *tile.Tile)
}

// UpdateStats содержит результат одного обновления активной зоны
type UpdateStats struct {
	Focus       vec.Vec2 // Ячейка фокуса
	Created     int      // Создано тайлов
	Deactivated int      // Деактивировано тайлов
	Islands     int      // Островов в созданных тайлах
	Active      int      // Активных тайлов после обновления
}

// Manager владеет тайлами океана и поддерживает активную зону вокруг фокуса.
// Соседние тайлы связываются в обе стороны; тайлы за пределами радиуса
// деактивируются, отвязываются и забываются.
//
// Manager не потокобезопасен: предполагается один владелец (игровой цикл).
type Manager struct {
	tileSize float64
	radius   int

	tiles map[vec.Vec2]*tile.Tile

	populator Populator
	hook      tile.Hook
	listener  Listener
}

// NewManager создаёт менеджер. populator и hook могут быть nil.
// Размер тайла должен быть положительным, радиус — неотрицательным.
func NewManager(cfg config.TerrainConfig, populator Populator, hook tile.Hook) (*Manager, error) {
	if cfg.TileSize <= 0 {
		return nil, fmt.Errorf("terrain: %w (got %v)", config.ErrInvalidTileSize, cfg.TileSize)
	}
	if cfg.ActiveRadius < 0 {
		return nil, fmt.Errorf("terrain: %w (got %d)", config.ErrInvalidRadius, cfg.ActiveRadius)
	}
	if hook == nil {
		hook = tile.NopHook{}
	}
	return &Manager{
		tileSize:  cfg.TileSize,
		radius:    cfg.ActiveRadius,
		tiles:     make(map[vec.Vec2]*tile.Tile),
		populator: populator,
		hook:      hook,
	}, nil
}

// SetListener подключает получателя событий создания/освобождения тайлов
func (m *Manager) SetListener(l Listener) {
	m.listener = l
}

// TileSize возвращает длину стороны тайла
func (m *Manager) TileSize() float64 { return m.tileSize }

// Radius возвращает радиус активной зоны (в тайлах, по Чебышёву)
func (m *Manager) Radius() int { return m.radius }

// CellOf возвращает ячейку, в которую попадает точка (высота игнорируется)
func (m *Manager) CellOf(p vec.Vec3Float) vec.Vec2 {
	return vec.Vec2{
		X: int(math.Floor(p.X / m.tileSize)),
		Y: int(math.Floor(p.Z / m.tileSize)),
	}
}

// CellOrigin возвращает мировые координаты начала ячейки
func (m *Manager) CellOrigin(cell vec.Vec2) vec.Vec3Float {
	return vec.Vec3Float{
		X: float64(cell.X) * m.tileSize,
		Y: 0,
		Z: float64(cell.Y) * m.tileSize,
	}
}

// Tile возвращает активный тайл ячейки
func (m *Manager) Tile(cell vec.Vec2) (*tile.Tile, bool) {
	t, ok := m.tiles[cell]
	return t, ok
}

// TileAt возвращает активный тайл, содержащий точку
func (m *Manager) TileAt(p vec.Vec3Float) (*tile.Tile, bool) {
	t, ok := m.tiles[m.CellOf(p)]
	if !ok || !t.InTile(p) {
		return nil, false
	}
	return t, true
}

// Tiles возвращает активные тайлы, упорядоченные по ячейкам
func (m *Manager) Tiles() []*tile.Tile {
	cells := m.sortedCells()
	out := make([]*tile.Tile, 0, len(cells))
	for _, c := range cells {
		out = append(out, m.tiles[c])
	}
	return out
}

// ActiveCount возвращает количество активных тайлов
func (m *Manager) ActiveCount() int {
	return len(m.tiles)
}

// Update приводит активную зону к квадрату радиуса Radius вокруг ячейки фокуса.
// Конфликт связей (сосед уже занят, например вручную) не прерывает обновление:
// тайл всё равно создаётся без этой связи, а ошибки возвращаются вместе.
func (m *Manager) Update(focus vec.Vec3Float) (UpdateStats, error) {
	center := m.CellOf(focus)
	stats := UpdateStats{Focus: center}
	var errs []error

	// Сначала освобождаем тайлы вне зоны, чтобы новые не связывались с ними
	for _, cell := range m.sortedCells() {
		if cell.ChebyshevTo(center) > m.radius {
			m.release(cell)
			stats.Deactivated++
		}
	}

	for dz := -m.radius; dz <= m.radius; dz++ {
		for dx := -m.radius; dx <= m.radius; dx++ {
			cell := center.Add(vec.Vec2{X: dx, Y: dz})
			if _, ok := m.tiles[cell]; ok {
				continue
			}
			islands, err := m.create(cell)
			if err != nil {
				errs = append(errs, err)
			}
			stats.Islands += islands
			stats.Created++
		}
	}

	stats.Active = len(m.tiles)
	return stats, errors.Join(errs...)
}

// Link связывает a и b: b становится соседом a в направлении d,
// a — соседом b в противоположном направлении. При конфликте
// наполовину созданная связь откатывается.
func (m *Manager) Link(a, b *tile.Tile, d tile.Direction) error {
	if !d.Valid() {
		return fmt.Errorf("link: invalid direction %s", d)
	}
	if !a.AddNeighbor(d, b) {
		return fmt.Errorf("link %s: %w", d, tile.ErrNeighborExists)
	}
	if !b.AddNeighbor(d.Opposite(), a) {
		a.RemoveNeighbor(d)
		return fmt.Errorf("link back %s: %w", d.Opposite(), tile.ErrNeighborExists)
	}
	return nil
}

// Unlink удаляет t из карт всех его соседей и очищает его собственные связи
func (m *Manager) Unlink(t *tile.Tile) {
	for offset, n := range t.Neighbors() {
		if back, ok := n.NeighborAt(offset.Neg()); ok && back == t {
			n.RemoveNeighborAt(offset.Neg())
		}
		t.RemoveNeighborAt(offset)
	}
}

// Shutdown деактивирует и освобождает все тайлы
func (m *Manager) Shutdown() int {
	cells := m.sortedCells()
	for _, cell := range cells {
		m.release(cell)
	}
	return len(cells)
}

func (m *Manager) create(cell vec.Vec2) (int, error) {
	t := tile.New(m.CellOrigin(cell), m.tileSize, tile.WithHook(m.hook))

	islands := 0
	if m.populator != nil {
		islands = m.populator.Populate(t)
	}

	var errs []error
	for _, d := range tile.Directions() {
		neighborCell := cell.Add(d.Offset().ToVec2())
		n, ok := m.tiles[neighborCell]
		if !ok {
			continue
		}
		if err := m.Link(t, n, d); err != nil {
			errs = append(errs, fmt.Errorf("cell %v: %w", cell, err))
		}
	}

	m.tiles[cell] = t
	if m.listener != nil {
		m.listener.TileCreated(t, islands)
	}
	return islands, errors.Join(errs...)
}

func (m *Manager) release(cell vec.Vec2) {
	t, ok := m.tiles[cell]
	if !ok {
		return
	}

	t.Deactivate()
	m.Unlink(t)
	delete(m.tiles, cell)

	if m.listener != nil {
		m.listener.TileReleased(t)
	}
}

func (m *Manager) sortedCells() []vec.Vec2 {
	cells := make([]vec.Vec2, 0, len(m.tiles))
	for c := range m.tiles {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i].Less(cells[j]) })
	return cells
}
