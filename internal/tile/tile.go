package tile

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/annel0/ocean-terrain/internal/vec"
	"github.com/google/uuid"
)

// ErrNeighborExists возвращается вызывающим кодом, когда AddNeighbor отклонён
// из-за уже зарегистрированного соседа. Сам Tile сообщает об этом через bool.
var ErrNeighborExists = errors.New("neighbor already exists")

// Island — внешняя сущность, расположенная внутри тайла.
// Тайлу от острова нужна только операция уничтожения.
type Island interface {
	Destroy()
}

// Tile представляет квадратный участок океана со ссылками на соседние тайлы
// и на острова внутри него.
//
// Соседи не принадлежат тайлу: удаление соседа его не уничтожает, а
// двусторонняя согласованность связей — забота владельца сетки.
// Тайл не потокобезопасен.
type Tile struct {
	id        uuid.UUID
	createdAt time.Time

	coordinate vec.Vec3Float
	size       float64
	scale      vec.Vec3Float

	neighbors map[vec.Vec2Float]*Tile
	islands   []Island

	hook Hook
}

// Option настраивает тайл при создании
type Option func(*Tile)

// WithHook подключает получателя событий тайла
func WithHook(h Hook) Option {
	return func(t *Tile) {
		if h != nil {
			t.hook = h
		}
	}
}

// New создаёт тайл с началом в coordinate и длиной стороны size.
// Размер не проверяется: нулевой или отрицательный принимается как есть.
func New(coordinate vec.Vec3Float, size float64, opts ...Option) *Tile {
	t := &Tile{
		id:         uuid.New(),
		createdAt:  time.Now(),
		coordinate: coordinate,
		size:       size,
		scale:      vec.Vec3Float{X: size / 10, Y: 0.1, Z: size / 10},
		neighbors:  make(map[vec.Vec2Float]*Tile, directionCount),
		islands:    make([]Island, 0),
		hook:       NopHook{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ID возвращает диагностический идентификатор тайла
func (t *Tile) ID() uuid.UUID { return t.id }

// CreatedAt возвращает время создания тайла
func (t *Tile) CreatedAt() time.Time { return t.createdAt }

// Coordinate возвращает мировые координаты начала тайла
func (t *Tile) Coordinate() vec.Vec3Float { return t.coordinate }

// Size возвращает длину стороны тайла
func (t *Tile) Size() float64 { return t.size }

// Scale возвращает масштаб (size/10, 0.1, size/10)
func (t *Tile) Scale() vec.Vec3Float { return t.scale }

// AddNeighbor регистрирует соседа в направлении d.
// Возвращает false, если сосед в этом направлении уже есть
// или d не является одним из 8 направлений.
func (t *Tile) AddNeighbor(d Direction, n *Tile) bool {
	if !d.Valid() {
		return false
	}
	return t.AddNeighborAt(d.Offset(), n)
}

// AddNeighborAt регистрирует соседа по произвольному вектору смещения.
// Существующий сосед не заменяется: сначала его нужно удалить.
func (t *Tile) AddNeighborAt(offset vec.Vec2Float, n *Tile) bool {
	if _, exists := t.neighbors[offset]; exists {
		t.hook.NeighborRejected(t, offset)
		return false
	}
	t.neighbors[offset] = n
	return true
}

// RemoveNeighbor удаляет соседа в направлении d; отсутствие соседа не ошибка
func (t *Tile) RemoveNeighbor(d Direction) {
	if !d.Valid() {
		return
	}
	t.RemoveNeighborAt(d.Offset())
}

// RemoveNeighborAt удаляет соседа по вектору смещения.
// Удалённый тайл никак не изменяется.
func (t *Tile) RemoveNeighborAt(offset vec.Vec2Float) {
	t.hook.NeighborRemoved(t, offset)
	delete(t.neighbors, offset)
}

// Neighbor возвращает соседа в направлении d
func (t *Tile) Neighbor(d Direction) (*Tile, bool) {
	if !d.Valid() {
		return nil, false
	}
	return t.NeighborAt(d.Offset())
}

// NeighborAt возвращает соседа по вектору смещения
func (t *Tile) NeighborAt(offset vec.Vec2Float) (*Tile, bool) {
	n, ok := t.neighbors[offset]
	return n, ok
}

// Neighbors возвращает копию карты соседей
func (t *Tile) Neighbors() map[vec.Vec2Float]*Tile {
	out := make(map[vec.Vec2Float]*Tile, len(t.neighbors))
	for k, v := range t.neighbors {
		out[k] = v
	}
	return out
}

// NeighborCount возвращает количество зарегистрированных соседей
func (t *Tile) NeighborCount() int {
	return len(t.neighbors)
}

// AddIsland добавляет остров в конец коллекции
func (t *Tile) AddIsland(i Island) {
	t.islands = append(t.islands, i)
}

// RemoveIsland удаляет первое вхождение острова (сравнение по идентичности),
// сохраняя порядок остальных. Динамический тип острова должен быть сравнимым.
func (t *Tile) RemoveIsland(i Island) bool {
	for idx, existing := range t.islands {
		if existing == i {
			t.islands = append(t.islands[:idx], t.islands[idx+1:]...)
			return true
		}
	}
	return false
}

// Islands возвращает копию коллекции островов в исходном порядке
func (t *Tile) Islands() []Island {
	out := make([]Island, len(t.islands))
	copy(out, t.islands)
	return out
}

// IslandCount возвращает количество островов
func (t *Tile) IslandCount() int {
	return len(t.islands)
}

// Deactivate уничтожает все острова тайла по порядку.
// Коллекция островов и карта соседей при этом не очищаются:
// тайл остаётся оболочкой, а острова остаются доступны через Islands().
func (t *Tile) Deactivate() {
	t.hook.Deactivating(t)

	for _, i := range t.islands {
		i.Destroy()
	}
}

// InTile проверяет, лежит ли точка в тайле по осям X и Z.
// Интервал полуоткрытый: [coordinate, coordinate+size). Высота игнорируется.
func (t *Tile) InTile(p vec.Vec3Float) bool {
	return p.X >= t.coordinate.X && p.X < t.coordinate.X+t.size &&
		p.Z >= t.coordinate.Z && p.Z < t.coordinate.Z+t.size
}

// String возвращает многострочное диагностическое описание тайла
func (t *Tile) String() string {
	var sb strings.Builder
	sb.WriteString("[Tile info]\n")
	fmt.Fprintf(&sb, "[Coor]\t%s\t[Size]\t%g\t[Scale]\t%s\t[Created]\t%s\n",
		t.coordinate, t.size, t.scale, t.createdAt.Format(time.DateTime))
	fmt.Fprintf(&sb, "[#Neighbors]\t%d\t[#Islands]\t%d\n", len(t.neighbors), len(t.islands))
	return sb.String()
}
