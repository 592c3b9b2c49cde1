package tile

import (
	"strings"
	"testing"

	"github.com/annel0/ocean-terrain/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIsland считает вызовы Destroy и пишет свой номер в общий журнал
type fakeIsland struct {
	n       int
	calls   int
	journal *[]int
}

func (f *fakeIsland) Destroy() {
	f.calls++
	if f.journal != nil {
		*f.journal = append(*f.journal, f.n)
	}
}

// recordingHook запоминает события тайла
type recordingHook struct {
	rejected     []vec.Vec2Float
	removed      []vec.Vec2Float
	deactivating int
}

func (h *recordingHook) NeighborRejected(_ *Tile, offset vec.Vec2Float) {
	h.rejected = append(h.rejected, offset)
}

func (h *recordingHook) NeighborRemoved(_ *Tile, offset vec.Vec2Float) {
	h.removed = append(h.removed, offset)
}

func (h *recordingHook) Deactivating(*Tile) {
	h.deactivating++
}

func TestNew_DerivesScale(t *testing.T) {
	cases := []float64{10, 1, 0.5, 250, 0, -20}

	for _, size := range cases {
		tl := New(vec.Vec3Float{X: 3, Y: 1, Z: -7}, size)

		assert.Equal(t, vec.Vec3Float{X: size / 10, Y: 0.1, Z: size / 10}, tl.Scale(), "масштаб для size=%v", size)
		assert.Equal(t, size, tl.Size())
		assert.Equal(t, vec.Vec3Float{X: 3, Y: 1, Z: -7}, tl.Coordinate())
	}
}

func TestNew_InitialState(t *testing.T) {
	a := New(vec.Vec3Float{}, 10)
	b := New(vec.Vec3Float{}, 10)

	assert.Equal(t, 0, a.NeighborCount(), "соседей изначально нет")
	assert.Equal(t, 0, a.IslandCount(), "островов изначально нет")
	assert.NotEqual(t, a.ID(), b.ID(), "идентификаторы должны быть уникальны")
	assert.False(t, a.CreatedAt().IsZero(), "время создания должно быть установлено")
}

func TestAddNeighbor_RoundTrip(t *testing.T) {
	tl := New(vec.Vec3Float{}, 10)
	other := New(vec.Vec3Float{X: 10}, 10)
	before := tl.Neighbors()

	require.True(t, tl.AddNeighbor(Right, other))
	n, ok := tl.Neighbor(Right)
	require.True(t, ok)
	assert.Same(t, other, n)

	tl.RemoveNeighbor(Right)

	assert.Equal(t, before, tl.Neighbors(), "карта соседей должна вернуться к исходному состоянию")
	_, ok = tl.Neighbor(Right)
	assert.False(t, ok)
}

func TestAddNeighbor_DuplicateRejected(t *testing.T) {
	hook := &recordingHook{}
	tl := New(vec.Vec3Float{}, 10, WithHook(hook))
	first := New(vec.Vec3Float{Z: 10}, 10)
	second := New(vec.Vec3Float{Z: 10}, 10)

	assert.True(t, tl.AddNeighbor(Top, first), "первая регистрация успешна")
	assert.False(t, tl.AddNeighbor(Top, second), "повторная регистрация отклоняется")

	n, ok := tl.Neighbor(Top)
	require.True(t, ok)
	assert.Same(t, first, n, "должен остаться первый сосед")
	assert.Equal(t, 1, tl.NeighborCount())
	assert.Equal(t, []vec.Vec2Float{{X: 0, Y: 1}}, hook.rejected)
}

func TestAddNeighborAt_SharesKeySpaceWithDirections(t *testing.T) {
	tl := New(vec.Vec3Float{}, 10)
	other := New(vec.Vec3Float{}, 10)

	require.True(t, tl.AddNeighborAt(vec.Vec2Float{X: 1, Y: -1}, other))
	assert.False(t, tl.AddNeighbor(BottomRight, other), "направление и сырой вектор — один ключ")

	n, ok := tl.Neighbor(BottomRight)
	require.True(t, ok)
	assert.Same(t, other, n)
}

func TestAddNeighbor_SameTileUnderTwoKeysNotDeduplicated(t *testing.T) {
	tl := New(vec.Vec3Float{}, 10)
	other := New(vec.Vec3Float{}, 10)

	assert.True(t, tl.AddNeighbor(Left, other))
	assert.True(t, tl.AddNeighbor(Right, other))
	assert.Equal(t, 2, tl.NeighborCount())
}

func TestRemoveNeighbor_AbsentIsNoop(t *testing.T) {
	hook := &recordingHook{}
	tl := New(vec.Vec3Float{}, 10, WithHook(hook))
	require.True(t, tl.AddNeighbor(Top, New(vec.Vec3Float{}, 10)))

	before := tl.NeighborCount()
	tl.RemoveNeighbor(Bottom)
	tl.RemoveNeighborAt(vec.Vec2Float{X: 5, Y: 5})

	assert.Equal(t, before, tl.NeighborCount())
	assert.Len(t, hook.removed, 2, "хук вызывается даже для отсутствующего соседа")
}

func TestRemoveNeighbor_DoesNotTouchRemovedTile(t *testing.T) {
	a := New(vec.Vec3Float{}, 10)
	b := New(vec.Vec3Float{X: 10}, 10)
	require.True(t, a.AddNeighbor(Right, b))
	require.True(t, b.AddNeighbor(Left, a))

	a.RemoveNeighbor(Right)

	n, ok := b.Neighbor(Left)
	require.True(t, ok, "обратная связь остаётся: её удаляет вызывающий")
	assert.Same(t, a, n)
}

func TestDeactivate_DestroysIslandsInOrderAndRetainsThem(t *testing.T) {
	hook := &recordingHook{}
	tl := New(vec.Vec3Float{}, 10, WithHook(hook))

	var journal []int
	islands := []*fakeIsland{
		{n: 1, journal: &journal},
		{n: 2, journal: &journal},
		{n: 3, journal: &journal},
	}
	for _, i := range islands {
		tl.AddIsland(i)
	}
	require.True(t, tl.AddNeighbor(Top, New(vec.Vec3Float{}, 10)))

	before := tl.IslandCount()
	tl.Deactivate()

	assert.Equal(t, []int{1, 2, 3}, journal, "острова уничтожаются в порядке коллекции")
	for _, i := range islands {
		assert.Equal(t, 1, i.calls, "Destroy вызывается ровно один раз для острова %d", i.n)
	}
	assert.Equal(t, before, tl.IslandCount(), "коллекция островов не очищается")
	assert.Equal(t, 1, tl.NeighborCount(), "карта соседей не очищается")
	assert.Equal(t, 1, hook.deactivating)
}

func TestDeactivate_RepeatedCallDestroysAgain(t *testing.T) {
	tl := New(vec.Vec3Float{}, 10)
	i := &fakeIsland{n: 1}
	tl.AddIsland(i)

	tl.Deactivate()
	tl.Deactivate()

	assert.Equal(t, 2, i.calls)
}

func TestIslands_OrderAndRemoval(t *testing.T) {
	tl := New(vec.Vec3Float{}, 10)
	a, b, c := &fakeIsland{n: 1}, &fakeIsland{n: 2}, &fakeIsland{n: 3}
	tl.AddIsland(a)
	tl.AddIsland(b)
	tl.AddIsland(c)

	assert.True(t, tl.RemoveIsland(b))
	assert.False(t, tl.RemoveIsland(b), "повторное удаление ничего не находит")
	assert.Equal(t, []Island{a, c}, tl.Islands())

	// Копия не влияет на тайл
	snapshot := tl.Islands()
	snapshot[0] = nil
	assert.Equal(t, []Island{a, c}, tl.Islands())
}

func TestInTile_HalfOpenBounds(t *testing.T) {
	tl := New(vec.Vec3Float{X: 0, Y: 0, Z: 0}, 10)

	assert.True(t, tl.InTile(vec.Vec3Float{X: 0, Y: 0, Z: 0}))
	assert.True(t, tl.InTile(vec.Vec3Float{X: 9.999, Y: 0, Z: 0}))
	assert.False(t, tl.InTile(vec.Vec3Float{X: 10, Y: 0, Z: 0}))
	assert.False(t, tl.InTile(vec.Vec3Float{X: -0.001, Y: 0, Z: 0}))
	assert.True(t, tl.InTile(vec.Vec3Float{X: 5, Y: 1000, Z: 5}), "высота не учитывается")
	assert.False(t, tl.InTile(vec.Vec3Float{X: 5, Y: 0, Z: 10}))
	assert.False(t, tl.InTile(vec.Vec3Float{X: 5, Y: 0, Z: -0.001}))
}

func TestInTile_OffsetOrigin(t *testing.T) {
	tl := New(vec.Vec3Float{X: -20, Y: 3, Z: 40}, 20)

	assert.True(t, tl.InTile(vec.Vec3Float{X: -20, Y: -50, Z: 40}))
	assert.True(t, tl.InTile(vec.Vec3Float{X: -0.5, Y: 0, Z: 59.9}))
	assert.False(t, tl.InTile(vec.Vec3Float{X: 0, Y: 0, Z: 50}))
}

func TestInTile_ZeroSizeContainsNothing(t *testing.T) {
	tl := New(vec.Vec3Float{}, 0)

	assert.False(t, tl.InTile(vec.Vec3Float{}))
}

func TestString_Describes(t *testing.T) {
	tl := New(vec.Vec3Float{X: 1, Y: 2, Z: 3}, 10)
	tl.AddIsland(&fakeIsland{})
	require.True(t, tl.AddNeighbor(Left, New(vec.Vec3Float{}, 10)))

	s := tl.String()

	assert.True(t, strings.HasPrefix(s, "[Tile info]\n"))
	assert.Contains(t, s, "[Coor]\t(1.00, 2.00, 3.00)")
	assert.Contains(t, s, "[Size]\t10")
	assert.Contains(t, s, "[Scale]\t(1.00, 0.10, 1.00)")
	assert.Contains(t, s, "[#Neighbors]\t1")
	assert.Contains(t, s, "[#Islands]\t1")
}

func TestHooks_FanOut(t *testing.T) {
	h1, h2 := &recordingHook{}, &recordingHook{}
	tl := New(vec.Vec3Float{}, 10, WithHook(Hooks{h1, h2}))

	tl.RemoveNeighbor(Top)
	tl.Deactivate()

	for _, h := range []*recordingHook{h1, h2} {
		assert.Len(t, h.removed, 1)
		assert.Equal(t, 1, h.deactivating)
	}
}

func TestDirectionAPI_InvalidDirectionKeepsAtMostEightNeighbors(t *testing.T) {
	hook := &recordingHook{}
	tl := New(vec.Vec3Float{}, 10, WithHook(hook))
	for _, d := range Directions() {
		require.True(t, tl.AddNeighbor(d, New(vec.Vec3Float{}, 10)))
	}

	bad := Direction(42)
	assert.False(t, tl.AddNeighbor(bad, New(vec.Vec3Float{}, 10)), "невалидное направление отклоняется")
	assert.Equal(t, 8, tl.NeighborCount())
	_, zeroKey := tl.NeighborAt(vec.Vec2Float{})
	assert.False(t, zeroKey, "нулевое смещение не должно попасть в карту")

	n, ok := tl.Neighbor(bad)
	assert.False(t, ok)
	assert.Nil(t, n)

	tl.RemoveNeighbor(bad)
	assert.Equal(t, 8, tl.NeighborCount())
	assert.Empty(t, hook.removed, "удаление по невалидному направлению ничего не делает")
	assert.Empty(t, hook.rejected)
}
