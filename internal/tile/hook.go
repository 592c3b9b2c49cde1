package tile

import "github.com/annel0/ocean-terrain/internal/vec"

// Hook получает уведомления о событиях тайла.
// Сам тайл ничего не логирует: диагностика, метрики и трассировка
// подключаются через реализации этого интерфейса.
type Hook interface {
	// NeighborRejected вызывается, когда по смещению уже зарегистрирован сосед
	NeighborRejected(t *Tile, offset vec.Vec2Float)
	// NeighborRemoved вызывается перед удалением соседа (даже если его нет)
	NeighborRemoved(t *Tile, offset vec.Vec2Float)
	// Deactivating вызывается перед уничтожением островов тайла
	Deactivating(t *Tile)
}

// NopHook игнорирует все события
type NopHook struct{}

func (NopHook) NeighborRejected(*Tile, vec.Vec2Float) {}
func (NopHook) NeighborRemoved(*Tile, vec.Vec2Float)  {}
func (NopHook) Deactivating(*Tile)                    {}

// Hooks рассылает события нескольким получателям по порядку
type Hooks []Hook

func (hs Hooks) NeighborRejected(t *Tile, offset vec.Vec2Float) {
	for _, h := range hs {
		h.NeighborRejected(t, offset)
	}
}

func (hs Hooks) NeighborRemoved(t *Tile, offset vec.Vec2Float) {
	for _, h := range hs {
		h.NeighborRemoved(t, offset)
	}
}

func (hs Hooks) Deactivating(t *Tile) {
	for _, h := range hs {
		h.Deactivating(t)
	}
}
