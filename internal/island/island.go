package island

import (
	"fmt"

	"github.com/annel0/ocean-terrain/internal/vec"
	"github.com/google/uuid"
)

// Island представляет остров внутри тайла океана
type Island struct {
	id           uuid.UUID
	center       vec.Vec3Float
	radius       float64
	height       float64
	destroyed    bool
	destroyCount int
}

// New создаёт остров с центром center и радиусом radius
func New(center vec.Vec3Float, radius, height float64) *Island {
	return &Island{
		id:     uuid.New(),
		center: center,
		radius: radius,
		height: height,
	}
}

func (i *Island) ID() uuid.UUID         { return i.id }
func (i *Island) Center() vec.Vec3Float { return i.center }
func (i *Island) Radius() float64       { return i.radius }
func (i *Island) Height() float64       { return i.height }

// Destroyed сообщает, был ли остров уничтожен
func (i *Island) Destroyed() bool { return i.destroyed }

// DestroyCount возвращает количество вызовов Destroy
func (i *Island) DestroyCount() int { return i.destroyCount }

// Destroy уничтожает остров. Повторный вызов безопасен и только учитывается.
func (i *Island) Destroy() {
	i.destroyed = true
	i.destroyCount++
}

// String возвращает краткое описание острова
func (i *Island) String() string {
	return fmt.Sprintf("[Island %s] center=%s r=%.2f h=%.2f destroyed=%t",
		i.id.String()[:8], i.center, i.radius, i.height, i.destroyed)
}
