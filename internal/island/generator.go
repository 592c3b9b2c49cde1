package island

import (
	"github.com/annel0/ocean-terrain/internal/config"
	"github.com/annel0/ocean-terrain/internal/tile"
	"github.com/annel0/ocean-terrain/internal/vec"
)

// Generator расставляет острова внутри тайлов по шуму Перлина.
// Тайл разбивается на samples×samples ячеек; в центре ячейки, где
// значение шума не ниже порога, появляется остров.
type Generator struct {
	noise     *Noise
	samples   int
	threshold float64
	frequency float64
	maxRadius float64
	maxHeight float64
}

// NewGenerator создаёт генератор островов из конфигурации
func NewGenerator(cfg config.IslandConfig) *Generator {
	return &Generator{
		noise:     NewNoise(cfg.Seed),
		samples:   cfg.Samples,
		threshold: cfg.Threshold,
		frequency: cfg.Frequency,
		maxRadius: cfg.MaxRadius,
		maxHeight: cfg.MaxHeight,
	}
}

// Generate возвращает острова для квадрата с началом origin и стороной size.
// Результат детерминирован для сида и не зависит от порядка вызовов.
func (g *Generator) Generate(origin vec.Vec3Float, size float64) []*Island {
	if size <= 0 || g.samples <= 0 {
		return nil
	}

	step := size / float64(g.samples)
	var islands []*Island

	for j := 0; j < g.samples; j++ {
		for i := 0; i < g.samples; i++ {
			center := vec.Vec3Float{
				X: origin.X + (float64(i)+0.5)*step,
				Y: origin.Y,
				Z: origin.Z + (float64(j)+0.5)*step,
			}

			v := g.noise.Value2D(center.X*g.frequency, center.Z*g.frequency)
			if v < g.threshold {
				continue
			}

			strength := 1.0
			if g.threshold < 1 {
				strength = (v - g.threshold) / (1 - g.threshold)
			}

			// Остров не выходит за пределы своей ячейки
			radius := g.maxRadius * strength
			if radius > step/2 {
				radius = step / 2
			}

			islands = append(islands, New(center, radius, g.maxHeight*strength))
		}
	}

	return islands
}

// Populate добавляет сгенерированные острова в тайл и возвращает их количество
func (g *Generator) Populate(t *tile.Tile) int {
	islands := g.Generate(t.Coordinate(), t.Size())
	for _, i := range islands {
		t.AddIsland(i)
	}
	return len(islands)
}
