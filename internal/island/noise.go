package island

import (
	"github.com/aquilax/go-perlin"
)

// Параметры шума Перлина
const (
	noiseAlpha   = 2.0 // Сглаживание шума
	noiseBeta    = 2.0 // Частота шума
	noiseOctaves = 3   // Количество октав
)

// Noise — генератор 2D шума Перлина с фиксированным сидом
type Noise struct {
	perlin *perlin.Perlin
	seed   int64
}

// NewNoise инициализирует генератор шума Перлина с указанным сидом
func NewNoise(seed int64) *Noise {
	return &Noise{
		perlin: perlin.NewPerlin(noiseAlpha, noiseBeta, int32(noiseOctaves), seed),
		seed:   seed,
	}
}

// Seed возвращает сид генератора
func (n *Noise) Seed() int64 { return n.seed }

// Value2D возвращает значение шума для координат в диапазоне от 0 до 1
func (n *Noise) Value2D(x, y float64) float64 {
	// Значение шума от -1 до 1
	v := n.perlin.Noise2D(x, y)

	// Преобразуем в диапазон от 0 до 1
	v = (v + 1.0) / 2.0
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
