package tile

import (
	"fmt"

	"github.com/annel0/ocean-terrain/internal/vec"
)

// Direction определяет одно из 8 направлений на сетке тайлов
type Direction uint8

const (
	TopLeft Direction = iota
	Top
	TopRight
	Left
	Right
	BottomLeft
	Bottom
	BottomRight

	directionCount // всегда последний: количество направлений
)

// dirOffsets — фиксированная таблица смещений, только для чтения после инициализации
var dirOffsets = [directionCount]vec.Vec2Float{
	TopLeft:     {X: -1, Y: 1},
	Top:         {X: 0, Y: 1},
	TopRight:    {X: 1, Y: 1},
	Left:        {X: -1, Y: 0},
	Right:       {X: 1, Y: 0},
	BottomLeft:  {X: -1, Y: -1},
	Bottom:      {X: 0, Y: -1},
	BottomRight: {X: 1, Y: -1},
}

var dirNames = [directionCount]string{
	TopLeft:     "TopLeft",
	Top:         "Top",
	TopRight:    "TopRight",
	Left:        "Left",
	Right:       "Right",
	BottomLeft:  "BottomLeft",
	Bottom:      "Bottom",
	BottomRight: "BottomRight",
}

// Directions возвращает все направления в порядке объявления
func Directions() []Direction {
	dirs := make([]Direction, 0, directionCount)
	for d := Direction(0); d < directionCount; d++ {
		dirs = append(dirs, d)
	}
	return dirs
}

// Valid сообщает, является ли значение одним из 8 направлений
func (d Direction) Valid() bool {
	return d < directionCount
}

// Offset возвращает вектор смещения направления.
// Для невалидного направления возвращается нулевой вектор.
func (d Direction) Offset() vec.Vec2Float {
	if !d.Valid() {
		return vec.Vec2Float{}
	}
	return dirOffsets[d]
}

// Opposite возвращает противоположное направление (Top <-> Bottom и т.д.).
// Невалидное направление возвращается без изменений.
func (d Direction) Opposite() Direction {
	if !d.Valid() {
		return d
	}
	opp, _ := DirectionFromOffset(d.Offset().Neg())
	return opp
}

// String возвращает имя направления
func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return dirNames[d]
}

// DirectionFromOffset ищет направление по вектору смещения
func DirectionFromOffset(offset vec.Vec2Float) (Direction, bool) {
	for d, o := range dirOffsets {
		if o == offset {
			return Direction(d), true
		}
	}
	return 0, false
}
