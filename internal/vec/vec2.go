package vec

import "math"

// Vec2 представляет целочисленные 2D координаты (индекс ячейки сетки тайлов)
type Vec2 struct {
	X, Y int
}

// Add складывает два вектора
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// ChebyshevTo возвращает расстояние Чебышёва (количество "шагов короля") до другой ячейки
func (v Vec2) ChebyshevTo(other Vec2) int {
	dx := v.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := v.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// Less задаёт порядок ячеек: сначала по Y, затем по X
func (v Vec2) Less(other Vec2) bool {
	if v.Y != other.Y {
		return v.Y < other.Y
	}
	return v.X < other.X
}

// Vec2Float представляет 2D вектор с плавающей точкой.
// Используется как ключ карты соседей, поэтому сравнивается покомпонентно.
type Vec2Float struct {
	X, Y float64
}

// ToVec2 преобразует в целочисленные координаты (с округлением вниз)
func (v Vec2Float) ToVec2() Vec2 {
	return Vec2{X: int(math.Floor(v.X)), Y: int(math.Floor(v.Y))}
}

// FromVec2 создает Vec2Float из Vec2
func FromVec2(v Vec2) Vec2Float {
	return Vec2Float{X: float64(v.X), Y: float64(v.Y)}
}

// Add складывает два вектора
func (v Vec2Float) Add(other Vec2Float) Vec2Float {
	return Vec2Float{X: v.X + other.X, Y: v.Y + other.Y}
}

// Neg возвращает противоположный вектор
func (v Vec2Float) Neg() Vec2Float {
	return Vec2Float{X: -v.X, Y: -v.Y}
}

// String возвращает представление в стиле "(x, y)"
func (v Vec2Float) String() string {
	return "(" + formatFloat(v.X) + ", " + formatFloat(v.Y) + ")"
}
