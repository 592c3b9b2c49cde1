package vec

import "strconv"

// Vec3Float представляет трехмерный вектор с плавающими координатами.
// Y — высота, плоскость мира задаётся осями X и Z.
type Vec3Float struct {
	X float64
	Y float64
	Z float64
}

// Add складывает два вектора
func (v Vec3Float) Add(other Vec3Float) Vec3Float {
	return Vec3Float{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Flat возвращает проекцию на плоскость XZ (высота отбрасывается)
func (v Vec3Float) Flat() Vec2Float {
	return Vec2Float{X: v.X, Y: v.Z}
}

// String возвращает представление в стиле "(x, y, z)"
func (v Vec3Float) String() string {
	return "(" + formatFloat(v.X) + ", " + formatFloat(v.Y) + ", " + formatFloat(v.Z) + ")"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
