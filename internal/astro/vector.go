package astro

import "math"

// Vec2 is a 2D cartesian vector in meters (or meters/second).
type Vec2 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the scalar z-component of the 2D cross product.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vec2) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Distance(o Vec2) float64 {
	return v.Sub(o).Length()
}

// Normalize returns the unit vector. The zero vector normalizes to zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Angle returns the polar angle measured from the +X axis.
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Rotate rotates the vector counterclockwise by the given angle in radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// FromPolar builds a vector of the given length at a polar angle from +X.
func FromPolar(angle, length float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{c * length, s * length}
}

// Heading converts a craft rotation into its facing unit vector.
// Rotation zero points along +Y and increases clockwise.
func Heading(rot float64) Vec2 {
	s, c := math.Sincos(rot)
	return Vec2{s, c}
}
