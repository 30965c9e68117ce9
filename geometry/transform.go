package geometry

import "github.com/go-gl/mathgl/mgl64"

// Transform represents a position and a rotation in 2D space
type Transform struct {
	Position mgl64.Vec2
	Rotation float64 // radians, counter-clockwise
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec2{0, 0},
		Rotation: 0,
	}
}

// NewTranslation creates a transform with no rotation
func NewTranslation(x, y float64) Transform {
	return Transform{Position: mgl64.Vec2{x, y}}
}

func (t Transform) rotation() mgl64.Mat2 {
	return mgl64.Rotate2D(t.Rotation)
}

// Apply maps a local point to world space
func (t Transform) Apply(point mgl64.Vec2) mgl64.Vec2 {
	return t.rotation().Mul2x1(point).Add(t.Position)
}

// ApplyInverse maps a world point to local space
func (t Transform) ApplyInverse(point mgl64.Vec2) mgl64.Vec2 {
	return t.rotation().Transpose().Mul2x1(point.Sub(t.Position))
}

// ApplyVector rotates a local vector into world space. Translation is ignored.
func (t Transform) ApplyVector(vector mgl64.Vec2) mgl64.Vec2 {
	return t.rotation().Mul2x1(vector)
}

// ApplyInverseVector rotates a world vector into local space.
func (t Transform) ApplyInverseVector(vector mgl64.Vec2) mgl64.Vec2 {
	return t.rotation().Transpose().Mul2x1(vector)
}
