// pkg/core/position.go
package core

import "math"

// Position3D is a point or direction in local character space, metres.
type Position3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns the component-wise sum of two vectors.
func (p Position3D) Add(q Position3D) Position3D {
	return Position3D{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

// Sub returns the component-wise difference p - q.
func (p Position3D) Sub(q Position3D) Position3D {
	return Position3D{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Length returns the Euclidean length of the vector.
func (p Position3D) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// DistanceTo returns the Euclidean distance between two points.
func (p Position3D) DistanceTo(q Position3D) float64 {
	return p.Sub(q).Length()
}
