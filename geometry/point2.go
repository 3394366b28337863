// Package geometry provides the manifold value types whose local
// coordinates live in segvec blocks.
//
// A segvec.Vector stores raw scalars; these types give a block its meaning.
// Each type exposes its tangent dimension and converts to and from a flat
// float64 block, which is the whole contract the container consumes.
package geometry

import (
	"fmt"
	"math"
)

// Point2Dim is the tangent-space dimensionality of a 2D point.
const Point2Dim = 2

// Point2 is a 2D point. Functional: once created, a point is constant.
type Point2 struct {
	X, Y float64
}

// NewPoint2 creates a point from its coordinates.
func NewPoint2(x, y float64) Point2 { return Point2{X: x, Y: y} }

// Point2FromVector creates a point from a flat 2-scalar block.
func Point2FromVector(v []float64) (Point2, error) {
	if len(v) != Point2Dim {
		return Point2{}, fmt.Errorf("point2 expects %d scalars, got %d", Point2Dim, len(v))
	}
	return Point2{X: v[0], Y: v[1]}, nil
}

// Dim returns the tangent-space dimensionality, 2 DOF.
func (Point2) Dim() int { return Point2Dim }

// Vector returns the point's flat coordinate block.
func (p Point2) Vector() []float64 { return []float64{p.X, p.Y} }

// Equals compares coordinates with an absolute tolerance.
func (p Point2) Equals(q Point2, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol && math.Abs(p.Y-q.Y) <= tol
}

// Identity returns the group identity.
func Identity() Point2 { return Point2{} }

// Inverse negates each coordinate, so p.Compose(p.Inverse()) is the
// identity.
func (p Point2) Inverse() Point2 { return Point2{X: -p.X, Y: -p.Y} }

// Compose adds the coordinates of two points.
func (p Point2) Compose(q Point2) Point2 { return p.Add(q) }

// Between subtracts point coordinates, the relative point from p to q.
func (p Point2) Between(q Point2) Point2 { return q.Sub(p) }

// Expmap is the exponential map around the identity: a point from a
// tangent block.
func Expmap(v []float64) (Point2, error) { return Point2FromVector(v) }

// Logmap is the log map around the identity: the point's tangent block.
func Logmap(p Point2) []float64 { return p.Vector() }

// Retract updates p with a tangent-space delta.
func (p Point2) Retract(delta []float64) (Point2, error) {
	d, err := Point2FromVector(delta)
	if err != nil {
		return Point2{}, err
	}
	return p.Add(d), nil
}

// LocalCoordinates returns the tangent block that retracts p onto q.
func (p Point2) LocalCoordinates(q Point2) []float64 {
	return Logmap(p.Between(q))
}

// Add returns the coordinate-wise sum.
func (p Point2) Add(q Point2) Point2 { return Point2{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns the coordinate-wise difference.
func (p Point2) Sub(q Point2) Point2 { return Point2{X: p.X - q.X, Y: p.Y - q.Y} }

// Neg returns the negated point.
func (p Point2) Neg() Point2 { return p.Inverse() }

// Mul returns the point scaled by s.
func (p Point2) Mul(s float64) Point2 { return Point2{X: p.X * s, Y: p.Y * s} }

// Div returns the point divided by s.
func (p Point2) Div(s float64) Point2 { return Point2{X: p.X / s, Y: p.Y / s} }

// Norm returns the Euclidean norm of the point.
func (p Point2) Norm() float64 { return math.Hypot(p.X, p.Y) }

// Unit returns the unit vector in the direction of p.
func (p Point2) Unit() Point2 { return p.Div(p.Norm()) }

// Dist returns the distance between two points.
func (p Point2) Dist(q Point2) float64 { return p.Between(q).Norm() }

func (p Point2) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }
