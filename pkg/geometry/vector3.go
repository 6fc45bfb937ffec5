package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vector3 represents a 3D point or vector
type Vector3 struct {
	X, Y, Z float64
}

// NewVector3 creates a new 3D vector
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

func (v Vector3) vec() r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

func fromVec(p r3.Vec) Vector3 {
	return Vector3{X: p.X, Y: p.Y, Z: p.Z}
}

// Add returns the sum of two vectors
func (v Vector3) Add(other Vector3) Vector3 {
	return fromVec(r3.Add(v.vec(), other.vec()))
}

// Sub returns the difference between two vectors
func (v Vector3) Sub(other Vector3) Vector3 {
	return fromVec(r3.Sub(v.vec(), other.vec()))
}

// Mul multiplies the vector by a scalar
func (v Vector3) Mul(scalar float64) Vector3 {
	return fromVec(r3.Scale(scalar, v.vec()))
}

// Neg returns the vector pointing the opposite way
func (v Vector3) Neg() Vector3 {
	return v.Mul(-1)
}

// Dot returns the dot product of two vectors
func (v Vector3) Dot(other Vector3) float64 {
	return r3.Dot(v.vec(), other.vec())
}

// Cross returns the cross product of two vectors.
// The result is the zero vector when the inputs are parallel, so check it with
// IsZero before using it as a plane normal.
func (v Vector3) Cross(other Vector3) Vector3 {
	return fromVec(r3.Cross(v.vec(), other.vec()))
}

// Length returns the magnitude of the vector
func (v Vector3) Length() float64 {
	return r3.Norm(v.vec())
}

// Distance returns the distance between two points
func (v Vector3) Distance(other Vector3) float64 {
	return v.Sub(other).Length()
}

// IsZero reports whether the magnitude is below ZeroMagnitudeTolerance
func (v Vector3) IsZero() bool {
	return v.Length() < ZeroMagnitudeTolerance
}

// IsFinite reports whether all components are finite numbers
func (v Vector3) IsFinite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Normalize returns a unit vector in the same direction.
// It fails with a *ZeroVectorError when the vector is shorter than
// ZeroMagnitudeTolerance.
func (v Vector3) Normalize() (Vector3, error) {
	length := v.Length()
	if length < ZeroMagnitudeTolerance {
		return Vector3{}, &ZeroVectorError{Magnitude: length}
	}
	return v.Mul(1.0 / length), nil
}

// Min returns a vector with the minimum components of two vectors
func (v Vector3) Min(other Vector3) Vector3 {
	return Vector3{
		X: math.Min(v.X, other.X),
		Y: math.Min(v.Y, other.Y),
		Z: math.Min(v.Z, other.Z),
	}
}

// Max returns a vector with the maximum components of two vectors
func (v Vector3) Max(other Vector3) Vector3 {
	return Vector3{
		X: math.Max(v.X, other.X),
		Y: math.Max(v.Y, other.Y),
		Z: math.Max(v.Z, other.Z),
	}
}

// Component returns the coordinate on the given axis (0=X, 1=Y, 2=Z)
func (v Vector3) Component(axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Close reports whether two points lie within tolerance of each other
func (v Vector3) Close(other Vector3, tolerance float64) bool {
	return v.Distance(other) <= tolerance
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}

// ClampUnit clamps a cosine into [-1, 1] so acos never sees floating point
// overshoot from nearly parallel or antiparallel vectors.
func ClampUnit(c float64) float64 {
	return math.Max(-1.0, math.Min(1.0, c))
}

// AngleBetween returns the angle between a and b in degrees, in [0, 180].
// Both vectors must be longer than ZeroMagnitudeTolerance.
func AngleBetween(a, b Vector3) (float64, error) {
	magA := a.Length()
	if magA < ZeroMagnitudeTolerance {
		return 0, &ZeroVectorError{Magnitude: magA, Operand: "first"}
	}
	magB := b.Length()
	if magB < ZeroMagnitudeTolerance {
		return 0, &ZeroVectorError{Magnitude: magB, Operand: "second"}
	}
	cos := ClampUnit(a.Dot(b) / (magA * magB))
	return Degrees(math.Acos(cos)), nil
}

// Degrees converts radians to degrees
func Degrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// Radians converts degrees to radians
func Radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
