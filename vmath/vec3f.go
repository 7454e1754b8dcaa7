// Package vmath holds the vector helpers used for kill geometry
package vmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// Vec3F is a float64 world-space position or offset in meters
type Vec3F struct {
	X, Y, Z float64
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// V3FDist returns the Euclidean distance between two points
func V3FDist(a, b Vec3F) float64 {
	return V3FMag(V3FSub(a, b))
}

// V3FFromR3 converts a geo vector without rescaling
func V3FFromR3(v r3.Vector) Vec3F {
	return Vec3F{v.X, v.Y, v.Z}
}
