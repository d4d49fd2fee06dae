package orrery

import (
	"math"
	"path/filepath"
	"strings"
)

func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Smoothstep is the GLSL smoothstep: Hermite interpolation between edges.
func Smoothstep(e0, e1, x float64) float64 {
	t := Clamp((x-e0)/(e1-e0), 0, 1)
	return t * t * (3 - 2*t)
}

// Mix is the GLSL mix for scalars.
func Mix(a, b, t float64) float64 {
	return a + (b-a)*t
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func lowerExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
