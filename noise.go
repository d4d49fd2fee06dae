package orrery

import (
	"fmt"
	"math"

	perlin "github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// NoiseFamily selects the coherent noise algorithm behind a NoiseSampler.
type NoiseFamily int

const (
	Gradient NoiseFamily = iota
	Cellular
	Simplex
)

func (f NoiseFamily) String() string {
	switch f {
	case Gradient:
		return "gradient"
	case Cellular:
		return "cellular"
	case Simplex:
		return "simplex"
	}
	return fmt.Sprintf("NoiseFamily(%d)", int(f))
}

const (
	// DefaultNoiseFrequency scales sample coordinates before evaluation.
	DefaultNoiseFrequency = 0.01

	perlinAlpha   = 2
	perlinBeta    = 2
	perlinOctaves = 3
)

// NoiseSampler evaluates one noise family at a fixed seed and frequency.
// It holds no mutable state after construction and may be shared by any
// number of goroutines.
type NoiseSampler struct {
	family    NoiseFamily
	seed      int64
	frequency float64
	gradient  *perlin.Perlin
	simplex   opensimplex.Noise
}

func NewNoiseSampler(family NoiseFamily, seed int64) *NoiseSampler {
	s := &NoiseSampler{family: family, seed: seed, frequency: DefaultNoiseFrequency}
	switch family {
	case Gradient:
		s.gradient = perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)
	case Simplex:
		s.simplex = opensimplex.New(seed)
	}
	return s
}

// WithFrequency returns a copy of the sampler using frequency f.
func (s *NoiseSampler) WithFrequency(f float64) *NoiseSampler {
	c := *s
	c.frequency = f
	return &c
}

func (s *NoiseSampler) Family() NoiseFamily { return s.family }
func (s *NoiseSampler) Seed() int64         { return s.seed }
func (s *NoiseSampler) Frequency() float64  { return s.frequency }

// Sample2 returns the noise value at (x, y), in [-1, 1].
func (s *NoiseSampler) Sample2(x, y float64) float64 {
	x *= s.frequency
	y *= s.frequency
	var n float64
	switch s.family {
	case Gradient:
		n = s.gradient.Noise2D(x, y)
	case Simplex:
		n = s.simplex.Eval2(x, y)
	case Cellular:
		n = cellular2(s.seed, x, y)
	}
	return Clamp(n, -1, 1)
}

// Sample3 returns the noise value at (x, y, z), in [-1, 1].
func (s *NoiseSampler) Sample3(x, y, z float64) float64 {
	x *= s.frequency
	y *= s.frequency
	z *= s.frequency
	var n float64
	switch s.family {
	case Gradient:
		n = s.gradient.Noise3D(x, y, z)
	case Simplex:
		n = s.simplex.Eval3(x, y, z)
	case Cellular:
		n = cellular3(s.seed, x, y, z)
	}
	return Clamp(n, -1, 1)
}

// NoiseLayer is a sampler bound to a UV scale and offset.
type NoiseLayer struct {
	Sampler          *NoiseSampler
	Scale            float64
	OffsetX, OffsetY float64
}

// At samples the layer at (u, v).
func (l NoiseLayer) At(u, v float64) float64 {
	return l.Sampler.Sample2((u+l.OffsetX)*l.Scale, (v+l.OffsetY)*l.Scale)
}

// Cellular noise: one jittered feature point per unit cell, returning the
// squared distance to the nearest point minus one.

const (
	primeX = 501125321
	primeY = 1136930381
	primeZ = 1720413743
)

func hash3(seed int64, x, y, z int) uint32 {
	h := uint32(seed) ^ uint32(x)*primeX ^ uint32(y)*primeY ^ uint32(z)*primeZ
	h ^= h >> 15
	h *= 0x2c1b3c6d
	h ^= h >> 12
	h *= 0x297a2d39
	h ^= h >> 15
	return h
}

func jitter(h uint32, shift uint) float64 {
	return float64((h>>shift)&0x3ff) / 1024
}

func cellular2(seed int64, x, y float64) float64 {
	cx := int(math.Floor(x))
	cy := int(math.Floor(y))
	best := math.MaxFloat64
	for j := cy - 1; j <= cy+1; j++ {
		for i := cx - 1; i <= cx+1; i++ {
			h := hash3(seed, i, j, 0)
			dx := float64(i) + jitter(h, 0) - x
			dy := float64(j) + jitter(h, 10) - y
			best = math.Min(best, dx*dx+dy*dy)
		}
	}
	return best - 1
}

func cellular3(seed int64, x, y, z float64) float64 {
	cx := int(math.Floor(x))
	cy := int(math.Floor(y))
	cz := int(math.Floor(z))
	best := math.MaxFloat64
	for k := cz - 1; k <= cz+1; k++ {
		for j := cy - 1; j <= cy+1; j++ {
			for i := cx - 1; i <= cx+1; i++ {
				h := hash3(seed, i, j, k)
				dx := float64(i) + jitter(h, 0) - x
				dy := float64(j) + jitter(h, 10) - y
				dz := float64(k) + jitter(h, 20) - z
				best = math.Min(best, dx*dx+dy*dy+dz*dz)
			}
		}
	}
	return best - 1
}
