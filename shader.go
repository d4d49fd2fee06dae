package orrery

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// ShaderType selects the fragment shader an object's fragments run through.
type ShaderType int

const (
	_ ShaderType = iota
	Rocky
	GasGiant
	Sun
	Earth
	Mars
	Neptune
	Star
	shaderCount
)

var ErrUnknownShader = errors.New("orrery: unknown shader")

var shaderNames = [shaderCount]string{
	Rocky:    "rocky",
	GasGiant: "gas",
	Sun:      "sun",
	Earth:    "earth",
	Mars:     "mars",
	Neptune:  "neptune",
	Star:     "star",
}

// ShaderTypes lists every valid selector in declaration order.
func ShaderTypes() []ShaderType {
	types := make([]ShaderType, 0, shaderCount-1)
	for s := Rocky; s < shaderCount; s++ {
		types = append(types, s)
	}
	return types
}

func (s ShaderType) Valid() bool {
	return s >= Rocky && s < shaderCount
}

func (s ShaderType) String() string {
	if s.Valid() {
		return shaderNames[s]
	}
	return fmt.Sprintf("ShaderType(%d)", int(s))
}

// Next cycles through the valid selectors, wrapping after Star.
func (s ShaderType) Next() ShaderType {
	if !s.Valid() || s == Star {
		return Rocky
	}
	return s + 1
}

// ParseShaderType resolves a shader name as printed by String.
func ParseShaderType(name string) (ShaderType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range ShaderTypes() {
		if shaderNames[s] == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShader, name)
}

func (s ShaderType) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownShader, int(s))
	}
	return []byte(s.String()), nil
}

func (s *ShaderType) UnmarshalText(b []byte) error {
	t, err := ParseShaderType(string(b))
	if err != nil {
		return err
	}
	*s = t
	return nil
}

// Lit reports whether the shader scales its color by fragment intensity.
// Star is always unlit; Neptune's ring is unlit but its atmosphere is not.
func (s ShaderType) Lit() bool {
	return s.Valid() && s != Star
}

type shaderFunc func(*ShaderBank, Fragment) Fragment

var shaderTable = [shaderCount]shaderFunc{
	Rocky:    (*ShaderBank).rocky,
	GasGiant: (*ShaderBank).gasGiant,
	Sun:      (*ShaderBank).sun,
	Earth:    (*ShaderBank).earth,
	Mars:     (*ShaderBank).mars,
	Neptune:  (*ShaderBank).neptune,
	Star:     (*ShaderBank).star,
}

// ShaderBank holds the noise samplers shared by all fragment shaders.
// Shading only reads the bank, so one bank serves every goroutine.
type ShaderBank struct {
	gradient *NoiseSampler
	cellular *NoiseSampler
	simplex  *NoiseSampler
}

func NewShaderBank(seed int64) *ShaderBank {
	return &ShaderBank{
		gradient: NewNoiseSampler(Gradient, seed),
		cellular: NewNoiseSampler(Cellular, seed),
		simplex:  NewNoiseSampler(Simplex, seed),
	}
}

// Shade runs the shader selected by s on f and returns the shaded copy.
// Only Color changes. An invalid selector returns f untouched together
// with ErrUnknownShader.
func (b *ShaderBank) Shade(s ShaderType, f Fragment) (Fragment, error) {
	if !s.Valid() {
		return f, fmt.Errorf("%w: %d", ErrUnknownShader, int(s))
	}
	return shaderTable[s](b, f), nil
}

func (b *ShaderBank) layer(s *NoiseSampler, scale, ox, oy float64) NoiseLayer {
	return NoiseLayer{Sampler: s, Scale: scale, OffsetX: ox, OffsetY: oy}
}

// sphereUV maps a position around the origin to clamped spherical texture
// coordinates. k controls how many times u wraps around the equator.
func sphereUV(p mgl64.Vec3, k float64) (u, v float64) {
	d := normalize(p)
	u = 0.5 + math.Atan2(d[2], d[0])/(k*math.Pi)
	v = 0.5 - math.Asin(Clamp(d[1], -1, 1))/math.Pi
	return Clamp(u, 0, 1), Clamp(v, 0, 1)
}

// unit maps a noise value from [-1, 1] to [0, 1].
func unit(n float64) float64 {
	return (n + 1) * 0.5
}

func smoothstepColor(e0, e1 float64, c Color) Color {
	return Color{Smoothstep(e0, e1, c.R), Smoothstep(e0, e1, c.G), Smoothstep(e0, e1, c.B), c.A}
}

// finish writes c into f, lit by f.Intensity when lit is set.
func finish(f Fragment, c Color, lit bool) Fragment {
	if lit {
		c = c.MulScalar(f.Intensity)
	}
	f.Color = c.Opaque().Clamp()
	return f
}
