package orrery

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

var (
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
	Transparent = Color{}
)

// Color is a linear RGBA color with float channels in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Gray returns an opaque gray of the given level.
func Gray(x float64) Color {
	return Color{x, x, x, 1}
}

// RGB returns an opaque color from float channels.
func RGB(r, g, b float64) Color {
	return Color{r, g, b, 1}
}

// HexColor parses "rgb", "rrggbb" or "rrggbbaa", with or without a leading #.
// Malformed input yields black.
func HexColor(x string) Color {
	x = strings.TrimPrefix(x, "#")
	var r, g, b, a int
	a = 255
	switch len(x) {
	case 3:
		fmt.Sscanf(x, "%1x%1x%1x", &r, &g, &b)
		r = (r << 4) | r
		g = (g << 4) | g
		b = (b << 4) | b
	case 6:
		fmt.Sscanf(x, "%02x%02x%02x", &r, &g, &b)
	case 8:
		fmt.Sscanf(x, "%02x%02x%02x%02x", &r, &g, &b, &a)
	}
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, float64(a) / 255}
}

// NRGBA quantizes the color to 8 bits per channel, clamping first.
func (a Color) NRGBA() color.NRGBA {
	const d = 0xff
	c := a.Clamp()
	return color.NRGBA{
		uint8(math.Round(c.R * d)),
		uint8(math.Round(c.G * d)),
		uint8(math.Round(c.B * d)),
		uint8(math.Round(c.A * d)),
	}
}

func (a Color) Opaque() Color {
	return Color{a.R, a.G, a.B, 1}
}

// The arithmetic below works on RGB only and keeps the receiver's alpha.

func (a Color) AddScalar(b float64) Color {
	return Color{a.R + b, a.G + b, a.B + b, a.A}
}

func (a Color) MulScalar(b float64) Color {
	return Color{a.R * b, a.G * b, a.B * b, a.A}
}

// Lerp mixes a toward b by t, like GLSL mix.
func (a Color) Lerp(b Color, t float64) Color {
	return Color{
		a.R + (b.R-a.R)*t,
		a.G + (b.G-a.G)*t,
		a.B + (b.B-a.B)*t,
		a.A + (b.A-a.A)*t,
	}
}

// Clamp limits every channel to [0, 1].
func (a Color) Clamp() Color {
	return Color{Clamp(a.R, 0, 1), Clamp(a.G, 0, 1), Clamp(a.B, 0, 1), Clamp(a.A, 0, 1)}
}
