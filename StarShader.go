package orrery

import "math"

var (
	starMain   = White
	starSecond = RGB(55.0/255, 0, 55.0/255)
)

// star is an unlit speckle field of near-white and violet, with faint
// sinusoidal streaks on the brightest speckles. It reads the raw original
// position, not a sphere projection.
func (b *ShaderBank) star(f Fragment) Fragment {
	x := f.Original[0]*2 - 1
	y := f.Original[1]*2 - 1
	n := (b.layer(b.gradient, 30000, 8000, 1000).At(x, y) + 1) * 0.9
	return finish(f, starMix(n, y), false)
}

// starMix blends the speckle color for noise n in [0, 1.8]. The mix
// factors are not clamped: past 1 they overshoot and the final color
// clamp saturates them.
func starMix(n, y float64) Color {
	c := starMain.Lerp(starSecond, n)
	if n > 0.99 {
		c = c.AddScalar(Smoothstep(0.8, 1, math.Sin(y*20)) * 0.1)
	}
	return starMain.Lerp(c, n)
}
