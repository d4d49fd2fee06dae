package orrery

var (
	earthWater  = RGB(0.0, 0.0, 0.9)
	earthCoast  = RGB(0.0, 0.28, 0.20)
	earthForest = RGB(0.12, 0.48, 0.12)
	earthRock   = RGB(0.45, 0.30, 0.20)
	earthIce    = RGB(0.90, 0.95, 1.0)
	earthCloud  = White
)

// earth bands simplex terrain noise into water, coast, vegetation, rock and
// ice, then overlays a lower-frequency cloud layer.
func (b *ShaderBank) earth(f Fragment) Fragment {
	const (
		ox    = 100
		oy    = 200000
		scale = 600
	)
	u, v := sphereUV(f.Original, 4)
	n := b.layer(b.simplex, scale, ox, oy).At(u, v)

	var c Color
	switch {
	case n < 0.4:
		c = smoothstepColor(0, 0.9, earthWater.Lerp(earthCoast, Clamp(n, 0, 1)))
	case n < 0.6:
		c = earthCoast
	case n < 0.8:
		c = earthForest
	case n < 0.9:
		c = earthRock
	default:
		c = earthIce
	}

	cloud := (b.layer(b.simplex, scale*0.5, ox, oy).At(u, v) + 1) * 0.3
	c = c.Lerp(earthCloud, Smoothstep(0, 1, cloud))
	return finish(f, c, true)
}
