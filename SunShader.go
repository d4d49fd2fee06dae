package orrery

import "math"

var (
	sunCore  = RGB(1.0, 0.7, 0.2)
	sunMid   = RGB(1.0, 0.5, 0.1)
	sunDark  = RGB(1.0, 0.4, 0.0)
	sunFlare = RGB(1.0, 0.3, 0.0)
)

// sun mixes orange tones by gradient noise; the hottest spots get a
// sinusoidal flare pattern, slightly cooler ones darken.
func (b *ShaderBank) sun(f Fragment) Fragment {
	u, v := sphereUV(f.Original, 2)
	n := unit(b.layer(b.gradient, 30000, 8000, 1000).At(u, v))

	c := sunCore.Lerp(sunMid, n)
	flare := math.Sin(v*40+n*100)*0.1 + 0.9
	switch {
	case n > 0.95:
		c = c.Lerp(sunMid.Lerp(sunFlare, flare), (n-0.95)*20)
	case n > 0.8:
		c = c.Lerp(sunDark, (n-0.8)*5)
	}
	return finish(f, c, true)
}
