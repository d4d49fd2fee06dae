package orrery

var (
	gasHigh  = Gray(0.9)
	gasMid   = Gray(0.6)
	gasLow   = Gray(0.3)
	gasStorm = Gray(0.1)
)

// gasGiant layers altitude bands, sharp storm cells and a high-frequency
// cloud veil, all from gradient noise.
func (b *ShaderBank) gasGiant(f Fragment) Fragment {
	const (
		ox    = 100
		oy    = 2000
		scale = 800
	)
	u, v := sphereUV(f.Original, 4)

	atmosphere := Smoothstep(0, 1, b.layer(b.gradient, scale, ox, oy).At(u, v))
	c := gasLow.Lerp(gasHigh, atmosphere)

	storm := Smoothstep(0.8, 1, b.layer(b.gradient, scale*2, ox*0.5, oy*0.5).At(u, v))
	if storm > 0.9 {
		c = c.Lerp(gasStorm, (storm-0.9)*10)
	}

	cloud := Smoothstep(0.7, 1, b.layer(b.gradient, scale*3, 0, 0).At(u, v))
	c = c.Lerp(gasMid, cloud)
	return finish(f, c, true)
}
