package orrery

var (
	rockBase      = RGB(0.48, 0.42, 0.35)
	rockSecondary = RGB(0.58, 0.52, 0.45)
	rockHighlight = RGB(0.75, 0.70, 0.65)
	rockShadow    = RGB(0.30, 0.28, 0.26)
)

// rocky blends two rock tones with gradient noise and picks out ridges and
// crevices with fine cellular noise.
func (b *ShaderBank) rocky(f Fragment) Fragment {
	u, v := sphereUV(f.Original, 2)
	n1 := unit(b.layer(b.gradient, 100, 0.1, 0.1).At(u, v))
	n2 := unit(b.layer(b.cellular, 400, 0.5, 0.5).At(u, v))

	c := rockBase.Lerp(rockSecondary, n1)
	if n2 > 0.8 {
		c = c.Lerp(rockHighlight, (n2-0.8)*5)
	} else if n2 < 0.2 {
		c = c.Lerp(rockShadow, (0.2-n2)*5)
	}
	// occlusion
	c = c.MulScalar(Smoothstep(0.2, 1, n1))
	return finish(f, c, true)
}
