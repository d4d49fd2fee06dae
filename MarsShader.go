package orrery

var (
	marsSoil   = RGB(0.7, 0.2, 0.1)
	marsDark   = RGB(0.4, 0.1, 0.05)
	marsOrange = RGB(0.8, 0.4, 0.1)
	marsDust   = RGB(0.8, 0.3, 0.2)
)

func (b *ShaderBank) mars(f Fragment) Fragment {
	u, v := sphereUV(f.Original, 4)
	n := b.layer(b.gradient, 500, 100, 200).At(u, v)

	var c Color
	switch {
	case n < 0.4:
		c = marsDark.Lerp(marsSoil, Clamp(n, 0, 1))
	case n < 0.6:
		c = marsSoil
	case n < 0.8:
		c = marsSoil.Lerp(marsOrange, (n-0.6)*2.5)
	default:
		c = marsOrange.Lerp(marsDust, (n-0.8)*5)
	}
	return finish(f, c, true)
}
