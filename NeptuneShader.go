package orrery

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	neptuneDeep  = RGB(0.0, 0.0, 0.3)
	neptuneLight = RGB(0.2, 0.2, 0.7)
	neptuneBand  = RGB(0.7, 0.1, 0.7)
	neptuneRing  = White
)

// Ring volume, in units of the planet radius.
const (
	RingInnerRadius = 1.1
	RingOuterRadius = 1.3
	RingThickness   = 0.05
)

// InRing reports whether a model-space position lies inside the ring
// volume around the equatorial plane.
func InRing(p mgl64.Vec3) bool {
	r := mgl64.Vec2{p[0], p[2]}.Len()
	return r > RingInnerRadius && r < RingOuterRadius && math.Abs(p[1]) < RingThickness
}

// neptune shades a banded blue atmosphere from 3D gradient noise. Anything
// inside the ring volume is flat, unlit ring color.
func (b *ShaderBank) neptune(f Fragment) Fragment {
	if InRing(f.Original) {
		return finish(f, neptuneRing, false)
	}

	d := normalize(f.Original).Mul(400)
	cloud := Smoothstep(0.2, 0.6, b.gradient.Sample3(d[0], d[1], d[2]))
	c := neptuneDeep.Lerp(neptuneLight, cloud)

	u, v := sphereUV(f.Original, 2)
	band := Smoothstep(0.6, 0.9, unit(b.layer(b.gradient, 200, 0, 50).At(u*0.1, v)))
	c = c.Lerp(neptuneBand, band*0.5)
	return finish(f, c, true)
}
