package orrery

import (
	"iter"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Fragment is one covered pixel of one primitive. Color stays Transparent
// until a fragment shader writes it.
type Fragment struct {
	X, Y      int
	Z         float64
	Intensity float64
	World     mgl64.Vec3
	Original  mgl64.Vec3
	Color     Color
}

// DefaultLight points from the surface toward a viewer on +z.
var DefaultLight = mgl64.Vec3{0, 0, 1}

// Rasterizer scan-converts screen-space primitives into fragments inside a
// fixed width x height extent. It is read-only while iterating and may be
// shared between goroutines.
type Rasterizer struct {
	Width  int
	Height int
	light  mgl64.Vec3
}

func NewRasterizer(width, height int) *Rasterizer {
	return &Rasterizer{Width: width, Height: height, light: DefaultLight}
}

// SetLight sets the direction toward the light. It must not be called while
// fragments are being produced.
func (r *Rasterizer) SetLight(dir mgl64.Vec3) {
	r.light = normalize(dir)
}

func (r *Rasterizer) Light() mgl64.Vec3 {
	return r.light
}

// intensity is the clamped Lambert term for a surface normal.
func (r *Rasterizer) intensity(n mgl64.Vec3) float64 {
	return Clamp(normalize(n).Dot(r.light), 0, 1)
}

// orient is twice the signed area of (a, b, p); positive when p lies to
// the left of a->b in a y-up frame.
func orient(a, b mgl64.Vec3, px, py float64) float64 {
	return (b[0]-a[0])*(py-a[1]) - (b[1]-a[1])*(px-a[0])
}

// topLeft reports whether edge a->b of a counter-clockwise triangle owns
// the pixel centers lying exactly on it. With y up, left edges run down
// and top edges run right to left.
func topLeft(a, b mgl64.Vec3) bool {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	return dy < 0 || (dy == 0 && dx < 0)
}

func covers(w float64, owned bool) bool {
	return w > 0 || (w == 0 && owned)
}

// Triangle returns the fragments whose pixel centers fall inside t.
// Both windings are accepted; zero-area and non-finite triangles produce
// nothing.
func (r *Rasterizer) Triangle(t Triangle) iter.Seq[Fragment] {
	return func(yield func(Fragment) bool) {
		v0, v1, v2 := t.V1, t.V2, t.V3
		s0, s1, s2 := v0.Position, v1.Position, v2.Position
		if !finite(s0[0], s0[1], s0[2], s1[0], s1[1], s1[2], s2[0], s2[1], s2[2]) {
			Logger().Debug("orrery: skipping non-finite triangle", "v1", s0, "v2", s1, "v3", s2)
			return
		}

		area := orient(s0, s1, s2[0], s2[1])
		if area == 0 {
			return
		}
		if area < 0 {
			v1, v2 = v2, v1
			s1, s2 = s2, s1
			area = -area
		}

		minX := math.Floor(math.Min(s0[0], math.Min(s1[0], s2[0])))
		maxX := math.Ceil(math.Max(s0[0], math.Max(s1[0], s2[0])))
		minY := math.Floor(math.Min(s0[1], math.Min(s1[1], s2[1])))
		maxY := math.Ceil(math.Max(s0[1], math.Max(s1[1], s2[1])))
		if maxX < 0 || maxY < 0 || minX >= float64(r.Width) || minY >= float64(r.Height) {
			return
		}
		x0 := int(Clamp(minX, 0, float64(r.Width-1)))
		x1 := int(Clamp(maxX, 0, float64(r.Width-1)))
		y0 := int(Clamp(minY, 0, float64(r.Height-1)))
		y1 := int(Clamp(maxY, 0, float64(r.Height-1)))

		own0 := topLeft(s1, s2)
		own1 := topLeft(s2, s0)
		own2 := topLeft(s0, s1)
		ra := 1 / area

		for y := y0; y <= y1; y++ {
			py := float64(y) + 0.5
			for x := x0; x <= x1; x++ {
				px := float64(x) + 0.5
				w0 := orient(s1, s2, px, py)
				w1 := orient(s2, s0, px, py)
				w2 := orient(s0, s1, px, py)
				if !covers(w0, own0) || !covers(w1, own1) || !covers(w2, own2) {
					continue
				}
				b0, b1, b2 := w0*ra, w1*ra, w2*ra
				n := interpolate(v0.Normal, v1.Normal, v2.Normal, b0, b1, b2)
				f := Fragment{
					X:         x,
					Y:         y,
					Z:         b0*s0[2] + b1*s1[2] + b2*s2[2],
					Intensity: r.intensity(n),
					World:     interpolate(v0.World, v1.World, v2.World, b0, b1, b2),
					Original:  interpolate(v0.Original, v1.Original, v2.Original, b0, b1, b2),
				}
				if !yield(f) {
					return
				}
			}
		}
	}
}

func interpolate(a, b, c mgl64.Vec3, wa, wb, wc float64) mgl64.Vec3 {
	return mgl64.Vec3{
		a[0]*wa + b[0]*wb + c[0]*wc,
		a[1]*wa + b[1]*wb + c[1]*wc,
		a[2]*wa + b[2]*wb + c[2]*wc,
	}
}

// Line walks the integer Bresenham path from a to b, both endpoints
// included. The segment is clipped to the extent first, so only the
// visible part is walked; pixels that still fall outside are skipped.
// Attributes are interpolated by step count along the path.
func (r *Rasterizer) Line(a, b Vertex) iter.Seq[Fragment] {
	return func(yield func(Fragment) bool) {
		pa, pb := a.Position, b.Position
		if !finite(pa[0], pa[1], pa[2], pb[0], pb[1], pb[2]) {
			Logger().Debug("orrery: skipping non-finite line", "a", pa, "b", pb)
			return
		}
		t0, t1, ok := clipSegment(pa, pb, float64(r.Width), float64(r.Height))
		if !ok {
			return
		}
		ca, cb := lerp(pa, pb, t0), lerp(pa, pb, t1)

		x, y := int(math.Floor(ca[0])), int(math.Floor(ca[1]))
		x1, y1 := int(math.Floor(cb[0])), int(math.Floor(cb[1]))
		dx := abs(x1 - x)
		dy := abs(y1 - y)
		sx, sy := 1, 1
		if x > x1 {
			sx = -1
		}
		if y > y1 {
			sy = -1
		}
		steps := max(dx, dy)
		err := dx - dy

		for i := 0; ; i++ {
			if x >= 0 && x < r.Width && y >= 0 && y < r.Height {
				t := t0
				if steps > 0 {
					t += (t1 - t0) * float64(i) / float64(steps)
				}
				f := Fragment{
					X:         x,
					Y:         y,
					Z:         Mix(pa[2], pb[2], t),
					Intensity: r.intensity(lerp(a.Normal, b.Normal, t)),
					World:     lerp(a.World, b.World, t),
					Original:  lerp(a.Original, b.Original, t),
				}
				if !yield(f) {
					return
				}
			}
			if x == x1 && y == y1 {
				return
			}
			e2 := 2 * err
			if e2 > -dy {
				err -= dy
				x += sx
			}
			if e2 < dx {
				err += dx
				y += sy
			}
		}
	}
}

// clipSegment returns the parameter range of the segment a-b that lies
// inside [0, w] x [0, h] (Liang-Barsky). ok is false when nothing does.
func clipSegment(a, b mgl64.Vec3, w, h float64) (t0, t1 float64, ok bool) {
	dx, dy := b[0]-a[0], b[1]-a[1]
	if !finite(dx, dy) {
		return 0, 0, false
	}
	t0, t1 = 0, 1
	for _, e := range [4][2]float64{
		{-dx, a[0]}, {dx, w - a[0]},
		{-dy, a[1]}, {dy, h - a[1]},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, false
			}
			t1 = min(t1, t)
		}
	}
	return t0, t1, true
}

// Wireframe returns the edge lines of t in winding order.
func (r *Rasterizer) Wireframe(t Triangle) iter.Seq[Fragment] {
	return func(yield func(Fragment) bool) {
		for _, e := range [3][2]Vertex{{t.V1, t.V2}, {t.V2, t.V3}, {t.V3, t.V1}} {
			for f := range r.Line(e[0], e[1]) {
				if !yield(f) {
					return
				}
			}
		}
	}
}

func lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
