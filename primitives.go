package orrery

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// NewSphere builds a unit UV sphere with smooth normals and texcoords.
func NewSphere(segments, rings int) *Mesh {
	segments = max(segments, 3)
	rings = max(rings, 2)

	mesh := &Mesh{}
	for ring := 0; ring <= rings; ring++ {
		phi := float64(ring) * math.Pi / float64(rings)
		sinPhi, cosPhi := math.Sincos(phi)
		for seg := 0; seg <= segments; seg++ {
			theta := float64(seg) * 2 * math.Pi / float64(segments)
			sinTheta, cosTheta := math.Sincos(theta)
			n := mgl64.Vec3{sinPhi * cosTheta, cosPhi, sinPhi * sinTheta}
			mesh.Positions = append(mesh.Positions, n)
			mesh.Normals = append(mesh.Normals, n)
			mesh.Texcoords = append(mesh.Texcoords, mgl64.Vec3{float64(seg) / float64(segments), float64(ring) / float64(rings), 0})
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := ring*(segments+1) + seg
			next := current + segments + 1
			mesh.addFace(current, current+1, next)
			mesh.addFace(current+1, next+1, next)
		}
	}
	return mesh
}

// NewRing builds a flat annulus in the xz plane between the inner and
// outer radius, facing +y.
func NewRing(inner, outer float64, segments int) *Mesh {
	segments = max(segments, 3)

	mesh := &Mesh{}
	up := mgl64.Vec3{0, 1, 0}
	for seg := 0; seg <= segments; seg++ {
		theta := float64(seg) * 2 * math.Pi / float64(segments)
		sinTheta, cosTheta := math.Sincos(theta)
		u := float64(seg) / float64(segments)
		for i, r := range [2]float64{inner, outer} {
			mesh.Positions = append(mesh.Positions, mgl64.Vec3{r * cosTheta, 0, r * sinTheta})
			mesh.Normals = append(mesh.Normals, up)
			mesh.Texcoords = append(mesh.Texcoords, mgl64.Vec3{u, float64(i), 0})
		}
	}

	for seg := 0; seg < segments; seg++ {
		in, out := 2*seg, 2*seg+1
		mesh.addFace(in, out, in+2)
		mesh.addFace(out, out+2, in+2)
	}
	return mesh
}

// addFace appends a face sharing one index across all attributes.
func (m *Mesh) addFace(a, b, c int) {
	idx := [3]int{a, b, c}
	m.Faces = append(m.Faces, Face{V: idx, T: idx, N: idx})
}
