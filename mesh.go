package orrery

import (
	"math"

	"github.com/fogleman/simplify"
	"github.com/go-gl/mathgl/mgl64"
)

// Face holds 0-based indices into a Mesh's attribute arrays for one
// triangle. -1 marks a missing attribute.
type Face struct {
	V [3]int
	T [3]int
	N [3]int
}

// Mesh is decoded geometry: attribute arrays plus triangulated faces.
type Mesh struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	Texcoords []mgl64.Vec3
	Faces     []Face
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max mgl64.Vec3
}

func (b Box) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b Box) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// BoundingBox returns the bounds of all positions, or the zero box for an
// empty mesh.
func (m *Mesh) BoundingBox() Box {
	if len(m.Positions) == 0 {
		return Box{}
	}
	inf := math.Inf(1)
	box := Box{mgl64.Vec3{inf, inf, inf}, mgl64.Vec3{-inf, -inf, -inf}}
	for _, p := range m.Positions {
		for i := 0; i < 3; i++ {
			box.Min[i] = math.Min(box.Min[i], p[i])
			box.Max[i] = math.Max(box.Max[i], p[i])
		}
	}
	return box
}

// VertexBuffer expands the faces into a flat vertex stream, three vertices
// per triangle. A face without normals gets its geometric normal.
func (m *Mesh) VertexBuffer() []Vertex {
	vs := make([]Vertex, 0, len(m.Faces)*3)
	for _, f := range m.Faces {
		p0, p1, p2 := m.Positions[f.V[0]], m.Positions[f.V[1]], m.Positions[f.V[2]]
		flat := normalize(p1.Sub(p0).Cross(p2.Sub(p0)))
		for i := 0; i < 3; i++ {
			v := Vertex{Position: m.Positions[f.V[i]], Normal: flat}
			if f.N[i] >= 0 {
				v.Normal = m.Normals[f.N[i]]
			}
			if f.T[i] >= 0 {
				v.Texture = m.Texcoords[f.T[i]]
			}
			vs = append(vs, v)
		}
	}
	return vs
}

// Simplify decimates the mesh to roughly factor times its face count.
// Zero-area faces are dropped. The result carries positions only;
// normals fall back to face normals.
func (m *Mesh) Simplify(factor float64) *Mesh {
	triangles := make([]*simplify.Triangle, 0, len(m.Faces))
	for _, f := range m.Faces {
		p0, p1, p2 := m.Positions[f.V[0]], m.Positions[f.V[1]], m.Positions[f.V[2]]
		// zero-area faces have no plane to build a quadric from
		if p1.Sub(p0).Cross(p2.Sub(p0)).Len() == 0 {
			continue
		}
		triangles = append(triangles, simplify.NewTriangle(toSimplify(p0), toSimplify(p1), toSimplify(p2)))
	}
	reduced := simplify.NewMesh(triangles).Simplify(factor)

	out := &Mesh{}
	index := make(map[simplify.Vector]int)
	lookup := func(v simplify.Vector) int {
		if i, ok := index[v]; ok {
			return i
		}
		i := len(out.Positions)
		index[v] = i
		out.Positions = append(out.Positions, mgl64.Vec3{v.X, v.Y, v.Z})
		return i
	}
	for _, t := range reduced.Triangles {
		out.Faces = append(out.Faces, Face{
			V: [3]int{lookup(t.V1), lookup(t.V2), lookup(t.V3)},
			T: [3]int{-1, -1, -1},
			N: [3]int{-1, -1, -1},
		})
	}
	return out
}

func toSimplify(v mgl64.Vec3) simplify.Vector {
	return simplify.Vector{X: v[0], Y: v[1], Z: v[2]}
}
