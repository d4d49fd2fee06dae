package orrery

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Vertex is one mesh vertex as it moves through the pipeline. The loader
// fills Position, Normal and Texture; TransformVertex replaces Position with
// the screen-space position and fills World and Original.
type Vertex struct {
	Position mgl64.Vec3
	Normal   mgl64.Vec3
	Texture  mgl64.Vec3
	World    mgl64.Vec3
	Original mgl64.Vec3
}

// Transform is the per-object matrix bundle consumed by TransformVertex.
type Transform struct {
	Model      mgl64.Mat4
	View       mgl64.Mat4
	Projection mgl64.Mat4
	Viewport   mgl64.Mat4
}

// IdentityTransform has every stage set to the identity.
func IdentityTransform() Transform {
	return Transform{mgl64.Ident4(), mgl64.Ident4(), mgl64.Ident4(), mgl64.Ident4()}
}

// MVP returns projection · view · model.
func (t Transform) MVP() mgl64.Mat4 {
	return t.Projection.Mul4(t.View).Mul4(t.Model)
}

// TransformVertex maps a model-space vertex to screen space.
//
// The perspective divide is unguarded: a clip-space w of zero produces
// non-finite screen coordinates, which the rasterizer rejects.
// The normal is transformed by the upper 3x3 of the model matrix without
// an inverse-transpose, so it is only exact for orthogonal model matrices.
func TransformVertex(v Vertex, t Transform) Vertex {
	return transformVertex(v, t.MVP(), t.Model, t.Viewport)
}

func transformVertex(v Vertex, mvp, model, viewport mgl64.Mat4) Vertex {
	p := v.Position.Vec4(1)
	clip := mvp.Mul4x1(p)
	ndc := clip.Vec3().Mul(1 / clip.W())
	screen := viewport.Mul4x1(ndc.Vec4(1))

	return Vertex{
		Position: screen.Vec3(),
		Normal:   normalize(model.Mat3().Mul3x1(v.Normal)),
		Texture:  v.Texture,
		World:    model.Mul4x1(p).Vec3(),
		Original: v.Position,
	}
}

// TransformVertices runs TransformVertex over a whole vertex buffer.
func TransformVertices(vs []Vertex, t Transform) []Vertex {
	mvp := t.MVP()
	out := make([]Vertex, len(vs))
	for i, v := range vs {
		out[i] = transformVertex(v, mvp, t.Model, t.Viewport)
	}
	return out
}

// Viewport maps normalized device coordinates to a width x height screen
// with the origin at the bottom-left and y up. Depth maps [-1, 1] to
// [-0.25, 0.75], preserving order.
func Viewport(width, height int) mgl64.Mat4 {
	s := mgl64.Scale3D(float64(width)/2, float64(height)/2, 0.5)
	return s.Mul4(mgl64.Translate3D(1, 1, 0.5))
}

// Perspective is mgl64.Perspective taking the field of view in degrees.
func Perspective(fovy, aspect, near, far float64) mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(fovy), aspect, near, far)
}

// LookAt builds a right-handed view matrix.
func LookAt(eye, center, up mgl64.Vec3) mgl64.Mat4 {
	return mgl64.LookAtV(eye, center, up)
}

func normalize(v mgl64.Vec3) mgl64.Vec3 {
	if l := v.Len(); l > 0 {
		return v.Mul(1 / l)
	}
	return v
}
