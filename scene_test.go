package orrery

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBodyPosition(t *testing.T) {
	sun := &Body{Name: "sun"}
	planet := &Body{Name: "planet", OrbitRadius: 2, Orbit: 90, Parent: sun}
	moon := &Body{Name: "moon", OrbitRadius: 1, Parent: planet}

	tests := []struct {
		body *Body
		want mgl64.Vec3
	}{
		{sun, mgl64.Vec3{}},
		{planet, mgl64.Vec3{0, 0, -2}},
		{moon, mgl64.Vec3{1, 0, -2}},
	}
	for _, tc := range tests {
		if got := tc.body.Position(); !vecNear(got, tc.want, 1e-9) {
			t.Errorf("%s at %v, want %v", tc.body.Name, got, tc.want)
		}
	}
}

func TestBodyModelMatrix(t *testing.T) {
	b := &Body{OrbitRadius: 3, Spin: 90, Scale: 2}
	m := b.ModelMatrix()
	if got := m.Mul4x1(mgl64.Vec4{0, 0, 0, 1}).Vec3(); !vecNear(got, mgl64.Vec3{3, 0, 0}, 1e-9) {
		t.Errorf("origin maps to %v", got)
	}
	// Scale first, then spin +x onto -z, then translate.
	if got := m.Mul4x1(mgl64.Vec4{1, 0, 0, 1}).Vec3(); !vecNear(got, mgl64.Vec3{3, 0, -2}, 1e-9) {
		t.Errorf("+x maps to %v", got)
	}

	unscaled := &Body{}
	if got := unscaled.ModelMatrix(); !got.ApproxEqualThreshold(mgl64.Ident4(), 1e-12) {
		t.Errorf("zero body matrix %v, want identity", got)
	}
}

func TestBodyAdvance(t *testing.T) {
	b := &Body{Orbit: 359.5, OrbitSpeed: 1, Spin: 10, SpinSpeed: -2}
	b.Advance()
	if b.Orbit != 0.5 || b.Spin != 8 {
		t.Errorf("orbit %v spin %v", b.Orbit, b.Spin)
	}
}

func TestSceneStep(t *testing.T) {
	vs := NewSphere(8, 4).VertexBuffer()
	s := DefaultScene(vs, 80, 60)
	if len(s.Bodies) != 2 || s.Bodies[1].Parent != s.Bodies[0] {
		t.Fatalf("default scene bodies %+v", s.Bodies)
	}

	before := s.Objects()
	s.Step()
	s.Step()
	after := s.Objects()
	if s.FrameIndex() != 2 || s.Frame().Index != 2 {
		t.Errorf("frame index %d", s.FrameIndex())
	}
	if s.Bodies[0].Spin != 47 || s.Bodies[1].Orbit != 47 {
		t.Errorf("spin %v orbit %v after two steps", s.Bodies[0].Spin, s.Bodies[1].Orbit)
	}
	if before[0].Matrix == after[0].Matrix {
		t.Error("primary matrix unchanged after stepping")
	}
	for i, o := range after {
		if o.Shader != s.Bodies[i].Shader || len(o.Vertices) != len(vs) {
			t.Errorf("object %d: shader %v, %d vertices", i, o.Shader, len(o.Vertices))
		}
	}
}

func TestSceneBodyVertices(t *testing.T) {
	shared := NewSphere(8, 4).VertexBuffer()
	own := NewSphere(4, 2).VertexBuffer()
	s := NewScene(DefaultCamera(), shared, 10, 10)
	s.AddBody(&Body{Name: "a", Shader: Mars})
	s.AddBody(&Body{Name: "b", Shader: Sun, Vertices: own})
	objects := s.Objects()
	if len(objects[0].Vertices) != len(shared) || len(objects[1].Vertices) != len(own) {
		t.Errorf("vertex counts %d and %d", len(objects[0].Vertices), len(objects[1].Vertices))
	}
}

func TestSceneFrame(t *testing.T) {
	s := NewScene(DefaultCamera(), nil, 200, 100)
	f := s.Frame()
	if f.Viewport != Viewport(200, 100) || f.View != s.Camera.View() || f.Projection != s.Camera.Projection(2) {
		t.Error("frame transforms do not match the camera")
	}
	tr := f.Transform(mgl64.Translate3D(1, 0, 0))
	if tr.View != f.View || tr.Model != mgl64.Translate3D(1, 0, 0) {
		t.Error("Transform did not carry the frame matrices")
	}
}

func TestCameraMoveEye(t *testing.T) {
	c := DefaultCamera()
	c.MoveEye(mgl64.Vec3{0.5, -0.25, 0})
	if c.Eye != (mgl64.Vec3{0.5, -0.25, 3}) || c.Target != (mgl64.Vec3{}) {
		t.Errorf("eye %v target %v", c.Eye, c.Target)
	}
}

func TestDrawToWriter(t *testing.T) {
	s := DefaultScene(NewSphere(16, 8).VertexBuffer(), 40, 30)
	r := NewRenderer(40, 30, 1)
	var buf bytes.Buffer
	if err := s.DrawToWriter(r, &buf, PNG); err != nil {
		t.Fatal(err)
	}
	im, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := im.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("bounds %v", b)
	}

	s.Bodies[0].Shader = 0
	buf.Reset()
	if err := s.DrawToWriter(r, &buf, PNG); err == nil || buf.Len() == 0 {
		t.Errorf("err = %v, %d bytes written", err, buf.Len())
	}
}
