package orrery

import (
	"errors"
	"io"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Body is a scene object moving on a circular orbit in the xz plane around
// its parent (or the origin) while spinning about its own y axis. Angles
// are degrees, speeds are degrees per frame.
type Body struct {
	Name        string
	Shader      ShaderType
	Scale       float64
	OrbitRadius float64
	OrbitSpeed  float64
	SpinSpeed   float64
	Orbit       float64
	Spin        float64
	Parent      *Body
	// Vertices overrides the scene mesh when set.
	Vertices []Vertex
}

// Position is the body's center in world space.
func (b *Body) Position() mgl64.Vec3 {
	var origin mgl64.Vec3
	if b.Parent != nil {
		origin = b.Parent.Position()
	}
	if b.OrbitRadius == 0 {
		return origin
	}
	orbit := mgl64.HomogRotate3DY(mgl64.DegToRad(b.Orbit))
	return origin.Add(orbit.Mul4x1(mgl64.Vec4{b.OrbitRadius, 0, 0, 1}).Vec3())
}

// ModelMatrix is translate(position) · rotateY(spin) · scale.
func (b *Body) ModelMatrix() mgl64.Mat4 {
	p := b.Position()
	s := b.Scale
	if s == 0 {
		s = 1
	}
	return mgl64.Translate3D(p[0], p[1], p[2]).
		Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(b.Spin))).
		Mul4(mgl64.Scale3D(s, s, s))
}

// Advance moves the body one frame along its orbit and spin.
func (b *Body) Advance() {
	b.Orbit = math.Mod(b.Orbit+b.OrbitSpeed, 360)
	b.Spin = math.Mod(b.Spin+b.SpinSpeed, 360)
}

// Scene is the frame driver: it owns the camera, the bodies and the frame
// counter, and turns them into objects and frame transforms.
type Scene struct {
	Camera   Camera
	Bodies   []*Body
	Vertices []Vertex
	Width    int
	Height   int
	frame    int
}

func NewScene(camera Camera, vertices []Vertex, width, height int) *Scene {
	return &Scene{Camera: camera, Vertices: vertices, Width: width, Height: height}
}

// DefaultScene is a spinning primary with a small star companion.
func DefaultScene(vertices []Vertex, width, height int) *Scene {
	s := NewScene(DefaultCamera(), vertices, width, height)
	primary := &Body{Name: "primary", Shader: Rocky, Scale: 1, Spin: 45, SpinSpeed: 1}
	s.AddBody(primary)
	s.AddBody(&Body{
		Name:        "companion",
		Shader:      Star,
		Scale:       0.2,
		OrbitRadius: 1.5,
		Orbit:       45,
		OrbitSpeed:  1,
		SpinSpeed:   1,
		Parent:      primary,
	})
	return s
}

func (s *Scene) AddBody(b *Body) {
	s.Bodies = append(s.Bodies, b)
}

// FrameIndex is the number of completed Steps.
func (s *Scene) FrameIndex() int {
	return s.frame
}

// Step advances every body by one frame.
func (s *Scene) Step() {
	for _, b := range s.Bodies {
		b.Advance()
	}
	s.frame++
}

// Objects snapshots the bodies as drawable objects for this frame.
func (s *Scene) Objects() []*Object {
	objects := make([]*Object, 0, len(s.Bodies))
	for _, b := range s.Bodies {
		vs := b.Vertices
		if vs == nil {
			vs = s.Vertices
		}
		objects = append(objects, &Object{
			Name:     b.Name,
			Vertices: vs,
			Matrix:   b.ModelMatrix(),
			Shader:   b.Shader,
		})
	}
	return objects
}

// Frame returns the shared transforms for the current frame.
func (s *Scene) Frame() Frame {
	aspect := float64(s.Width) / float64(s.Height)
	return Frame{
		Index:      s.frame,
		View:       s.Camera.View(),
		Projection: s.Camera.Projection(aspect),
		Viewport:   Viewport(s.Width, s.Height),
	}
}

// Draw renders the current frame into r's framebuffer.
func (s *Scene) Draw(r *Renderer) error {
	start := time.Now()
	err := r.Render(s.Objects(), s.Frame())
	Logger().Debug("orrery: frame rendered", "frame", s.frame, "objects", len(s.Bodies), "elapsed", time.Since(start))
	return err
}

// DrawToWriter renders the current frame and encodes it to w. The image
// is written even when some object failed to draw.
func (s *Scene) DrawToWriter(r *Renderer, w io.Writer, format Format) error {
	err := s.Draw(r)
	return errors.Join(err, Encode(w, Present(r.Framebuffer), format))
}
