package orrery

import (
	"errors"
	"fmt"
	"iter"
	"runtime"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Frame is the transform state shared by every object in one frame.
type Frame struct {
	Index      int
	View       mgl64.Mat4
	Projection mgl64.Mat4
	Viewport   mgl64.Mat4
}

// Transform returns the bundle for an object with the given model matrix.
func (f Frame) Transform(model mgl64.Mat4) Transform {
	return Transform{Model: model, View: f.View, Projection: f.Projection, Viewport: f.Viewport}
}

// Renderer runs the pipeline for whole objects: transform, assembly,
// rasterization, shading and compositing into its Framebuffer.
type Renderer struct {
	Framebuffer *Framebuffer
	Rasterizer  *Rasterizer
	Shaders     *ShaderBank
	Wireframe   bool
	// Workers is the number of goroutines rasterizing one object.
	// Values below 2 render on the calling goroutine.
	Workers int
}

func NewRenderer(width, height int, seed int64) *Renderer {
	return &Renderer{
		Framebuffer: NewFramebuffer(width, height),
		Rasterizer:  NewRasterizer(width, height),
		Shaders:     NewShaderBank(seed),
		Workers:     runtime.NumCPU(),
	}
}

// Render clears the framebuffer and draws every object. Errors from
// individual objects are joined; the remaining objects are still drawn.
func (r *Renderer) Render(objects []*Object, frame Frame) error {
	r.Framebuffer.Clear()
	var errs []error
	for _, o := range objects {
		if err := r.DrawObject(o, frame); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DrawObject composites one object into the framebuffer. An invalid shader
// is reported and the object's fragments are composited unshaded.
func (r *Renderer) DrawObject(o *Object, frame Frame) error {
	var err error
	if !o.Shader.Valid() {
		err = fmt.Errorf("object %q: %w: %d", o.Name, ErrUnknownShader, int(o.Shader))
		Logger().Error("orrery: unknown shader, drawing unshaded", "object", o.Name, "shader", int(o.Shader), "frame", frame.Index)
	}

	vs := TransformVertices(o.Vertices, frame.Transform(o.Matrix))
	r.DrawTriangles(AssembleTriangles(vs), o.Shader)
	return err
}

// DrawTriangles rasterizes, shades and composites screen-space triangles.
func (r *Renderer) DrawTriangles(triangles []Triangle, shader ShaderType) {
	wn := r.Workers
	if wn < 2 || len(triangles) < 2*wn {
		for i := range triangles {
			r.DrawTriangle(triangles[i], shader)
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(wn)
	// Stripe triangles across workers; the framebuffer serializes
	// writers per cell.
	for wi := 0; wi < wn; wi++ {
		go func(wi int) {
			defer wg.Done()
			for i := wi; i < len(triangles); i += wn {
				r.DrawTriangle(triangles[i], shader)
			}
		}(wi)
	}
	wg.Wait()
}

func (r *Renderer) DrawTriangle(t Triangle, shader ShaderType) {
	if r.Wireframe {
		r.drawFragments(r.Rasterizer.Wireframe(t), shader)
		return
	}
	r.drawFragments(r.Rasterizer.Triangle(t), shader)
}

// DrawLine draws a single screen-space segment, for overlays.
func (r *Renderer) DrawLine(a, b Vertex, shader ShaderType) {
	r.drawFragments(r.Rasterizer.Line(a, b), shader)
}

func (r *Renderer) drawFragments(fragments iter.Seq[Fragment], shader ShaderType) {
	fb := r.Framebuffer
	for f := range fragments {
		// An unknown shader leaves f as it was; DrawObject reports it.
		f, _ = r.Shaders.Shade(shader, f)
		fb.Point(f)
	}
}
