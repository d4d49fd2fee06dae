package orrery

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const systemYAML = `
seed: 7
wireframe: true
background: "#102030"
light: [0, 0, 2]
camera:
  eye: [0, 1, 4]
bodies:
  - name: sun
    shader: sun
    spin_speed: 0.5
  - name: earth
    shader: earth
    parent: sun
    orbit_radius: 2
    orbit_speed: 1.5
    scale: 0.3
  - name: moon
    shader: rocky
    parent: earth
    orbit_radius: 0.5
    scale: 0.1
output:
  path: frames/%04d.png
  frames: 24
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(systemYAML))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 7 || !cfg.Wireframe || cfg.Output.Frames != 24 || cfg.Output.Path != "frames/%04d.png" {
		t.Errorf("top level %+v", cfg)
	}
	// Unset fields keep their defaults.
	def := DefaultConfig()
	if cfg.Camera.Eye != [3]float64{0, 1, 4} || cfg.Camera.FovY != def.Camera.FovY || cfg.Camera.Up != def.Camera.Up {
		t.Errorf("camera %+v", cfg.Camera)
	}
	if cfg.Output.Scale != 1 {
		t.Errorf("output scale %v", cfg.Output.Scale)
	}

	want := []struct {
		name   string
		shader ShaderType
		parent string
	}{
		{"sun", Sun, ""},
		{"earth", Earth, "sun"},
		{"moon", Rocky, "earth"},
	}
	if len(cfg.Bodies) != len(want) {
		t.Fatalf("got %d bodies", len(cfg.Bodies))
	}
	for i, w := range want {
		b := cfg.Bodies[i]
		if b.Name != w.name || b.Shader != w.shader || b.Parent != w.parent {
			t.Errorf("body %d = %+v", i, b)
		}
	}
	if cfg.Bodies[1].OrbitSpeed != 1.5 || cfg.Bodies[1].Scale != 0.3 {
		t.Errorf("earth kinematics %+v", cfg.Bodies[1])
	}
}

func TestParseConfigDefaultBodies(t *testing.T) {
	cfg, err := ParseConfig([]byte("seed: 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Bodies) != 2 || cfg.Bodies[0].Shader != Rocky || cfg.Bodies[1].Shader != Star {
		t.Errorf("bodies %+v", cfg.Bodies)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    string
		unknown bool
	}{
		{"unknown shader", "bodies:\n  - name: x\n    shader: pluto\n", "pluto", true},
		{"missing shader", "bodies:\n  - name: x\n", "body \"x\"", true},
		{"missing name", "bodies:\n  - shader: sun\n", "missing name", false},
		{"duplicate name", "bodies:\n  - {name: a, shader: sun}\n  - {name: a, shader: mars}\n", "duplicate", false},
		{"parent after child", "bodies:\n  - {name: a, shader: sun, parent: b}\n  - {name: b, shader: mars}\n", "not defined before", false},
		{"self parent", "bodies:\n  - {name: a, shader: sun, parent: a}\n", "not defined before", false},
		{"negative scale", "bodies:\n  - {name: a, shader: sun, scale: -1}\n", "negative scale", false},
		{"near far", "camera: {near: 10, far: 1}\n", "near < far", false},
		{"zero near", "camera: {near: 0}\n", "near < far", false},
		{"fovy", "camera: {fovy: 180}\n", "fovy", false},
		{"eye is target", "camera: {eye: [0, 0, 0]}\n", "coincide", false},
		{"simplify", "simplify: 1.5\n", "simplify", false},
		{"frames", "output: {frames: -2}\n", "frame count", false},
		{"syntax", "seed: [\n", "parse config", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tc.yaml))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want it to mention %q", err, tc.want)
			}
			if tc.unknown && !errors.Is(err, ErrUnknownShader) {
				t.Errorf("err = %v, want ErrUnknownShader", err)
			}
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Camera.Near = -1
	cfg.Simplify = -0.5
	cfg.Bodies[1].Name = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid config accepted")
	}
	for _, s := range []string{"near", "simplify", "missing name"} {
		if !strings.Contains(err.Error(), s) {
			t.Errorf("error %q does not mention %q", err, s)
		}
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system.yaml")
	if err := os.WriteFile(path, []byte(systemYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Bodies) != 3 {
		t.Errorf("got %d bodies", len(cfg.Bodies))
	}
	if _, err := LoadConfig(path + ".missing"); err == nil {
		t.Error("missing file loaded")
	}
}

func TestConfigBuild(t *testing.T) {
	cfg, err := ParseConfig([]byte(systemYAML))
	if err != nil {
		t.Fatal(err)
	}
	mesh := NewSphere(8, 4)
	s, err := cfg.Build(mesh, 80, 60)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Bodies) != 3 || len(s.Vertices) != 3*len(mesh.Faces) {
		t.Fatalf("%d bodies, %d vertices", len(s.Bodies), len(s.Vertices))
	}
	sun, earth, moon := s.Bodies[0], s.Bodies[1], s.Bodies[2]
	if earth.Parent != sun || moon.Parent != earth || sun.Parent != nil {
		t.Error("parents not linked")
	}
	if !vecNear(moon.Position(), mgl64.Vec3{2.5, 0, 0}, 1e-9) {
		t.Errorf("moon at %v", moon.Position())
	}
	if s.Camera.Eye != (mgl64.Vec3{0, 1, 4}) || s.Width != 80 || s.Height != 60 {
		t.Errorf("camera %+v size %dx%d", s.Camera, s.Width, s.Height)
	}
}

func TestConfigBuildBodyMesh(t *testing.T) {
	dir := t.TempDir()
	obj := filepath.Join(dir, "quad.obj")
	if err := os.WriteFile(obj, []byte(quadOBJ), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.Bodies[1].Mesh = obj
	s, err := cfg.Build(NewSphere(8, 4), 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	if s.Bodies[0].Vertices != nil || len(s.Bodies[1].Vertices) != 9 {
		t.Errorf("body vertices %d and %d", len(s.Bodies[0].Vertices), len(s.Bodies[1].Vertices))
	}

	cfg.Bodies[1].Mesh = filepath.Join(dir, "missing.obj")
	if _, err := cfg.Build(NewSphere(8, 4), 10, 10); err == nil || !strings.Contains(err.Error(), "companion") {
		t.Errorf("err = %v", err)
	}
}

func TestConfigBuildSimplify(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Simplify = 0.25
	mesh := NewSphere(32, 16)
	s, err := cfg.Build(mesh, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Vertices) == 0 || len(s.Vertices) >= 3*len(mesh.Faces) {
		t.Errorf("simplified to %d vertices from %d", len(s.Vertices), 3*len(mesh.Faces))
	}
}

func TestConfigBuildEmptyMesh(t *testing.T) {
	if _, err := DefaultConfig().Build(&Mesh{}, 10, 10); err == nil {
		t.Error("built a scene from an empty mesh")
	}
}

func TestConfigNewRenderer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Background = "#ff0000"
	cfg.Light = [3]float64{0, 3, 4}
	cfg.Wireframe = true
	r := cfg.NewRenderer(4, 3)
	if r.Framebuffer.Background() != RGB(1, 0, 0) || r.Framebuffer.Cell(2, 2).Color != RGB(1, 0, 0) {
		t.Errorf("background %v", r.Framebuffer.Background())
	}
	if l := r.Rasterizer.Light(); math.Abs(l[1]-0.6) > 1e-12 || math.Abs(l[2]-0.8) > 1e-12 {
		t.Errorf("light %v", l)
	}
	if !r.Wireframe || r.Framebuffer.Width() != 4 || r.Framebuffer.Height() != 3 {
		t.Errorf("renderer %+v", r)
	}

	cfg.Light = [3]float64{}
	if l := cfg.NewRenderer(1, 1).Rasterizer.Light(); l != DefaultLight {
		t.Errorf("zero light gave %v", l)
	}
}

func TestExampleScene(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("scenes", "solar.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	s, err := cfg.Build(NewSphere(8, 4), 32, 24)
	if err != nil {
		t.Fatal(err)
	}
	var ring *Body
	for _, b := range s.Bodies {
		if b.Name == "neptune-ring" {
			ring = b
		}
	}
	if ring == nil || len(ring.Vertices) == 0 || ring.Parent == nil || ring.Parent.Name != "neptune" {
		t.Fatalf("ring body %+v", ring)
	}
	if err := s.Draw(cfg.NewRenderer(32, 24)); err != nil {
		t.Fatal(err)
	}
}
