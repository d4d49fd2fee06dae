package orrery

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// Config describes a scene file.
type Config struct {
	// Mesh is an OBJ or glTF path; empty selects the built-in sphere and
	// "ring" the built-in ring.
	Mesh       string       `yaml:"mesh"`
	Simplify   float64      `yaml:"simplify"` // face ratio in (0, 1); 0 disables
	Seed       int64        `yaml:"seed"`
	Wireframe  bool         `yaml:"wireframe"`
	Background string       `yaml:"background"`
	Light      [3]float64   `yaml:"light"`
	Camera     CameraConfig `yaml:"camera"`
	Bodies     []BodyConfig `yaml:"bodies"`
	Output     OutputConfig `yaml:"output"`
}

type CameraConfig struct {
	Eye    [3]float64 `yaml:"eye"`
	Target [3]float64 `yaml:"target"`
	Up     [3]float64 `yaml:"up"`
	FovY   float64    `yaml:"fovy"`
	Near   float64    `yaml:"near"`
	Far    float64    `yaml:"far"`
}

type BodyConfig struct {
	Name        string     `yaml:"name"`
	Shader      ShaderType `yaml:"shader"`
	Parent      string     `yaml:"parent"`
	Mesh        string     `yaml:"mesh"`
	Scale       float64    `yaml:"scale"`
	OrbitRadius float64    `yaml:"orbit_radius"`
	OrbitSpeed  float64    `yaml:"orbit_speed"`
	SpinSpeed   float64    `yaml:"spin_speed"`
	Orbit       float64    `yaml:"orbit"`
	Spin        float64    `yaml:"spin"`
}

type OutputConfig struct {
	// Path is a file name or a fmt pattern with one integer verb, e.g.
	// "frames/%04d.png", used when more than one frame is written.
	Path   string  `yaml:"path"`
	Frames int     `yaml:"frames"`
	Scale  float64 `yaml:"scale"`
}

// DefaultConfig matches DefaultScene on the built-in sphere.
func DefaultConfig() Config {
	cam := DefaultCamera()
	return Config{
		Seed:       1337,
		Background: "000000",
		Light:      [3]float64(DefaultLight),
		Camera: CameraConfig{
			Eye:    [3]float64(cam.Eye),
			Target: [3]float64(cam.Target),
			Up:     [3]float64(cam.Up),
			FovY:   cam.FovY,
			Near:   cam.Near,
			Far:    cam.Far,
		},
		Bodies: []BodyConfig{
			{Name: "primary", Shader: Rocky, Scale: 1, Spin: 45, SpinSpeed: 1},
			{Name: "companion", Shader: Star, Parent: "primary", Scale: 0.2, OrbitRadius: 1.5, Orbit: 45, OrbitSpeed: 1, SpinSpeed: 1},
		},
		Output: OutputConfig{Path: "out.png", Frames: 1, Scale: 1},
	}
}

// LoadConfig reads a YAML scene file. Fields missing from the file keep
// their DefaultConfig values; a bodies list replaces the default bodies.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	cfg.Bodies = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("orrery: parse config: %w", err)
	}
	if cfg.Bodies == nil {
		cfg.Bodies = DefaultConfig().Bodies
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem found, joined.
func (c Config) Validate() error {
	var errs []error
	cam := c.Camera
	if cam.Near <= 0 || cam.Far <= cam.Near {
		errs = append(errs, fmt.Errorf("camera: need 0 < near < far, got near=%v far=%v", cam.Near, cam.Far))
	}
	if cam.FovY <= 0 || cam.FovY >= 180 {
		errs = append(errs, fmt.Errorf("camera: fovy %v out of range (0, 180)", cam.FovY))
	}
	if mgl64.Vec3(cam.Eye) == mgl64.Vec3(cam.Target) {
		errs = append(errs, errors.New("camera: eye and target coincide"))
	}
	if c.Simplify < 0 || c.Simplify > 1 {
		errs = append(errs, fmt.Errorf("simplify %v out of range [0, 1]", c.Simplify))
	}
	if c.Output.Frames < 0 {
		errs = append(errs, fmt.Errorf("output: negative frame count %d", c.Output.Frames))
	}
	if c.Output.Scale < 0 {
		errs = append(errs, fmt.Errorf("output: negative scale %v", c.Output.Scale))
	}
	if len(c.Bodies) == 0 {
		errs = append(errs, errors.New("no bodies"))
	}

	seen := make(map[string]bool)
	for i, b := range c.Bodies {
		if b.Name == "" {
			errs = append(errs, fmt.Errorf("body %d: missing name", i))
		} else if seen[b.Name] {
			errs = append(errs, fmt.Errorf("body %q: duplicate name", b.Name))
		}
		if !b.Shader.Valid() {
			errs = append(errs, fmt.Errorf("body %q: %w", b.Name, ErrUnknownShader))
		}
		if b.Scale < 0 {
			errs = append(errs, fmt.Errorf("body %q: negative scale", b.Name))
		}
		// Parents must come first, which also rules out cycles.
		if b.Parent != "" && !seen[b.Parent] {
			errs = append(errs, fmt.Errorf("body %q: parent %q not defined before it", b.Name, b.Parent))
		}
		seen[b.Name] = true
	}
	if len(errs) > 0 {
		return fmt.Errorf("orrery: invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// CameraValue converts the camera section.
func (c Config) CameraValue() Camera {
	return Camera{
		Eye:    mgl64.Vec3(c.Camera.Eye),
		Target: mgl64.Vec3(c.Camera.Target),
		Up:     mgl64.Vec3(c.Camera.Up),
		FovY:   c.Camera.FovY,
		Near:   c.Camera.Near,
		Far:    c.Camera.Far,
	}
}

// NewRenderer builds a renderer with the config's seed, light and
// background.
func (c Config) NewRenderer(width, height int) *Renderer {
	r := NewRenderer(width, height, c.Seed)
	r.Wireframe = c.Wireframe
	if l := mgl64.Vec3(c.Light); l.Len() > 0 {
		r.Rasterizer.SetLight(l)
	}
	if c.Background != "" {
		r.Framebuffer.ClearWith(HexColor(c.Background))
	}
	return r
}

// Build creates the scene. mesh is the shared mesh for bodies without
// their own; a nil mesh is loaded from c.Mesh.
func (c Config) Build(mesh *Mesh, width, height int) (*Scene, error) {
	if mesh == nil {
		var err error
		if mesh, err = loadMeshOrSphere(c.Mesh); err != nil {
			return nil, err
		}
	}
	vertices, err := c.vertices(mesh)
	if err != nil {
		return nil, err
	}

	s := NewScene(c.CameraValue(), vertices, width, height)
	bodies := make(map[string]*Body)
	for _, bc := range c.Bodies {
		b := &Body{
			Name:        bc.Name,
			Shader:      bc.Shader,
			Scale:       bc.Scale,
			OrbitRadius: bc.OrbitRadius,
			OrbitSpeed:  bc.OrbitSpeed,
			SpinSpeed:   bc.SpinSpeed,
			Orbit:       bc.Orbit,
			Spin:        bc.Spin,
			Parent:      bodies[bc.Parent],
		}
		if bc.Mesh != "" {
			m, err := loadMeshOrSphere(bc.Mesh)
			if err != nil {
				return nil, fmt.Errorf("orrery: body %q: %w", bc.Name, err)
			}
			if b.Vertices, err = c.vertices(m); err != nil {
				return nil, err
			}
		}
		bodies[bc.Name] = b
		s.AddBody(b)
	}
	return s, nil
}

func (c Config) vertices(m *Mesh) ([]Vertex, error) {
	if c.Simplify > 0 && c.Simplify < 1 {
		before := len(m.Faces)
		m = m.Simplify(c.Simplify)
		Logger().Debug("orrery: simplified mesh", "faces", before, "remaining", len(m.Faces))
	}
	if len(m.Faces) == 0 {
		return nil, errors.New("orrery: mesh has no faces")
	}
	return m.VertexBuffer(), nil
}

const (
	sphereSegments = 64
	sphereRings    = 32

	// RingMesh names the built-in ring in a mesh field.
	RingMesh = "ring"
)

func loadMeshOrSphere(path string) (*Mesh, error) {
	switch path {
	case "":
		return NewSphere(sphereSegments, sphereRings), nil
	case RingMesh:
		// Inset so every chord stays inside the shaded ring volume.
		return NewRing(RingInnerRadius*1.01, RingOuterRadius*0.99, sphereSegments), nil
	}
	return LoadMesh(path)
}
