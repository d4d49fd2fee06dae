package orrery

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Object is one drawable: a flat stride-3 vertex buffer, the model matrix
// for the current frame and the shader its fragments run through.
type Object struct {
	Name     string
	Vertices []Vertex
	Matrix   mgl64.Mat4
	Shader   ShaderType
}

func NewObject(vertices []Vertex, shader ShaderType) *Object {
	return &Object{Vertices: vertices, Matrix: mgl64.Ident4(), Shader: shader}
}

func NewObjectFromMesh(mesh *Mesh, shader ShaderType) *Object {
	return NewObject(mesh.VertexBuffer(), shader)
}

// NewObjectFromFile loads an OBJ or glTF file.
func NewObjectFromFile(path string, shader ShaderType) (*Object, error) {
	mesh, err := LoadMesh(path)
	if err != nil {
		return nil, err
	}
	o := NewObjectFromMesh(mesh, shader)
	o.Name = path
	return o, nil
}

// Triangles returns the number of whole triangles in the vertex buffer.
func (o *Object) Triangles() int {
	return len(o.Vertices) / 3
}

// LoadOBJFromURL fetches and decodes an OBJ file over HTTP.
func LoadOBJFromURL(url string) (*Mesh, error) {
	client := http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("orrery: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("orrery: fetch %s: %s", url, resp.Status)
	}
	return LoadOBJFromReader(resp.Body)
}
