package orrery

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF loads every triangle primitive of a .gltf or .glb file into one
// Mesh. Node transforms are not applied.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("orrery: gltf open %q: %w", path, err)
	}

	mesh := &Mesh{}
	for mi, m := range doc.Meshes {
		for pi, primitive := range m.Primitives {
			if primitive.Mode != gltf.PrimitiveTriangles {
				Logger().Warn("orrery: skipping non-triangle primitive", "mesh", mi, "primitive", pi, "mode", primitive.Mode)
				continue
			}
			if err := appendPrimitive(mesh, doc, primitive); err != nil {
				return nil, fmt.Errorf("orrery: %s: mesh %d primitive %d: %w", path, mi, pi, err)
			}
		}
	}

	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("orrery: no triangles found in %s", path)
	}
	return mesh, nil
}

func appendPrimitive(mesh *Mesh, doc *gltf.Document, primitive *gltf.Primitive) error {
	posIdx, ok := primitive.Attributes[gltf.POSITION]
	if !ok {
		return fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if normIdx, ok := primitive.Attributes[gltf.NORMAL]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
	}
	var texCoords [][2]float32
	if texIdx, ok := primitive.Attributes[gltf.TEXCOORD_0]; ok {
		texCoords, _ = modeler.ReadTextureCoord(doc, doc.Accessors[texIdx], nil)
	}

	var indices []uint32
	if primitive.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*primitive.Indices], nil)
		if err != nil {
			return fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for k := range indices {
			indices[k] = uint32(k)
		}
	}

	base := len(mesh.Positions)
	hasNormals := len(normals) == len(positions)
	hasTex := len(texCoords) == len(positions)
	for _, p := range positions {
		mesh.Positions = append(mesh.Positions, mgl64.Vec3{float64(p[0]), float64(p[1]), float64(p[2])})
	}
	nbase := len(mesh.Normals)
	if hasNormals {
		for _, n := range normals {
			mesh.Normals = append(mesh.Normals, mgl64.Vec3{float64(n[0]), float64(n[1]), float64(n[2])})
		}
	}
	tbase := len(mesh.Texcoords)
	if hasTex {
		for _, t := range texCoords {
			mesh.Texcoords = append(mesh.Texcoords, mgl64.Vec3{float64(t[0]), float64(t[1]), 0})
		}
	}

	for i := 0; i+2 < len(indices); i += 3 {
		face := Face{T: [3]int{-1, -1, -1}, N: [3]int{-1, -1, -1}}
		for k := 0; k < 3; k++ {
			idx := int(indices[i+k])
			if idx >= len(positions) {
				return fmt.Errorf("index %d out of range", idx)
			}
			face.V[k] = base + idx
			if hasNormals {
				face.N[k] = nbase + idx
			}
			if hasTex {
				face.T[k] = tbase + idx
			}
		}
		mesh.Faces = append(mesh.Faces, face)
	}
	return nil
}

// LoadMesh picks a loader by file extension.
func LoadMesh(path string) (*Mesh, error) {
	switch ext := lowerExt(path); ext {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("orrery: unsupported mesh format %q", ext)
	}
}
