package orrery

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

func LoadOBJ(path string) (*Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	mesh, err := LoadOBJFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("orrery: %s: %w", path, err)
	}
	return mesh, nil
}

func LoadOBJFromBytes(b []byte) (*Mesh, error) {
	return LoadOBJFromReader(bytes.NewReader(b))
}

// LoadOBJFromReader decodes v, vt, vn and f records. Indices are converted
// from 1-based (or negative, relative) to 0-based, and polygons are fan
// triangulated. Other records are ignored.
func LoadOBJFromReader(r io.Reader) (*Mesh, error) {
	mesh := &Mesh{
		Positions: make([]mgl64.Vec3, 0, 1024),
		Normals:   make([]mgl64.Vec3, 0, 1024),
		Texcoords: make([]mgl64.Vec3, 0, 1024),
	}
	scanner := bufio.NewScanner(r)

	for lineno := 1; scanner.Scan(); lineno++ {
		line := scanner.Text()
		if len(line) < 2 || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		args := fields[1:]

		switch fields[0] {
		case "v":
			v, err := parseVector(args, 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineno, err)
			}
			mesh.Positions = append(mesh.Positions, v)
		case "vt":
			v, err := parseVector(args, 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineno, err)
			}
			mesh.Texcoords = append(mesh.Texcoords, v)
		case "vn":
			v, err := parseVector(args, 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineno, err)
			}
			mesh.Normals = append(mesh.Normals, v)
		case "f":
			if len(args) < 3 {
				return nil, fmt.Errorf("line %d: face needs 3 vertices, got %d", lineno, len(args))
			}
			fvs := make([]int, len(args))
			fvts := make([]int, len(args))
			fvns := make([]int, len(args))

			for i, arg := range args {
				vertex := strings.Split(arg+"//", "/")
				var err error
				if fvs[i], err = fixIndex(vertex[0], len(mesh.Positions)); err != nil || fvs[i] < 0 {
					return nil, fmt.Errorf("line %d: bad position index %q", lineno, vertex[0])
				}
				if fvts[i], err = fixIndex(vertex[1], len(mesh.Texcoords)); err != nil {
					return nil, fmt.Errorf("line %d: bad texcoord index %q", lineno, vertex[1])
				}
				if fvns[i], err = fixIndex(vertex[2], len(mesh.Normals)); err != nil {
					return nil, fmt.Errorf("line %d: bad normal index %q", lineno, vertex[2])
				}
			}

			for i := 1; i < len(fvs)-1; i++ {
				i1, i2, i3 := 0, i, i+1
				face := Face{
					V: [3]int{fvs[i1], fvs[i2], fvs[i3]},
					T: [3]int{fvts[i1], fvts[i2], fvts[i3]},
					N: [3]int{fvns[i1], fvns[i2], fvns[i3]},
				}
				// Attributes are used per face or not at all.
				if face.T[0] < 0 || face.T[1] < 0 || face.T[2] < 0 {
					face.T = [3]int{-1, -1, -1}
				}
				if face.N[0] < 0 || face.N[1] < 0 || face.N[2] < 0 {
					face.N = [3]int{-1, -1, -1}
				}
				mesh.Faces = append(mesh.Faces, face)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return mesh, nil
}

// parseVector reads at least n floats; missing trailing components are
// zero for texcoords.
func parseVector(args []string, n int) (mgl64.Vec3, error) {
	var v mgl64.Vec3
	if len(args) < n {
		return v, fmt.Errorf("expected %d components, got %d", n, len(args))
	}
	for i := 0; i < len(args) && i < 3; i++ {
		f, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}

// fixIndex turns an OBJ index into a 0-based one. Empty means absent (-1);
// negative values count back from the current end of the array.
func fixIndex(value string, length int) (int, error) {
	if value == "" {
		return -1, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	var i int
	switch {
	case parsed > 0:
		i = parsed - 1
	case parsed < 0:
		i = length + parsed
	default:
		return 0, fmt.Errorf("index 0")
	}
	if i < 0 || i >= length {
		return 0, fmt.Errorf("index %d out of range [1, %d]", parsed, length)
	}
	return i, nil
}
