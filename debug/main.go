package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/netisu/orrery"
)

func main() {
	simplify := flag.Float64("simplify", 0, "Decimate to this face ratio before reporting (0 = off).")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("usage: debug [-simplify ratio] mesh.{obj,gltf,glb}")
	}
	path := flag.Arg(0)

	fmt.Println("--- STARTING DEBUG ---")
	mesh, err := orrery.LoadMesh(path)
	if err != nil {
		log.Fatal(err)
	}
	if *simplify > 0 && *simplify < 1 {
		before := len(mesh.Faces)
		mesh = mesh.Simplify(*simplify)
		fmt.Printf("Simplified: %d -> %d faces\n", before, len(mesh.Faces))
	}

	box := mesh.BoundingBox()
	fmt.Printf("--- MESH STATS ---\n")
	fmt.Printf("Positions: %d  Normals: %d  Texcoords: %d\n", len(mesh.Positions), len(mesh.Normals), len(mesh.Texcoords))
	fmt.Printf("Triangles: %d\n", len(mesh.Faces))
	fmt.Printf("Bounding Box Min: %v\n", box.Min)
	fmt.Printf("Bounding Box Max: %v\n", box.Max)
	fmt.Printf("Bounding Box Center: %v\n", box.Center())

	// The sphere-mapped shaders expect geometry around a unit sphere.
	size := box.Size()
	extent := max(size[0], size[1], size[2]) / 2
	if extent < 0.5 || extent > 2 {
		fmt.Printf("Mesh extent %.2f is far from unit size; scale it for planet shaders\n", extent)
	} else {
		fmt.Printf("Mesh extent %.2f fits the planet shaders\n", extent)
	}
}
