package orrery

// Triangle is three screen-space vertices in submission order.
type Triangle struct {
	V1, V2, V3 Vertex
}

// AssembleTriangles groups a flat vertex stream into triangles, three
// consecutive vertices each. A trailing incomplete group is dropped.
// Degenerate triangles are passed through.
func AssembleTriangles(vs []Vertex) []Triangle {
	triangles := make([]Triangle, len(vs)/3)
	for i := range triangles {
		triangles[i] = Triangle{vs[3*i], vs[3*i+1], vs[3*i+2]}
	}
	return triangles
}
