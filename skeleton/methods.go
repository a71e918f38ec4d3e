// Package skeleton: method implementations for incremental construction
// and read access. Mutators take the write lock for the concern they
// touch; accessors return copies so callers never alias internal slices.
package skeleton

import "sort"

// canon returns the canonical (min, max) key used to dedupe undirected
// edges via edgeIndex, keeping AddEdge O(1) instead of scanning the
// vertex's incident edges.
func canon(a, b int) [2]int {
	if a <= b {
		return [2]int{a, b}
	}
	return [2]int{b, a}
}

// AddVertex appends a vertex at pos with the given radius and returns its
// index. A radius < 0 is stored as-is and is interpreted downstream as
// "unknown radius" (UnknownRadius is the canonical spelling, but any
// negative value behaves identically).
//
// Complexity: O(1) amortized.
func (s *Skeleton) AddVertex(pos Vec3, radius float32) int {
	s.muVert.Lock()
	defer s.muVert.Unlock()

	s.vertices = append(s.vertices, pos)
	s.radii = append(s.radii, radius)
	return len(s.vertices) - 1
}

// AddEdge inserts the undirected edge {v1, v2} if it does not already
// exist, returning its index either way. v1 == v2 is accepted as a
// degenerate zero-length edge; the burn-graph builder keeps it as a
// single unsubdivided segment.
//
// Complexity: O(1) amortized.
func (s *Skeleton) AddEdge(v1, v2 int) int {
	s.muTopo.Lock()
	defer s.muTopo.Unlock()

	key := canon(v1, v2)
	if idx, ok := s.edgeIndex[key]; ok {
		return idx
	}

	idx := len(s.edges)
	s.edges = append(s.edges, Edge{v1, v2})
	s.edgeIndex[key] = idx
	s.vertexToEdges[v1] = append(s.vertexToEdges[v1], idx)
	if v2 != v1 {
		s.vertexToEdges[v2] = append(s.vertexToEdges[v2], idx)
	}
	return idx
}

// AddFace appends a triangular face given as three edge indices forming a
// closed cycle. It validates that no edge is a loop and that the three
// edges reference exactly three distinct vertices, each shared by exactly
// two of the edges, before recording the face in the edge->faces index.
//
// Complexity: O(1).
func (s *Skeleton) AddFace(e1, e2, e3 int) (int, error) {
	s.muTopo.Lock()
	defer s.muTopo.Unlock()

	edgeIdx := [3]int{e1, e2, e3}
	for _, e := range edgeIdx {
		if e < 0 || e >= len(s.edges) {
			return -1, ErrEdgeNotFound
		}
	}

	verts := make(map[int]int, 3)
	for _, e := range edgeIdx {
		edge := s.edges[e]
		if edge[0] == edge[1] {
			return -1, ErrFaceNotClosed
		}
		verts[edge[0]]++
		verts[edge[1]]++
	}
	if len(verts) != 3 {
		return -1, ErrFaceNotClosed
	}
	for _, n := range verts {
		if n != 2 {
			return -1, ErrFaceNotClosed
		}
	}

	idx := len(s.faces)
	s.faces = append(s.faces, Face{e1, e2, e3})
	for _, e := range edgeIdx {
		s.edgeToFaces[e] = append(s.edgeToFaces[e], idx)
	}
	return idx, nil
}

// VertexCount returns the number of vertices. Complexity: O(1).
func (s *Skeleton) VertexCount() int {
	s.muVert.RLock()
	defer s.muVert.RUnlock()
	return len(s.vertices)
}

// EdgeCount returns the number of deduplicated edges. Complexity: O(1).
func (s *Skeleton) EdgeCount() int {
	s.muTopo.RLock()
	defer s.muTopo.RUnlock()
	return len(s.edges)
}

// FaceCount returns the number of faces. Complexity: O(1).
func (s *Skeleton) FaceCount() int {
	s.muTopo.RLock()
	defer s.muTopo.RUnlock()
	return len(s.faces)
}

// Vertex returns the position and radius of vertex i.
func (s *Skeleton) Vertex(i int) (Vec3, float32, error) {
	s.muVert.RLock()
	defer s.muVert.RUnlock()
	if i < 0 || i >= len(s.vertices) {
		return Vec3{}, 0, ErrVertexNotFound
	}
	return s.vertices[i], s.radii[i], nil
}

// Vertices returns a copy of all vertex positions, in insertion order.
func (s *Skeleton) Vertices() []Vec3 {
	s.muVert.RLock()
	defer s.muVert.RUnlock()
	out := make([]Vec3, len(s.vertices))
	copy(out, s.vertices)
	return out
}

// Radii returns a copy of all vertex radii, in insertion order.
func (s *Skeleton) Radii() []float32 {
	s.muVert.RLock()
	defer s.muVert.RUnlock()
	out := make([]float32, len(s.radii))
	copy(out, s.radii)
	return out
}

// Edge returns the vertex-index pair for edge i.
func (s *Skeleton) Edge(i int) (Edge, error) {
	s.muTopo.RLock()
	defer s.muTopo.RUnlock()
	if i < 0 || i >= len(s.edges) {
		return Edge{}, ErrEdgeNotFound
	}
	return s.edges[i], nil
}

// Edges returns a copy of all edges, in insertion order.
func (s *Skeleton) Edges() []Edge {
	s.muTopo.RLock()
	defer s.muTopo.RUnlock()
	out := make([]Edge, len(s.edges))
	copy(out, s.edges)
	return out
}

// Face returns the edge-index triple for face i.
func (s *Skeleton) Face(i int) (Face, error) {
	s.muTopo.RLock()
	defer s.muTopo.RUnlock()
	if i < 0 || i >= len(s.faces) {
		return Face{}, ErrFaceNotFound
	}
	return s.faces[i], nil
}

// Faces returns a copy of all faces, in insertion order.
func (s *Skeleton) Faces() []Face {
	s.muTopo.RLock()
	defer s.muTopo.RUnlock()
	out := make([]Face, len(s.faces))
	copy(out, s.faces)
	return out
}

// EdgesFromVertex returns the (sorted, deduplicated) indexes of edges
// incident to vertex v, or nil if v has no recorded edges.
func (s *Skeleton) EdgesFromVertex(v int) []int {
	s.muTopo.RLock()
	defer s.muTopo.RUnlock()
	src := s.vertexToEdges[v]
	if len(src) == 0 {
		return nil
	}
	out := make([]int, len(src))
	copy(out, src)
	sort.Ints(out)
	return out
}

// FacesFromEdge returns the indexes of faces incident to edge e, or nil
// if e borders no face yet.
func (s *Skeleton) FacesFromEdge(e int) []int {
	s.muTopo.RLock()
	defer s.muTopo.RUnlock()
	src := s.edgeToFaces[e]
	if len(src) == 0 {
		return nil
	}
	out := make([]int, len(src))
	copy(out, src)
	return out
}
