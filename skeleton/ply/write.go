package ply

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ibujah/eroth/skeleton"
)

// WriteSkeleton writes skel as an ASCII PLY file: vertex x/y/z, an
// erosion_thickness float property (zero-filled if the skeleton carries
// no such property yet), an optional red/green/blue triple when
// skel.VertexColor has been computed, and a triangular face list.
func WriteSkeleton(w io.Writer, skel *skeleton.Skeleton) error {
	bw := bufio.NewWriter(w)

	et, ok := skel.VertexProperty("erosion_thickness")
	if !ok {
		et = make([]float32, skel.VertexCount())
	}
	r, g, b, hasColor := skel.VertexColor()

	fmt.Fprintln(bw, "ply")
	fmt.Fprintln(bw, "format ascii 1.0")
	fmt.Fprintf(bw, "element vertex %d\n", skel.VertexCount())
	fmt.Fprintln(bw, "property float x")
	fmt.Fprintln(bw, "property float y")
	fmt.Fprintln(bw, "property float z")
	fmt.Fprintln(bw, "property float radius")
	fmt.Fprintln(bw, "property float erosion_thickness")
	if hasColor {
		fmt.Fprintln(bw, "property uchar red")
		fmt.Fprintln(bw, "property uchar green")
		fmt.Fprintln(bw, "property uchar blue")
	}
	fmt.Fprintf(bw, "element face %d\n", skel.FaceCount())
	fmt.Fprintln(bw, "property list uchar int vertex_indices")
	fmt.Fprintln(bw, "end_header")

	radii := skel.Radii()
	for i, pos := range skel.Vertices() {
		if hasColor {
			fmt.Fprintf(bw, "%g %g %g %g %g %d %d %d\n",
				pos[0], pos[1], pos[2], radii[i], et[i], r[i], g[i], b[i])
		} else {
			fmt.Fprintf(bw, "%g %g %g %g %g\n", pos[0], pos[1], pos[2], radii[i], et[i])
		}
	}

	for i := 0; i < skel.FaceCount(); i++ {
		face, err := skel.Face(i)
		if err != nil {
			return err
		}
		verts, err := faceVertices(skel, face)
		if err != nil {
			return err
		}
		fmt.Fprintf(bw, "3 %d %d %d\n", verts[0], verts[1], verts[2])
	}

	return bw.Flush()
}

// faceVertices recovers the three distinct vertex indices of a face, in
// the winding order implied by its edge cycle.
func faceVertices(skel *skeleton.Skeleton, face skeleton.Face) ([3]int, error) {
	e0, err := skel.Edge(face[0])
	if err != nil {
		return [3]int{}, err
	}
	e1, err := skel.Edge(face[1])
	if err != nil {
		return [3]int{}, err
	}
	a, bv := e0[0], e0[1]
	var c int
	switch {
	case e1[0] == bv:
		c = e1[1]
	case e1[1] == bv:
		c = e1[0]
	case e1[0] == a:
		a, bv = bv, a
		c = e1[1]
	default:
		c = e1[0]
	}
	return [3]int{a, bv, c}, nil
}

// ErosionNode is one vertex of an erosion-path export: its position and
// the burn time (or erosion thickness; callers choose the scalar)
// assigned to it.
type ErosionNode struct {
	Pos  skeleton.Vec3
	Time float32
}

// WriteErosionPath writes the predecessor tree produced by the erosion
// algorithm as an ASCII PLY file: vertex x/y/z/burntime (+ optional
// color), and edge vertex1/vertex2 pairs for each predecessor link.
func WriteErosionPath(w io.Writer, nodes []ErosionNode, edges [][2]int, red, green, blue []uint8) error {
	bw := bufio.NewWriter(w)
	hasColor := len(red) == len(nodes) && len(nodes) > 0

	fmt.Fprintln(bw, "ply")
	fmt.Fprintln(bw, "format ascii 1.0")
	fmt.Fprintf(bw, "element vertex %d\n", len(nodes))
	fmt.Fprintln(bw, "property float x")
	fmt.Fprintln(bw, "property float y")
	fmt.Fprintln(bw, "property float z")
	fmt.Fprintln(bw, "property float burntime")
	if hasColor {
		fmt.Fprintln(bw, "property uchar red")
		fmt.Fprintln(bw, "property uchar green")
		fmt.Fprintln(bw, "property uchar blue")
	}
	fmt.Fprintf(bw, "element edge %d\n", len(edges))
	fmt.Fprintln(bw, "property int vertex1")
	fmt.Fprintln(bw, "property int vertex2")
	fmt.Fprintln(bw, "end_header")

	for i, n := range nodes {
		if hasColor {
			fmt.Fprintf(bw, "%g %g %g %g %d %d %d\n",
				n.Pos[0], n.Pos[1], n.Pos[2], n.Time, red[i], green[i], blue[i])
		} else {
			fmt.Fprintf(bw, "%g %g %g %g\n", n.Pos[0], n.Pos[1], n.Pos[2], n.Time)
		}
	}
	for _, e := range edges {
		fmt.Fprintf(bw, "%d %d\n", e[0], e[1])
	}

	return bw.Flush()
}
