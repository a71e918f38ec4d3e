package ply_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibujah/eroth/skeleton"
	"github.com/ibujah/eroth/skeleton/ply"
)

const singleTriangleASCII = `ply
format ascii 1.0
element vertex 3
property float x
property float y
property float z
property float radius
element face 1
property list uchar int vertex_indices
end_header
0 0 0 0.1
1 0 0 0.2
0 1 0 -1
3 0 1 2
`

func TestReadSkeletonASCII(t *testing.T) {
	skel, err := ply.ReadSkeleton(strings.NewReader(singleTriangleASCII))
	require.NoError(t, err)

	assert.Equal(t, 3, skel.VertexCount())
	assert.Equal(t, 3, skel.EdgeCount())
	assert.Equal(t, 1, skel.FaceCount())

	_, rad, err := skel.Vertex(2)
	require.NoError(t, err)
	assert.Equal(t, float32(-1), rad)
}

func TestReadSkeletonRejectsMissingMagic(t *testing.T) {
	_, err := ply.ReadSkeleton(strings.NewReader("not ply\n"))
	assert.ErrorIs(t, err, ply.ErrNotPLY)
}

func TestReadSkeletonRejectsNonTriangularFace(t *testing.T) {
	src := `ply
format ascii 1.0
element vertex 4
property float x
property float y
property float z
property float radius
element face 1
property list uchar int vertex_indices
end_header
0 0 0 0.1
1 0 0 0.1
0 1 0 0.1
1 1 0 0.1
4 0 1 2 3
`
	_, err := ply.ReadSkeleton(strings.NewReader(src))
	assert.ErrorIs(t, err, ply.ErrNonTriangularFace)
}

func TestReadSkeletonPreservesExtraProperty(t *testing.T) {
	src := `ply
format ascii 1.0
element vertex 3
property float x
property float y
property float z
property float radius
property float confidence
element face 1
property list uchar int vertex_indices
end_header
0 0 0 0.1 0.5
1 0 0 0.1 0.7
0 1 0 0.1 0.9
3 0 1 2
`
	skel, err := ply.ReadSkeleton(strings.NewReader(src))
	require.NoError(t, err)

	vals, ok := skel.VertexProperty("confidence")
	require.True(t, ok)
	assert.Equal(t, []float32{0.5, 0.7, 0.9}, vals)
}

func TestWriteSkeletonRoundTripsVertexAndFaceCounts(t *testing.T) {
	skel := skeleton.New()
	v0 := skel.AddVertex(skeleton.Vec3{0, 0, 0}, 0.1)
	v1 := skel.AddVertex(skeleton.Vec3{1, 0, 0}, 0.2)
	v2 := skel.AddVertex(skeleton.Vec3{0, 1, 0}, 0.1)
	e0 := skel.AddEdge(v0, v1)
	e1 := skel.AddEdge(v1, v2)
	e2 := skel.AddEdge(v2, v0)
	_, err := skel.AddFace(e0, e1, e2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ply.WriteSkeleton(&buf, skel))

	back, err := ply.ReadSkeleton(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, skel.VertexCount(), back.VertexCount())
	assert.Equal(t, skel.FaceCount(), back.FaceCount())
}

func TestWriteErosionPathProducesParsableHeader(t *testing.T) {
	nodes := []ply.ErosionNode{
		{Pos: skeleton.Vec3{0, 0, 0}, Time: 0},
		{Pos: skeleton.Vec3{1, 0, 0}, Time: 0.5},
	}
	var buf bytes.Buffer
	require.NoError(t, ply.WriteErosionPath(&buf, nodes, [][2]int{{0, 1}}, nil, nil, nil))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "ply\n"))
	assert.Contains(t, out, "element vertex 2")
	assert.Contains(t, out, "element edge 1")
	assert.Contains(t, out, "property float burntime")
}
