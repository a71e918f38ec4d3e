package ply

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ibujah/eroth/skeleton"
)

// ReadSkeleton parses a PLY mesh (ASCII or binary little-endian) from r
// into a new skeleton.Skeleton.
//
// Required: a vertex element with float x/y/z/radius; a face element
// with a list property named "vertex_indices" or "vertex_index"
// (signed or unsigned item type), triangles only. Any other declared
// vertex properties are preserved as opaque named float properties
// (non-float columns are coerced to float32); face properties are
// ignored.
func ReadSkeleton(r io.Reader) (*skeleton.Skeleton, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	h, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	vertexEl := findElement(h, "vertex")
	if vertexEl == nil {
		return nil, fmt.Errorf("%w: vertex", ErrMissingElement)
	}
	faceEl := findElement(h, "face")
	if faceEl == nil {
		return nil, fmt.Errorf("%w: face", ErrMissingElement)
	}

	xi, yi, zi, ri := vertexEl.indexOf("x"), vertexEl.indexOf("y"), vertexEl.indexOf("z"), vertexEl.indexOf("radius")
	if xi < 0 || yi < 0 || zi < 0 || ri < 0 {
		return nil, fmt.Errorf("%w: vertex x/y/z/radius", ErrMissingProperty)
	}

	faceListIdx := -1
	for i, p := range faceEl.properties {
		if p.isList && (p.name == "vertex_indices" || p.name == "vertex_index") {
			faceListIdx = i
			break
		}
	}
	if faceListIdx < 0 {
		return nil, fmt.Errorf("%w: face vertex_indices", ErrMissingProperty)
	}

	var rd bodyReader
	switch h.format {
	case formatASCII:
		rd = &asciiReader{br: br}
	case formatBinaryLittleEndian:
		rd = &binaryReader{br: br}
	default:
		return nil, ErrUnsupportedFormat
	}

	skel := skeleton.New()

	// Extra float-coercible vertex properties, collected in header order,
	// excluding x/y/z/radius.
	type extra struct {
		name string
		idx  int
		vals []float32
	}
	var extras []extra
	for i, p := range vertexEl.properties {
		if i == xi || i == yi || i == zi || i == ri || p.isList {
			continue
		}
		extras = append(extras, extra{name: p.name, idx: i})
	}

	for v := 0; v < vertexEl.count; v++ {
		row, err := rd.readScalarRow(vertexEl.properties)
		if err != nil {
			return nil, fmt.Errorf("%w: vertex %d: %v", ErrMalformedBody, v, err)
		}
		pos := skeleton.Vec3{
			float32(row[xi]), float32(row[yi]), float32(row[zi]),
		}
		skel.AddVertex(pos, float32(row[ri]))
		for ei := range extras {
			extras[ei].vals = append(extras[ei].vals, float32(row[extras[ei].idx]))
		}
	}
	for _, e := range extras {
		_ = skel.SetVertexProperty(e.name, e.vals)
	}

	for f := 0; f < faceEl.count; f++ {
		indices, err := rd.readListRow(faceEl.properties, faceListIdx)
		if err != nil {
			return nil, fmt.Errorf("%w: face %d: %v", ErrMalformedBody, f, err)
		}
		if len(indices) != 3 {
			return nil, fmt.Errorf("%w: face %d has %d indices", ErrNonTriangularFace, f, len(indices))
		}
		e1 := skel.AddEdge(indices[0], indices[1])
		e2 := skel.AddEdge(indices[1], indices[2])
		e3 := skel.AddEdge(indices[2], indices[0])
		if _, err := skel.AddFace(e1, e2, e3); err != nil {
			return nil, fmt.Errorf("%w: face %d: %v", ErrMalformedBody, f, err)
		}
	}

	return skel, nil
}

func findElement(h *header, name string) *element {
	for i := range h.elements {
		if h.elements[i].name == name {
			return &h.elements[i]
		}
	}
	return nil
}

// bodyReader abstracts the ASCII/binary data-section decoding so the
// element loop above is format-agnostic.
type bodyReader interface {
	// readScalarRow reads one element's worth of scalar properties
	// (skipping any list property) and returns them widened to float64.
	readScalarRow(props []property) ([]float64, error)
	// readListRow reads the list property at index listIdx of one
	// element row (consuming and discarding any other properties) and
	// returns its items as ints.
	readListRow(props []property, listIdx int) ([]int, error)
}

// --- ASCII ---

type asciiReader struct {
	br *bufio.Reader
}

func (a *asciiReader) nextLine() ([]string, error) {
	line, err := a.br.ReadString('\n')
	if err != nil && line == "" {
		return nil, io.ErrUnexpectedEOF
	}
	return strings.Fields(line), nil
}

func (a *asciiReader) readScalarRow(props []property) ([]float64, error) {
	fields, err := a.nextLine()
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(props))
	pos := 0
	for i, p := range props {
		if pos >= len(fields) {
			return nil, fmt.Errorf("expected %d fields, got %d", len(props), len(fields))
		}
		if p.isList {
			n, err := strconv.Atoi(fields[pos])
			if err != nil {
				return nil, err
			}
			pos += 1 + n
			continue
		}
		v, err := strconv.ParseFloat(fields[pos], 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
		pos++
	}
	return out, nil
}

func (a *asciiReader) readListRow(props []property, listIdx int) ([]int, error) {
	fields, err := a.nextLine()
	if err != nil {
		return nil, err
	}
	// Scalar properties before the list occupy one field each; the list
	// itself starts with a count field followed by that many items.
	pos := 0
	var result []int
	for i, p := range props {
		if pos >= len(fields) {
			return nil, fmt.Errorf("truncated row")
		}
		if !p.isList {
			pos++
			continue
		}
		n, err := strconv.Atoi(fields[pos])
		if err != nil {
			return nil, err
		}
		pos++
		items := make([]int, n)
		for j := 0; j < n; j++ {
			if pos >= len(fields) {
				return nil, fmt.Errorf("truncated list")
			}
			v, err := strconv.Atoi(fields[pos])
			if err != nil {
				return nil, err
			}
			items[j] = v
			pos++
		}
		if i == listIdx {
			result = items
		}
	}
	return result, nil
}

// --- Binary little-endian ---

type binaryReader struct {
	br *bufio.Reader
}

func (b *binaryReader) readScalar(ty scalarType) (float64, error) {
	buf := make([]byte, ty.size())
	if _, err := io.ReadFull(b.br, buf); err != nil {
		return 0, err
	}
	switch ty {
	case typeInt8:
		return float64(int8(buf[0])), nil
	case typeUint8:
		return float64(buf[0]), nil
	case typeInt16:
		return float64(int16(binary.LittleEndian.Uint16(buf))), nil
	case typeUint16:
		return float64(binary.LittleEndian.Uint16(buf)), nil
	case typeInt32:
		return float64(int32(binary.LittleEndian.Uint32(buf))), nil
	case typeUint32:
		return float64(binary.LittleEndian.Uint32(buf)), nil
	case typeFloat32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(buf))), nil
	case typeFloat64:
		return math.Float64frombits(binary.LittleEndian.Uint64(buf)), nil
	default:
		return 0, fmt.Errorf("unknown scalar type")
	}
}

func (b *binaryReader) readScalarRow(props []property) ([]float64, error) {
	out := make([]float64, len(props))
	for i, p := range props {
		if p.isList {
			// Skip a list property occurring among pure-scalar rows
			// (faces aren't read through this path, but stay defensive).
			n, err := b.readScalar(p.countTy)
			if err != nil {
				return nil, err
			}
			for j := 0; j < int(n); j++ {
				if _, err := b.readScalar(p.itemTy); err != nil {
					return nil, err
				}
			}
			continue
		}
		v, err := b.readScalar(p.itemTy)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (b *binaryReader) readListRow(props []property, listIdx int) ([]int, error) {
	var result []int
	for i, p := range props {
		if !p.isList {
			if _, err := b.readScalar(p.itemTy); err != nil {
				return nil, err
			}
			continue
		}
		n, err := b.readScalar(p.countTy)
		if err != nil {
			return nil, err
		}
		items := make([]int, int(n))
		for j := range items {
			v, err := b.readScalar(p.itemTy)
			if err != nil {
				return nil, err
			}
			items[j] = int(v)
		}
		if i == listIdx {
			result = items
		}
	}
	return result, nil
}
