// Package ply reads and writes the Stanford PLY mesh format used as
// eroth's external interface: skeleton input (ASCII or binary
// little-endian), skeleton output (ASCII, with erosion_thickness and
// optional color), and erosion-path output (ASCII, vertices + edges).
package ply

import "errors"

// Sentinel errors surfaced at the CLI boundary.
var (
	// ErrNotPLY indicates the input does not start with the "ply" magic line.
	ErrNotPLY = errors.New("ply: missing \"ply\" magic header line")

	// ErrUnsupportedFormat indicates a format line other than ascii/binary
	// little-endian 1.0. Big-endian PLY is not supported.
	ErrUnsupportedFormat = errors.New("ply: unsupported format (want ascii or binary_little_endian 1.0)")

	// ErrMissingElement indicates the header never declared a "vertex" or
	// "face" element.
	ErrMissingElement = errors.New("ply: missing required element")

	// ErrMissingProperty indicates a required property (x/y/z/radius, or
	// the face index list) was not declared for its element.
	ErrMissingProperty = errors.New("ply: missing required property")

	// ErrNonTriangularFace indicates a face's index list did not have
	// exactly 3 entries; only triangular faces are accepted.
	ErrNonTriangularFace = errors.New("ply: non-triangular face")

	// ErrMalformedBody indicates the data section could not be parsed
	// according to the declared header (wrong token count, bad number,
	// truncated binary stream, ...).
	ErrMalformedBody = errors.New("ply: malformed body")
)

// scalarType is one of the PLY scalar property types.
type scalarType int

const (
	typeInt8 scalarType = iota
	typeUint8
	typeInt16
	typeUint16
	typeInt32
	typeUint32
	typeFloat32
	typeFloat64
)

// size returns the binary width in bytes of a scalar type.
func (t scalarType) size() int {
	switch t {
	case typeInt8, typeUint8:
		return 1
	case typeInt16, typeUint16:
		return 2
	case typeInt32, typeUint32, typeFloat32:
		return 4
	case typeFloat64:
		return 8
	default:
		return 0
	}
}

// parseScalarType maps a PLY type keyword (including its short aliases)
// to a scalarType.
func parseScalarType(word string) (scalarType, bool) {
	switch word {
	case "char", "int8":
		return typeInt8, true
	case "uchar", "uint8":
		return typeUint8, true
	case "short", "int16":
		return typeInt16, true
	case "ushort", "uint16":
		return typeUint16, true
	case "int", "int32":
		return typeInt32, true
	case "uint", "uint32":
		return typeUint32, true
	case "float", "float32":
		return typeFloat32, true
	case "double", "float64":
		return typeFloat64, true
	default:
		return 0, false
	}
}

// property describes one declared element property from the header.
type property struct {
	name    string
	isList  bool
	countTy scalarType // valid when isList
	itemTy  scalarType
}

// element describes one declared header element ("vertex", "face", ...).
type element struct {
	name       string
	count      int
	properties []property
}

func (e element) indexOf(name string) int {
	for i, p := range e.properties {
		if p.name == name {
			return i
		}
	}
	return -1
}
