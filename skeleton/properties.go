package skeleton

import "fmt"

// ErrPropertyLength indicates a named vertex property was assigned with a
// slice whose length does not equal VertexCount().
var ErrPropertyLength = fmt.Errorf("skeleton: property length mismatch")

// SetVertexProperty records a named per-vertex float property, such as
// "erosion_thickness" (result.Build's output) or an opaque property
// carried through from a PLY input file that isn't one of the required
// x/y/z/radius columns. len(values) must equal VertexCount().
func (s *Skeleton) SetVertexProperty(name string, values []float32) error {
	s.muVert.Lock()
	defer s.muVert.Unlock()
	if len(values) != len(s.vertices) {
		return ErrPropertyLength
	}
	if s.vertexProps == nil {
		s.vertexProps = make(map[string][]float32)
	}
	cp := make([]float32, len(values))
	copy(cp, values)
	s.vertexProps[name] = cp
	return nil
}

// VertexProperty returns the named per-vertex float property and whether
// it is present.
func (s *Skeleton) VertexProperty(name string) ([]float32, bool) {
	s.muVert.RLock()
	defer s.muVert.RUnlock()
	v, ok := s.vertexProps[name]
	if !ok {
		return nil, false
	}
	out := make([]float32, len(v))
	copy(out, v)
	return out, true
}

// VertexPropertyNames returns the names of all named float properties
// currently attached, in no particular order.
func (s *Skeleton) VertexPropertyNames() []string {
	s.muVert.RLock()
	defer s.muVert.RUnlock()
	names := make([]string, 0, len(s.vertexProps))
	for k := range s.vertexProps {
		names = append(names, k)
	}
	return names
}

// SetVertexColorFromProperty computes per-vertex RGB by linearly mapping
// the named float property over its [min, max] range to
// R = round(255*t), G = 0, B = round(255*(1-t)), and stores the result
// for PLY export. A constant property maps everything to full blue.
func (s *Skeleton) SetVertexColorFromProperty(name string) error {
	s.muVert.Lock()
	defer s.muVert.Unlock()

	vals, ok := s.vertexProps[name]
	if !ok {
		return fmt.Errorf("skeleton: property %q does not exist", name)
	}
	if len(vals) == 0 {
		return nil
	}

	minV, maxV := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	r := make([]uint8, len(vals))
	g := make([]uint8, len(vals))
	b := make([]uint8, len(vals))
	span := maxV - minV
	for i, v := range vals {
		var t float32
		if span != 0 {
			t = (v - minV) / span
		}
		r[i] = uint8(roundClamp(255 * t))
		g[i] = 0
		b[i] = uint8(roundClamp(255 * (1 - t)))
	}
	s.red, s.green, s.blue = r, g, b
	return nil
}

func roundClamp(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return float32(int32(x + 0.5))
}

// VertexColor returns the per-vertex RGB triples computed by
// SetVertexColorFromProperty, and whether color has been computed.
func (s *Skeleton) VertexColor() (r, g, b []uint8, ok bool) {
	s.muVert.RLock()
	defer s.muVert.RUnlock()
	if s.red == nil {
		return nil, nil, nil, false
	}
	r = make([]uint8, len(s.red))
	g = make([]uint8, len(s.green))
	b = make([]uint8, len(s.blue))
	copy(r, s.red)
	copy(g, s.green)
	copy(b, s.blue)
	return r, g, b, true
}
