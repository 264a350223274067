package turtle

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// FloatsPerSegment is the number of values one line segment occupies in a Buffer.
const FloatsPerSegment = 6

// Buffer is a flat vertex stream of line segments: start xyz followed by end xyz.
// Stored as float32 to match the vertex format it is uploaded as.
type Buffer struct {
	data []float32
}

// NewBuffer returns an empty buffer with room for n segments.
func NewBuffer(n int) *Buffer {
	return &Buffer{data: make([]float32, 0, n*FloatsPerSegment)}
}

// FromFloats wraps an existing coordinate stream. len(data) must be a multiple
// of FloatsPerSegment.
func FromFloats(data []float32) *Buffer {
	return &Buffer{data: data}
}

// AddSegment appends one segment in emission order.
func (b *Buffer) AddSegment(start, end mgl64.Vec3) {
	b.data = append(b.data,
		float32(start[0]), float32(start[1]), float32(start[2]),
		float32(end[0]), float32(end[1]), float32(end[2]),
	)
}

// Floats returns the underlying stream. Callers must not modify it.
func (b *Buffer) Floats() []float32 {
	if b == nil {
		return nil
	}
	return b.data
}

// Len returns the number of float values.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// Segments returns the number of line segments.
func (b *Buffer) Segments() int {
	return b.Len() / FloatsPerSegment
}

// Vertices returns the number of vertices (two per segment).
func (b *Buffer) Vertices() int {
	return b.Len() / 3
}

// Segment returns the endpoints of segment i.
func (b *Buffer) Segment(i int) (start, end [3]float32) {
	o := i * FloatsPerSegment
	copy(start[:], b.data[o:o+3])
	copy(end[:], b.data[o+3:o+6])
	return start, end
}

// Bounds returns the axis-aligned bounding box of all vertices.
// ok is false for an empty buffer.
func (b *Buffer) Bounds() (min, max [3]float64, ok bool) {
	if b.Len() == 0 {
		return min, max, false
	}
	min = [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	max = [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i := 0; i+2 < len(b.data); i += 3 {
		for k := 0; k < 3; k++ {
			v := float64(b.data[i+k])
			if v < min[k] {
				min[k] = v
			}
			if v > max[k] {
				max[k] = v
			}
		}
	}
	return min, max, true
}
