// Package vertexbuf converts turtle geometry into GPU-ready vertex data and
// describes how to bind it. It does not touch a device.
package vertexbuf

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gputypes"

	"lsys-turtle/internal/turtle"
)

// VertexStride is the byte size of one position (float32x3).
const VertexStride = 12

// segmentBytes is the byte size of one line segment.
const segmentBytes = 2 * VertexStride

// Layout returns the vertex buffer layout for a position-only line stream:
// float32x3 position at location(0).
func Layout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			},
		},
	}
}

// Primitive returns the primitive state: each vertex pair is one line.
func Primitive() gputypes.PrimitiveState {
	return gputypes.PrimitiveState{
		Topology: gputypes.PrimitiveTopologyLineList,
		CullMode: gputypes.CullModeNone,
	}
}

// Usage is the buffer usage for an uploaded vertex stream.
func Usage() gputypes.BufferUsage {
	return gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst
}

// Encode returns the buffer as little-endian float32 bytes.
func Encode(b *turtle.Buffer) []byte {
	f := b.Floats()
	out := make([]byte, len(f)*4)
	for i, v := range f {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

// Decode parses bytes produced by Encode.
func Decode(data []byte) (*turtle.Buffer, error) {
	if len(data)%segmentBytes != 0 {
		return nil, fmt.Errorf("vertexbuf: %d bytes is not a whole number of segments", len(data))
	}
	f := make([]float32, len(data)/4)
	for i := range f {
		f[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return turtle.FromFloats(f), nil
}

// Descriptor records what a consumer needs to upload and draw one stream.
type Descriptor struct {
	Name      string     `json:"name"`
	File      string     `json:"file,omitempty"`
	Format    string     `json:"format"`
	Topology  string     `json:"topology"`
	Usage     string     `json:"usage"`
	Stride    int        `json:"stride"`
	Vertices  int        `json:"vertices"`
	Segments  int        `json:"segments"`
	ByteSize  int        `json:"byte_size"`
	BoundsMin [3]float64 `json:"bounds_min"`
	BoundsMax [3]float64 `json:"bounds_max"`
}

// Names written to descriptors, keyed on the GPU enums they describe.
var (
	formatNames = map[gputypes.VertexFormat]string{
		gputypes.VertexFormatFloat32x3: "float32x3",
	}
	topologyNames = map[gputypes.PrimitiveTopology]string{
		gputypes.PrimitiveTopologyLineList: "line-list",
	}
	usageNames = []struct {
		bit  gputypes.BufferUsage
		name string
	}{
		{gputypes.BufferUsageVertex, "vertex"},
		{gputypes.BufferUsageCopyDst, "copy-dst"},
	}
)

func usageString(u gputypes.BufferUsage) string {
	var parts []string
	for _, n := range usageNames {
		if u&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Describe summarizes b using the layout, primitive and usage a consumer
// binds it with. Bounds are zero for an empty buffer.
func Describe(name string, b *turtle.Buffer) Descriptor {
	layout := Layout()[0]
	d := Descriptor{
		Name:     name,
		Format:   formatNames[layout.Attributes[0].Format],
		Topology: topologyNames[Primitive().Topology],
		Usage:    usageString(Usage()),
		Stride:   int(layout.ArrayStride),
		Vertices: b.Vertices(),
		Segments: b.Segments(),
		ByteSize: b.Len() * 4,
	}
	if min, max, ok := b.Bounds(); ok {
		d.BoundsMin, d.BoundsMax = min, max
	}
	return d
}

// WriteFile writes the encoded buffer to path, creating parent directories.
func WriteFile(path string, b *turtle.Buffer) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("vertexbuf: %w", err)
	}
	if err := os.WriteFile(path, Encode(b), 0644); err != nil {
		return fmt.Errorf("vertexbuf: write %s: %w", path, err)
	}
	return nil
}

// ReadFile reads a file written by WriteFile.
func ReadFile(path string) (*turtle.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vertexbuf: read %s: %w", path, err)
	}
	b, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return b, nil
}

// WriteDescriptors writes descriptors as indented JSON.
func WriteDescriptors(path string, ds []Descriptor) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
