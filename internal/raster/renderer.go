package raster

import (
	"image"
	"image/color"
	"math"

	"lsys-turtle/internal/logs"
	"lsys-turtle/internal/turtle"
	"lsys-turtle/internal/viewmatrix"
)

// Layer is one geometry buffer drawn with one pen.
type Layer struct {
	Name   string
	Buffer *turtle.Buffer
	Pen    Pen
}

// Options control RenderSegments.
type Options struct {
	Size        int // output size after downsampling
	Supersample int
	Background  color.NRGBA
	DepthCue    bool
}

// Vertices flattens the vertex stream of b.
func Vertices(b *turtle.Buffer) [][3]float32 {
	f := b.Floats()
	out := make([][3]float32, len(f)/3)
	for i := range out {
		out[i] = [3]float32{f[i*3], f[i*3+1], f[i*3+2]}
	}
	return out
}

// RenderSegments draws all layers into a square image of Size*Supersample
// pixels. Layers share one fit so they stay registered; later layers win
// depth ties.
func RenderSegments(layers []Layer, cam viewmatrix.Camera, opts Options) (*image.NRGBA, error) {
	ss := opts.Supersample
	if ss < 1 {
		ss = 1
	}
	renderSize := opts.Size * ss

	R, err := cam.ViewMatrix()
	if err != nil {
		return nil, err
	}

	var all [][3]float32
	perLayer := make([][][3]float32, len(layers))
	for i, l := range layers {
		perLayer[i] = Vertices(l.Buffer)
		all = append(all, perLayer[i]...)
	}

	margin := 16 * ss
	fit := viewmatrix.ComputeFit(cam, R, all, renderSize, margin)

	fb := NewFrameBuffer(renderSize, renderSize)
	fb.Fill(opts.Background)

	px, py, pz := fit.ProjectVertices(all)
	zFar, zNear := math.Inf(1), math.Inf(-1)
	for _, z := range pz {
		zFar = math.Min(zFar, z)
		zNear = math.Max(zNear, z)
	}
	var dc *DepthCue
	if opts.DepthCue {
		cue := DefaultDepthCue()
		dc = &cue
	}

	base := 0
	for i, l := range layers {
		pen := l.Pen
		pen.Width *= float64(ss)
		for v := 0; v+1 < len(perLayer[i]); v += 2 {
			a, b := base+v, base+v+1
			DrawLine(fb, px[a], py[a], pz[a], px[b], py[b], pz[b], pen, zFar, zNear, dc)
		}
		base += len(perLayer[i])
	}

	logs.Logger().Debug("raster: rendered",
		"layers", len(layers),
		"vertices", len(all),
		"size", renderSize)
	return fb.Image(), nil
}
