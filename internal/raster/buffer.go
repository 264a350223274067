package raster

import (
	"image"
	"image/color"
	"math"
)

// FrameBuffer is an NRGBA render target with a depth value per pixel.
// Larger depth is closer to the viewer.
type FrameBuffer struct {
	Width  int
	Height int
	Img    *image.NRGBA
	ZBuf   []float64 // len = W*H, starts at -inf
}

func NewFrameBuffer(w, h int) *FrameBuffer {
	zbuf := make([]float64, w*h)
	for i := range zbuf {
		zbuf[i] = math.Inf(-1)
	}
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Img:    image.NewNRGBA(image.Rect(0, 0, w, h)),
		ZBuf:   zbuf,
	}
}

// Fill sets every pixel to c without touching depth.
func (fb *FrameBuffer) Fill(c color.NRGBA) {
	pix := fb.Img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
	}
}

// Plot writes c at (x, y) if z is not behind the stored depth.
// Out-of-bounds coordinates are ignored.
func (fb *FrameBuffer) Plot(x, y int, z float64, c color.NRGBA) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	i := y*fb.Width + x
	if z < fb.ZBuf[i] {
		return
	}
	fb.ZBuf[i] = z
	fb.Img.SetNRGBA(x, y, c)
}

// Image returns the render target.
func (fb *FrameBuffer) Image() *image.NRGBA {
	return fb.Img
}
