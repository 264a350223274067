package raster

import (
	"image/color"
	"math"
)

// Pen is the stroke used by DrawLine.
type Pen struct {
	Color color.NRGBA
	Width float64 // pixels; values below 1 draw 1-pixel lines
}

// DrawLine rasterizes a depth-tested line from (x0,y0,z0) to (x1,y1,z1).
// Depth grows toward the viewer. zNear/zFar normalize depth for cueing;
// pass equal values to disable cueing.
//
// Steps one pixel along the major axis and stamps a square brush of the pen
// width, interpolating depth linearly.
func DrawLine(fb *FrameBuffer, x0, y0, z0, x1, y1, z1 float64, pen Pen, zFar, zNear float64, dc *DepthCue) {
	dx, dy := x1-x0, y1-y0
	n := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if n == 0 {
		n = 1
	}

	r := int(math.Round(pen.Width/2 - 0.5))
	if r < 0 {
		r = 0
	}
	zSpan := zNear - zFar

	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		cx := int(math.Round(x0 + dx*t))
		cy := int(math.Round(y0 + dy*t))
		z := z0 + (z1-z0)*t

		c := pen.Color
		if dc != nil && zSpan > 1e-12 {
			c = dc.Shade(c, (z-zFar)/zSpan)
		}

		for sy := cy - r; sy <= cy+r; sy++ {
			for sx := cx - r; sx <= cx+r; sx++ {
				fb.Plot(sx, sy, z, c)
			}
		}
	}
}
