package raster

import (
	"image/color"
	"math"
)

// DepthCue darkens lines with distance from the viewer so overlapping
// branches stay readable.
type DepthCue struct {
	Near      float64 // brightness multiplier at the closest depth
	Far       float64 // brightness multiplier at the farthest depth
	Exposure  float64
	SRGBGamma float64
	InvGamma  float64
}

// DefaultDepthCue returns the standard preview shading.
func DefaultDepthCue() DepthCue {
	return DepthCue{
		Near:      1.35,
		Far:       0.55,
		Exposure:  1.05,
		SRGBGamma: 2.2,
		InvGamma:  1.0 / 2.2,
	}
}

// Shade returns c lit for normalized depth t (0 = far, 1 = near).
// Works in linear light and tone-maps back to sRGB.
func (dc *DepthCue) Shade(c color.NRGBA, t float64) color.NRGBA {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	k := (dc.Far + (dc.Near-dc.Far)*t) * dc.Exposure
	enc := func(v uint8) uint8 {
		lin := srgbToLinear[v] * k
		return clamp255(math.Pow(ACESTonemap(lin), dc.InvGamma) * 255)
	}
	return color.NRGBA{R: enc(c.R), G: enc(c.G), B: enc(c.B), A: c.A}
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
