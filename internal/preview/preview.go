// Package preview renders turtle geometry to an image file for inspection.
package preview

import (
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"

	"lsys-turtle/internal/postprocess"
	"lsys-turtle/internal/raster"
	"lsys-turtle/internal/turtle"
	"lsys-turtle/internal/viewmatrix"
)

// Formats lists the supported output formats.
var Formats = []string{"webp", "png", "tga", "bmp"}

// Ext returns the file extension for format, including the dot.
func Ext(format string) string {
	return "." + strings.ToLower(format)
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, f := range Formats {
		if ext == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("preview: unsupported extension %q", filepath.Ext(path))
}

// Encode writes img in the given format.
func Encode(w io.Writer, img image.Image, format string) error {
	var err error
	switch strings.ToLower(format) {
	case "webp":
		err = nativewebp.Encode(w, img, nil)
	case "png":
		err = png.Encode(w, img)
	case "tga":
		err = tga.Encode(w, img)
	case "bmp":
		err = bmp.Encode(w, img)
	default:
		return fmt.Errorf("preview: unsupported format %q", format)
	}
	if err != nil {
		return fmt.Errorf("preview: %s encode: %w", format, err)
	}
	return nil
}

// Style holds the pens and background of a preview.
type Style struct {
	Background color.NRGBA
	Trunk      raster.Pen
	Leaf       raster.Pen
	DepthCue   bool
	Filter     string // downsample filter, see postprocess.Kernel
}

// DefaultStyle draws brown branches and green leaves on a transparent background.
func DefaultStyle() Style {
	return Style{
		Trunk:    raster.Pen{Color: color.NRGBA{R: 110, G: 78, B: 46, A: 255}, Width: 1.5},
		Leaf:     raster.Pen{Color: color.NRGBA{R: 72, G: 160, B: 64, A: 255}, Width: 1},
		DepthCue: true,
	}
}

// Render rasterizes trunk and (optional) leaves and downsamples to size.
func Render(trunk, leaves *turtle.Buffer, cam viewmatrix.Camera, style Style, size, supersample int) (*image.NRGBA, error) {
	layers := []raster.Layer{{Name: "trunk", Buffer: trunk, Pen: style.Trunk}}
	if leaves != nil {
		layers = append(layers, raster.Layer{Name: "leaves", Buffer: leaves, Pen: style.Leaf})
	}

	img, err := raster.RenderSegments(layers, cam, raster.Options{
		Size:        size,
		Supersample: supersample,
		Background:  style.Background,
		DepthCue:    style.DepthCue,
	})
	if err != nil {
		return nil, err
	}
	if supersample > 1 {
		img, err = postprocess.Downsample(img, size, style.Filter)
		if err != nil {
			return nil, err
		}
	}
	return img, nil
}

// Save renders and writes a preview to path, creating parent directories.
// The format follows the path extension.
func Save(path string, trunk, leaves *turtle.Buffer, cam viewmatrix.Camera, style Style, size, supersample int) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	img, err := Render(trunk, leaves, cam, style, size, supersample)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ParseColor parses "#rrggbb" or "#rrggbbaa" (leading '#' optional).
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("preview: bad color %q", s)
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("preview: bad color %q: %w", s, err)
	}
	c := color.NRGBA{R: raw[0], G: raw[1], B: raw[2], A: 255}
	if len(raw) == 4 {
		c.A = raw[3]
	}
	return c, nil
}
