package postprocess

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"
)

// Kernel returns the resampling filter for name. Empty means catmullrom.
func Kernel(name string) (draw.Interpolator, error) {
	switch strings.ToLower(name) {
	case "", "catmullrom":
		return draw.CatmullRom, nil
	case "bilinear":
		return draw.BiLinear, nil
	case "approxbilinear":
		return draw.ApproxBiLinear, nil
	case "nearest":
		return draw.NearestNeighbor, nil
	}
	return nil, fmt.Errorf("postprocess: unknown filter %q", name)
}

// Downsample reduces a supersampled preview to size×size. Scaling runs on
// premultiplied alpha so transparent backgrounds do not leave dark fringes
// around thin lines.
func Downsample(img *image.NRGBA, size int, filter string) (*image.NRGBA, error) {
	b := img.Bounds()
	if b.Dx() <= size && b.Dy() <= size {
		return img, nil
	}
	k, err := Kernel(filter)
	if err != nil {
		return nil, err
	}

	premul := image.NewRGBA(b)
	draw.Draw(premul, b, img, b.Min, draw.Src)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	k.Scale(dst, dst.Bounds(), premul, b, draw.Src, nil)

	out := image.NewNRGBA(dst.Bounds())
	draw.Draw(out, out.Bounds(), dst, image.Point{}, draw.Src)
	return out, nil
}
