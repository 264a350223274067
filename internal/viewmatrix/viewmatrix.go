package viewmatrix

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"lsys-turtle/internal/mathutil"
)

// DefaultFOV is the vertical field of view (degrees) for perspective previews.
const DefaultFOV = 35.0

// Camera describes how geometry is viewed in a preview.
// When Preset is empty the Euler angles (degrees) define the rotation.
type Camera struct {
	Preset      string  `json:"preset"`
	Pitch       float64 `json:"pitch"`
	Yaw         float64 `json:"yaw"`
	Roll        float64 `json:"roll"`
	Perspective bool    `json:"perspective"`
	FOV         float64 `json:"fov"`
}

// PresetMatrix returns the rotation for a named preset.
func PresetMatrix(name string) (mgl64.Mat3, error) {
	switch strings.ToLower(name) {
	case "front":
		return mathutil.ViewFront, nil
	case "tree":
		return mathutil.ViewTree, nil
	case "side":
		return mathutil.ViewSide, nil
	case "iso":
		return mathutil.ViewIso, nil
	}
	return mgl64.Ident3(), fmt.Errorf("viewmatrix: unknown preset %q", name)
}

// ViewMatrix builds the 3×3 world-to-view rotation.
func (c Camera) ViewMatrix() (mgl64.Mat3, error) {
	if c.Preset != "" {
		return PresetMatrix(c.Preset)
	}
	return mathutil.EulerToMat3(
		mgl64.DegToRad(c.Pitch),
		mgl64.DegToRad(c.Yaw),
		mgl64.DegToRad(c.Roll),
	), nil
}

// Fit is the screen mapping shared by every layer of one preview.
type Fit struct {
	R      mgl64.Mat3
	Center mgl64.Vec3 // view-space center of the bounding box
	Scale  float64    // pixels per world unit
	Size   int        // square render size in pixels

	persp   bool
	camDist float64
}

// ComputeFit rotates all vertices into view space, then chooses a center and
// scale so the combined bounding box fills size pixels minus margin.
// The margin is capped at a quarter of size so small previews keep at
// least half their width for the drawing.
func ComputeFit(cam Camera, R mgl64.Mat3, verts [][3]float32, size, margin int) Fit {
	margin = max(min(margin, size/4), 0)
	f := Fit{R: R, Size: size, Scale: 1}
	if len(verts) == 0 {
		return f
	}

	allMin := mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	allMax := mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range verts {
		tv := R.Mul3x1(toVec3(v))
		for k := 0; k < 3; k++ {
			allMin[k] = math.Min(allMin[k], tv[k])
			allMax[k] = math.Max(allMax[k], tv[k])
		}
	}

	f.Center = allMin.Add(allMax).Mul(0.5)
	extent := allMax.Sub(allMin)
	span := math.Max(extent[0], extent[1])
	if span < 0.001 {
		span = 0.001
	}
	f.Scale = float64(size-2*margin) / span

	if cam.Perspective {
		fov := cam.FOV
		if fov == 0 {
			fov = DefaultFOV
		}
		f.persp = true
		f.camDist = (span / 2) / math.Tan(mgl64.DegToRad(fov/2))
		// Keep the nearest point in front of the camera.
		if near := extent[2] / 2; f.camDist < near*1.5 {
			f.camDist = near * 1.5
		}
	}
	return f
}

// Project maps one world vertex to screen x, y (pixels, y down) and depth
// (larger is closer to the viewer).
func (f Fit) Project(v [3]float32) (float64, float64, float64) {
	t := f.R.Mul3x1(toVec3(v))
	half := float64(f.Size) / 2

	d := t.Sub(f.Center)
	x, y := d[0], d[1]
	if f.persp {
		depth := math.Max(f.camDist-d[2], 0.1)
		factor := f.camDist / depth
		x *= factor
		y *= factor
	}
	return x*f.Scale + half, -y*f.Scale + half, t[2]
}

// ProjectVertices projects a flat vertex list into parallel screen slices.
func (f Fit) ProjectVertices(verts [][3]float32) ([]float64, []float64, []float64) {
	n := len(verts)
	px := make([]float64, n)
	py := make([]float64, n)
	pz := make([]float64, n)
	for i, v := range verts {
		px[i], py[i], pz[i] = f.Project(v)
	}
	return px, py, pz
}

func toVec3(v [3]float32) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}
