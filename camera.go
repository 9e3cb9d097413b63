package aspen

import "math"

// Camera holds the current view parameters in logical space: translation,
// uniform scale, and rotation. A SetCamera command replaces the whole value;
// there is no per-field mutation and no interpolation.
type Camera struct {
	// OriginX and OriginY are the camera translation in logical units.
	OriginX, OriginY float64
	// Scale is the uniform zoom factor (1.0 = no zoom). Must be > 0.
	Scale float64
	// Rotation is the camera rotation in radians (clockwise, Y down).
	Rotation float64
}

// defaultCamera is the camera state before any SetCamera command.
func defaultCamera() Camera {
	return Camera{Scale: 1}
}

// matrix builds the camera's affine matrix: rotation and uniform scale in
// the 2×2 linear block, origin as the translation.
func (c Camera) matrix() [6]float64 {
	return rotateScaleTranslate(c.Scale, c.Rotation, c.OriginX, c.OriginY)
}

// valid reports whether the camera parameters are usable for rendering.
// Scale must be strictly positive and every field finite.
func (c Camera) valid() bool {
	if !(c.Scale > 0) {
		return false
	}
	for _, v := range [4]float64{c.OriginX, c.OriginY, c.Scale, c.Rotation} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

// Viewport tracks the two coordinate extents a frame is rendered across:
// the physical device-pixel size of the surface and the logical size the
// application draws in.
type Viewport struct {
	// PhysicalW and PhysicalH are the device-pixel dimensions of the render
	// surface, refreshed from the backend by Renderer.ResizeToMatchDisplay.
	PhysicalW, PhysicalH int
	// LogicalW and LogicalH define the application coordinate extent that is
	// stretched to fill the physical surface. Always >= 1.
	LogicalW, LogicalH int
}

// Default logical extent (16:9), used until SetLogicalSize overrides it.
const (
	defaultLogicalW = 800
	defaultLogicalH = 450
)

func defaultViewport() Viewport {
	return Viewport{LogicalW: defaultLogicalW, LogicalH: defaultLogicalH}
}

// hostScale builds the diagonal matrix mapping logical pixels to physical
// pixels. While no physical size is known yet (before the first resize) the
// mapping is identity.
func (v Viewport) hostScale() [6]float64 {
	if v.PhysicalW <= 0 || v.PhysicalH <= 0 {
		return identityTransform
	}
	return scaleAffine(
		float64(v.PhysicalW)/float64(v.LogicalW),
		float64(v.PhysicalH)/float64(v.LogicalH),
	)
}

// composeTransform builds the matrix every draw call uses: camera motion in
// logical space first, then the whole logical frame stretched to the
// physical surface.
//
//	final = hostScale × cameraMatrix
//
// Recomputed from the current camera and viewport on each draw command, so a
// SetCamera or resize between draws takes effect immediately.
func composeTransform(cam Camera, vp Viewport) [6]float64 {
	return multiplyAffine(vp.hostScale(), cam.matrix())
}
