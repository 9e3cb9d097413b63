package aspen

// TextureID is a backend-assigned texture handle. Zero is never a valid
// handle; backends allocate from 1.
type TextureID uint32

// QuadDraw is one draw-call submission: a destination rectangle in logical
// pixels, the UV rectangle to sample, the composed logical→physical
// transform, and a multiplicative tint.
type QuadDraw struct {
	Texture   TextureID
	Dst       Rect
	UV        UVRect
	Transform [6]float64
	Tint      PackedColor
}

// GraphicsBackend is the capability set the renderer needs from a GPU.
// Per-command operations are fire-and-forget: the renderer does not wait for
// GPU completion and backends report nothing back per call. Fatal problems
// (no GPU context, shader build failure) surface from backend construction,
// not from these methods.
//
// The Transform in a QuadDraw maps logical pixels to physical pixels with a
// top-left origin; converting physical pixels to the API's native device
// coordinates (e.g. NDC with a Y flip for a GL-style API) is the backend's
// job. The renderer itself never produces NDC.
//
// [EbitenBackend] renders through Ebitengine; [RecordingBackend] captures
// calls as data for tests.
type GraphicsBackend interface {
	// CreateTexture allocates a w×h RGBA8 texture with the given sampling
	// parameters and returns its handle.
	CreateTexture(w, h int, filter Filter, wrap Wrap) TextureID

	// DestroyTexture releases a texture. Unknown handles are ignored.
	DestroyTexture(id TextureID)

	// WriteTexture writes a w×h sub-rectangle of RGBA8 pixels (len w*h*4) at
	// (x, y). Rectangles outside the texture are the backend's to reject or
	// clip.
	WriteTexture(id TextureID, x, y, w, h int, pixels []byte)

	// SetBlend sets the blend state used by subsequent DrawQuad calls.
	SetBlend(mode BlendMode)

	// Clear fills the color buffer.
	Clear(c PackedColor)

	// SetViewport sets the physical pixel dimensions of the render area.
	SetViewport(w, h int)

	// SurfaceSize reports the current device-pixel dimensions of the render
	// surface.
	SurfaceSize() (w, h int)

	// DrawQuad submits one textured quad.
	DrawQuad(q QuadDraw)
}
