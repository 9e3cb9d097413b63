package aspen

// RecordingBackend captures every backend call as plain data instead of
// touching a GPU. It makes the interpreter, camera math, and UV math
// testable headlessly, and doubles as a command-stream debugger: run a
// frame, then inspect exactly what would have been submitted.
type RecordingBackend struct {
	// SurfaceW and SurfaceH are what SurfaceSize reports. Mutate between
	// frames to simulate a display resize.
	SurfaceW, SurfaceH int

	Textures  []TextureRecord
	Writes    []WriteRecord
	Blends    []BlendMode
	Clears    []PackedColor
	Quads     []QuadDraw
	Viewports [][2]int

	nextID TextureID
}

// TextureRecord is one CreateTexture call, marked destroyed on
// DestroyTexture.
type TextureRecord struct {
	ID        TextureID
	W, H      int
	Filter    Filter
	Wrap      Wrap
	Destroyed bool
}

// WriteRecord is one WriteTexture call. Pixels is a copy; callers may reuse
// their buffers.
type WriteRecord struct {
	Texture    TextureID
	X, Y, W, H int
	Pixels     []byte
}

// NewRecordingBackend creates a recording backend reporting the given
// surface size.
func NewRecordingBackend(surfaceW, surfaceH int) *RecordingBackend {
	return &RecordingBackend{SurfaceW: surfaceW, SurfaceH: surfaceH}
}

// Reset discards all recorded operations. Texture allocations survive so
// handles stay valid across frames, mirroring a real backend.
func (b *RecordingBackend) Reset() {
	b.Writes = b.Writes[:0]
	b.Blends = b.Blends[:0]
	b.Clears = b.Clears[:0]
	b.Quads = b.Quads[:0]
	b.Viewports = b.Viewports[:0]
}

func (b *RecordingBackend) CreateTexture(w, h int, filter Filter, wrap Wrap) TextureID {
	b.nextID++
	b.Textures = append(b.Textures, TextureRecord{
		ID: b.nextID, W: w, H: h, Filter: filter, Wrap: wrap,
	})
	return b.nextID
}

func (b *RecordingBackend) DestroyTexture(id TextureID) {
	for i := range b.Textures {
		if b.Textures[i].ID == id {
			b.Textures[i].Destroyed = true
		}
	}
}

func (b *RecordingBackend) WriteTexture(id TextureID, x, y, w, h int, pixels []byte) {
	buf := make([]byte, len(pixels))
	copy(buf, pixels)
	b.Writes = append(b.Writes, WriteRecord{Texture: id, X: x, Y: y, W: w, H: h, Pixels: buf})
}

func (b *RecordingBackend) SetBlend(mode BlendMode) {
	b.Blends = append(b.Blends, mode)
}

func (b *RecordingBackend) Clear(c PackedColor) {
	b.Clears = append(b.Clears, c)
}

func (b *RecordingBackend) SetViewport(w, h int) {
	b.Viewports = append(b.Viewports, [2]int{w, h})
}

func (b *RecordingBackend) SurfaceSize() (int, int) {
	return b.SurfaceW, b.SurfaceH
}

func (b *RecordingBackend) DrawQuad(q QuadDraw) {
	b.Quads = append(b.Quads, q)
}
