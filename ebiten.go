package aspen

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenBackend renders quads through Ebitengine. The host owns the game
// loop: call SetSurfaceSize from Layout (in device pixels) and SetTarget
// with the screen image at the top of Draw, then hand the frame's command
// list to the Renderer.
//
// Quads are submitted with DrawTriangles so that out-of-range UVs sample per
// the atlas's wrap mode and flipped UV rectangles need no special casing.
type EbitenBackend struct {
	textures map[TextureID]*ebitenTexture
	nextID   TextureID

	target             *ebiten.Image
	blend              ebiten.Blend
	surfaceW, surfaceH int

	// scratch buffers reused across DrawQuad calls
	vertices [4]ebiten.Vertex
	indices  [6]uint16
}

type ebitenTexture struct {
	img     *ebiten.Image
	filter  ebiten.Filter
	address ebiten.Address
}

// NewEbitenBackend creates a backend with no render target. Drawing before
// SetTarget is a no-op.
func NewEbitenBackend() *EbitenBackend {
	return &EbitenBackend{
		textures: make(map[TextureID]*ebitenTexture),
		blend:    BlendAlpha.EbitenBlend(),
		indices:  [6]uint16{0, 1, 2, 0, 2, 3},
	}
}

// SetTarget points subsequent Clear and DrawQuad calls at the given image,
// normally the screen passed to the host's Draw.
func (b *EbitenBackend) SetTarget(target *ebiten.Image) {
	b.target = target
	if target != nil {
		bounds := target.Bounds()
		b.surfaceW = bounds.Dx()
		b.surfaceH = bounds.Dy()
	}
}

// SetSurfaceSize records the device-pixel surface dimensions. Call from the
// host's Layout (or LayoutF) with the outside size multiplied by the device
// scale factor.
func (b *EbitenBackend) SetSurfaceSize(w, h int) {
	b.surfaceW = w
	b.surfaceH = h
}

func (b *EbitenBackend) CreateTexture(w, h int, filter Filter, wrap Wrap) TextureID {
	tex := &ebitenTexture{img: ebiten.NewImage(w, h)}

	if filter == FilterLinear {
		tex.filter = ebiten.FilterLinear
	} else {
		tex.filter = ebiten.FilterNearest
	}
	if wrap == WrapRepeat {
		tex.address = ebiten.AddressRepeat
	} else {
		tex.address = ebiten.AddressClampToZero
	}

	b.nextID++
	b.textures[b.nextID] = tex
	return b.nextID
}

func (b *EbitenBackend) DestroyTexture(id TextureID) {
	tex := b.textures[id]
	if tex == nil {
		return
	}
	tex.img.Deallocate()
	delete(b.textures, id)
}

func (b *EbitenBackend) WriteTexture(id TextureID, x, y, w, h int, pixels []byte) {
	tex := b.textures[id]
	if tex == nil {
		return
	}
	// Clip against the texture bounds; WritePixels panics on out-of-range
	// regions and the renderer forwards upload rectangles unvalidated.
	bounds := tex.img.Bounds()
	if x < 0 || y < 0 || x+w > bounds.Dx() || y+h > bounds.Dy() {
		return
	}
	tex.img.SubImage(image.Rect(x, y, x+w, y+h)).(*ebiten.Image).WritePixels(pixels)
}

func (b *EbitenBackend) SetBlend(mode BlendMode) {
	b.blend = mode.EbitenBlend()
}

func (b *EbitenBackend) Clear(c PackedColor) {
	if b.target == nil {
		return
	}
	b.target.Fill(c.toRGBA())
}

// SetViewport is a no-op: Ebitengine draws are already addressed in target
// pixels and clipped to the target image.
func (b *EbitenBackend) SetViewport(w, h int) {}

func (b *EbitenBackend) SurfaceSize() (int, int) {
	return b.surfaceW, b.surfaceH
}

func (b *EbitenBackend) DrawQuad(q QuadDraw) {
	tex := b.textures[q.Texture]
	if tex == nil || b.target == nil {
		return
	}

	texBounds := tex.img.Bounds()
	texW := float64(texBounds.Dx())
	texH := float64(texBounds.Dy())

	// Source coordinates in texels. Flipped or out-of-range UVs pass
	// through; the Address mode handles sampling.
	sx0 := float32(q.UV.U0 * texW)
	sy0 := float32(q.UV.V0 * texH)
	sx1 := float32(q.UV.U1 * texW)
	sy1 := float32(q.UV.V1 * texH)

	// Destination corners: the composed transform maps the logical-pixel
	// rectangle to physical pixels, which is Ebitengine's native space.
	x0, y0 := transformPoint(q.Transform, q.Dst.X, q.Dst.Y)
	x1, y1 := transformPoint(q.Transform, q.Dst.X+q.Dst.Width, q.Dst.Y)
	x2, y2 := transformPoint(q.Transform, q.Dst.X+q.Dst.Width, q.Dst.Y+q.Dst.Height)
	x3, y3 := transformPoint(q.Transform, q.Dst.X, q.Dst.Y+q.Dst.Height)

	r, g, bl, a := q.Tint.Premultiplied()

	b.vertices[0] = ebiten.Vertex{DstX: float32(x0), DstY: float32(y0), SrcX: sx0, SrcY: sy0, ColorR: r, ColorG: g, ColorB: bl, ColorA: a}
	b.vertices[1] = ebiten.Vertex{DstX: float32(x1), DstY: float32(y1), SrcX: sx1, SrcY: sy0, ColorR: r, ColorG: g, ColorB: bl, ColorA: a}
	b.vertices[2] = ebiten.Vertex{DstX: float32(x2), DstY: float32(y2), SrcX: sx1, SrcY: sy1, ColorR: r, ColorG: g, ColorB: bl, ColorA: a}
	b.vertices[3] = ebiten.Vertex{DstX: float32(x3), DstY: float32(y3), SrcX: sx0, SrcY: sy1, ColorR: r, ColorG: g, ColorB: bl, ColorA: a}

	op := &ebiten.DrawTrianglesOptions{
		Blend:          b.blend,
		Filter:         tex.filter,
		Address:        tex.address,
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
	}
	b.target.DrawTriangles(b.vertices[:], b.indices[:], tex.img, op)
}
