package aspen

import "testing"

// discardBackend accepts every call and keeps nothing, isolating
// interpreter overhead from recording costs.
type discardBackend struct {
	nextID TextureID
}

func (b *discardBackend) CreateTexture(w, h int, filter Filter, wrap Wrap) TextureID {
	b.nextID++
	return b.nextID
}
func (b *discardBackend) DestroyTexture(TextureID)                  {}
func (b *discardBackend) WriteTexture(TextureID, int, int, int, int, []byte) {}
func (b *discardBackend) SetBlend(BlendMode)                        {}
func (b *discardBackend) Clear(PackedColor)                         {}
func (b *discardBackend) SetViewport(int, int)                      {}
func (b *discardBackend) SurfaceSize() (int, int)                   { return 1280, 720 }
func (b *discardBackend) DrawQuad(QuadDraw)                         {}

func benchRenderer() *Renderer {
	r := NewRenderer(&discardBackend{})
	r.Execute(atlasSetup(1))
	return r
}

func BenchmarkExecute_10000Sprites(b *testing.B) {
	r := benchRenderer()
	cmds := make([]Command, 0, 10001)
	cmds = append(cmds, BeginFrame{})
	for i := 0; i < 10000; i++ {
		cmds = append(cmds, DrawSprite{
			Atlas: 1,
			X:     float32(i % 100 * 8),
			Y:     float32(i / 100 * 8),
			Tile:  uint32(i % 16),
			Tint:  ColorWhite,
		})
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r.Execute(cmds)
	}
}

func BenchmarkExecute_TileGrid100x100(b *testing.B) {
	r := benchRenderer()
	tiles := make([]uint32, 100*100)
	for i := range tiles {
		tiles[i] = uint32(i % 16)
	}
	cmds := []Command{
		BeginFrame{},
		DrawTiles{Atlas: 1, CellW: 8, CellH: 8, GridW: 100, GridH: 100, Tiles: tiles},
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r.Execute(cmds)
	}
}

func BenchmarkComposeTransform(b *testing.B) {
	cam := Camera{OriginX: 10, OriginY: 20, Scale: 1.5, Rotation: 0.3}
	vp := Viewport{PhysicalW: 1600, PhysicalH: 900, LogicalW: 800, LogicalH: 450}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = composeTransform(cam, vp)
	}
}

func BenchmarkTileUV(b *testing.B) {
	a := testAtlas()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = a.TileUV(uint32(i&15), Flip(i&3))
	}
}
