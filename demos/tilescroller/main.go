// tilescroller renders a procedurally generated tile map and eases the
// camera across it, with a tinted sprite bouncing on top. Demonstrates the
// full command path: atlas lifecycle, tile-grid draws, camera tweening, and
// the logical-to-physical viewport transform (resize the window to see it).
package main

import (
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/aspen"
)

const (
	logicalW = 800
	logicalH = 450

	mapW = 48
	mapH = 32
)

type game struct {
	backend  *aspen.EbitenBackend
	renderer *aspen.Renderer

	tiles   []uint32
	tween   *aspen.CameraTween
	cam     aspen.SetCamera
	forward bool
	elapsed float64

	lastW, lastH int
}

func newGame() *game {
	backend := aspen.NewEbitenBackend()
	backend.SetSurfaceSize(logicalW, logicalH)

	g := &game{
		backend:  backend,
		renderer: aspen.NewRenderer(backend),
		tiles:    make([]uint32, mapW*mapH),
	}
	g.renderer.SetLogicalSize(logicalW, logicalH)

	// Checkerboard with occasional accent tiles.
	for y := 0; y < mapH; y++ {
		for x := 0; x < mapW; x++ {
			tile := uint32((x + y) % 2)
			if (x*7+y*13)%19 == 0 {
				tile = 2
			}
			g.tiles[y*mapW+x] = tile
		}
	}

	// Install the atlas once, up front.
	pack := buildTilesPack()
	g.renderer.Execute(pack.Commands(16))

	g.startTween()
	g.cam = aspen.SetCamera{Scale: 1}
	return g
}

// startTween eases the camera toward the far corner and back.
func (g *game) startTween() {
	from := aspen.SetCamera{Scale: 1}
	to := aspen.SetCamera{OriginX: -mapW*16 + logicalW, OriginY: -mapH*16 + logicalH, Scale: 1}
	if !g.forward {
		from, to = to, from
	}
	g.forward = !g.forward
	g.tween = aspen.NewCameraTween(from, to, 6, ease.InOutQuad)
}

func (g *game) Update() error {
	dt := 1.0 / float32(ebiten.TPS())
	g.elapsed += float64(dt)
	if g.tween.Done() {
		g.startTween()
	}
	g.cam, _ = g.tween.Update(dt)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.backend.SetTarget(screen)

	cam := g.cam
	bounce := float32(math.Abs(math.Sin(g.elapsed*2)) * 60)
	cmds := []aspen.Command{
		aspen.BeginFrame{Clear: aspen.RGBA(18, 18, 28, 255), HasClear: true},
		cam,
		aspen.DrawTiles{
			Atlas: 1, X: 0, Y: 0,
			CellW: 16, CellH: 16,
			GridW: mapW, GridH: mapH,
			Tiles: g.tiles,
		},
		aspen.SetBlend{Mode: aspen.BlendAdditive},
		aspen.DrawSprite{
			Atlas: 1,
			X:     float32(-cam.OriginX) + logicalW/2,
			Y:     float32(-cam.OriginY) + logicalH/2 - bounce,
			Tile:  3,
			Tint:  aspen.RGBA(255, 180, 60, 255),
		},
		aspen.SetBlend{Mode: aspen.BlendAlpha},
		aspen.EndFrame{},
	}
	g.renderer.Execute(cmds)
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	w := int(float64(outsideW) * scale)
	h := int(float64(outsideH) * scale)
	if w != g.lastW || h != g.lastH {
		g.lastW, g.lastH = w, h
		g.backend.SetSurfaceSize(w, h)
		g.renderer.ResizeToMatchDisplay()
	}
	return w, h
}

// buildTilesPack paints a 2x2 atlas of 16x16 tiles: two ground checkers, an
// accent tile, and a glow blob for the sprite.
func buildTilesPack() *aspen.Pack {
	const tile = 16
	pixels := make([]byte, 32*32*4)
	set := func(x, y int, r, g, b, a byte) {
		i := (y*32 + x) * 4
		pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = r, g, b, a
	}

	for y := 0; y < tile; y++ {
		for x := 0; x < tile; x++ {
			set(x, y, 52, 72, 54, 255)         // tile 0: dark grass
			set(x+tile, y, 66, 88, 62, 255)    // tile 1: light grass
			set(x, y+tile, 96, 82, 60, 255)    // tile 2: dirt accent
			dx, dy := float64(x)-7.5, float64(y)-7.5
			if d := math.Hypot(dx, dy); d < 7 { // tile 3: glow blob
				v := byte(255 * (1 - d/7))
				set(x+tile, y+tile, v, v, v, v)
			}
		}
	}

	return &aspen.Pack{
		ID: 1, Width: 32, Height: 32,
		Cols: 2, Rows: 2, TileW: tile, TileH: tile,
		Filter: aspen.FilterNearest, Wrap: aspen.WrapClamp,
		Pixels: pixels,
	}
}

func main() {
	ebiten.SetWindowSize(logicalW, logicalH)
	ebiten.SetWindowTitle("aspen: tile scroller")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(newGame()); err != nil {
		log.Fatal(err)
	}
}
