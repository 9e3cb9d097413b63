// packreload demonstrates atlas hot-reloading. A pack file is rewritten
// with a shifted palette every two seconds; WatchPack pushes the fresh
// create/upload/finalize batch onto a queue, and the game drains the queue
// into each frame's command list. The on-screen tiles change color without
// any draw-side code knowing a reload happened.
package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/aspen"
)

const (
	logicalW = 800
	logicalH = 450
)

type game struct {
	backend  *aspen.EbitenBackend
	renderer *aspen.Renderer
	queue    *aspen.Queue
	tiles    []uint32
}

func (g *game) Update() error { return nil }

func (g *game) Draw(screen *ebiten.Image) {
	g.backend.SetTarget(screen)

	// Reload batches first, then the frame's draws.
	cmds := g.queue.Drain()
	cmds = append(cmds,
		aspen.BeginFrame{Clear: aspen.RGBA(10, 10, 14, 255), HasClear: true},
		aspen.SetCamera{Scale: 1},
		aspen.DrawTiles{
			Atlas: 1, X: 80, Y: 65,
			CellW: 40, CellH: 40,
			GridW: 16, GridH: 8,
			Tiles: g.tiles,
		},
		aspen.EndFrame{},
	)
	g.renderer.Execute(cmds)
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	return logicalW, logicalH
}

func main() {
	dir, err := os.MkdirTemp("", "aspen-packreload")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "palette.aspenpack")

	if err := writePalettePack(path, 0); err != nil {
		log.Fatal(err)
	}

	backend := aspen.NewEbitenBackend()
	backend.SetSurfaceSize(logicalW, logicalH)

	queue := &aspen.Queue{}
	watcher, err := aspen.WatchPack(path, queue, 8)
	if err != nil {
		log.Fatal(err)
	}
	defer watcher.Close()

	// Asset-pipeline stand-in: rewrite the pack with a shifted palette.
	go func() {
		for phase := byte(1); ; phase++ {
			time.Sleep(2 * time.Second)
			if err := writePalettePack(path, phase); err != nil {
				log.Printf("rewrite pack: %v", err)
			}
		}
	}()

	tiles := make([]uint32, 16*8)
	for i := range tiles {
		tiles[i] = uint32(i % 4)
	}

	g := &game{
		backend:  backend,
		renderer: aspen.NewRenderer(backend),
		queue:    queue,
		tiles:    tiles,
	}
	g.renderer.SetLogicalSize(logicalW, logicalH)

	ebiten.SetWindowSize(logicalW, logicalH)
	ebiten.SetWindowTitle("aspen: pack hot-reload")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

// writePalettePack writes a 4-tile atlas whose colors rotate with phase.
func writePalettePack(path string, phase byte) error {
	const tile = 16
	pixels := make([]byte, 64*tile*4)
	for i := 0; i < 4; i++ {
		r := byte(60 + 48*i)
		for y := 0; y < tile; y++ {
			for x := 0; x < tile; x++ {
				p := (y*64 + i*tile + x) * 4
				pixels[p] = r + phase*37
				pixels[p+1] = 90 + phase*23
				pixels[p+2] = 200 - r/2
				pixels[p+3] = 255
			}
		}
	}

	pack := &aspen.Pack{
		ID: 1, Width: 64, Height: tile,
		Cols: 4, Rows: 1, TileW: tile, TileH: tile,
		Filter: aspen.FilterNearest, Wrap: aspen.WrapClamp,
		Pixels: pixels,
	}

	var buf bytes.Buffer
	if err := aspen.WritePack(&buf, pack); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
