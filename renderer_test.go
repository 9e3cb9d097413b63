package aspen

import (
	"math"
	"testing"
)

// bogusCommand simulates a command kind this renderer does not know.
type bogusCommand struct{}

func (bogusCommand) isCommand() {}

func newTestRenderer() (*Renderer, *RecordingBackend) {
	backend := NewRecordingBackend(800, 450)
	return NewRenderer(backend), backend
}

// atlasSetup is the create/upload/finalize batch for a 256x256 4x4 atlas.
func atlasSetup(id AtlasID) []Command {
	return []Command{
		createCmd(id),
		UploadAtlasChunk{ID: id, X: 0, Y: 0, W: 256, H: 256, Pixels: make([]byte, 256*256*4)},
		FinalizeAtlas{ID: id},
	}
}

func TestExecuteDrawBeforeFinalizeIgnored(t *testing.T) {
	r, backend := newTestRenderer()
	r.Execute([]Command{
		createCmd(1),
		DrawSprite{Atlas: 1, X: 10, Y: 20, Tile: 0, Tint: ColorWhite},
		DrawTiles{Atlas: 1, CellW: 16, CellH: 16, GridW: 2, GridH: 2, Tiles: make([]uint32, 4)},
	})
	if len(backend.Quads) != 0 {
		t.Errorf("submitted %d quads before finalize, want 0", len(backend.Quads))
	}

	// Same draws after finalize: exactly 1 (sprite) + 4 (tiles).
	r.Execute([]Command{
		FinalizeAtlas{ID: 1},
		DrawSprite{Atlas: 1, X: 10, Y: 20, Tile: 0, Tint: ColorWhite},
		DrawTiles{Atlas: 1, CellW: 16, CellH: 16, GridW: 2, GridH: 2, Tiles: make([]uint32, 4)},
	})
	if len(backend.Quads) != 5 {
		t.Errorf("submitted %d quads after finalize, want 5", len(backend.Quads))
	}
}

func TestExecuteDrawUnknownAtlasIgnored(t *testing.T) {
	r, backend := newTestRenderer()
	r.Execute([]Command{
		DrawSprite{Atlas: 9, Tint: ColorWhite},
	})
	if len(backend.Quads) != 0 {
		t.Errorf("submitted %d quads for unknown atlas, want 0", len(backend.Quads))
	}
	if r.Stats().Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", r.Stats().Skipped)
	}
}

func TestExecuteRecreateResetsReadiness(t *testing.T) {
	r, backend := newTestRenderer()
	r.Execute(atlasSetup(1))
	backend.Reset()

	// Re-creating the same id drops it back to not-ready; the draw between
	// create and finalize contributes nothing.
	r.Execute([]Command{
		createCmd(1),
		DrawSprite{Atlas: 1, Tint: ColorWhite},
		FinalizeAtlas{ID: 1},
		DrawSprite{Atlas: 1, Tint: ColorWhite},
	})
	if len(backend.Quads) != 1 {
		t.Errorf("submitted %d quads, want 1 (only the post-finalize draw)", len(backend.Quads))
	}
}

func TestExecuteSpriteGeometry(t *testing.T) {
	r, backend := newTestRenderer()
	r.Execute(append(atlasSetup(1),
		DrawSprite{Atlas: 1, X: 100, Y: 50, Tile: 5, Flip: 0, Tint: RGBA(255, 128, 0, 255)},
	))

	if len(backend.Quads) != 1 {
		t.Fatalf("submitted %d quads, want 1", len(backend.Quads))
	}
	q := backend.Quads[0]
	want := Rect{X: 100, Y: 50, Width: 64, Height: 64}
	if q.Dst != want {
		t.Errorf("dst = %+v, want %+v", q.Dst, want)
	}
	if q.UV != (UVRect{U0: 0.25, V0: 0.25, U1: 0.5, V1: 0.5}) {
		t.Errorf("uv = %+v, want (0.25,0.25)-(0.5,0.5)", q.UV)
	}
	if q.Tint != RGBA(255, 128, 0, 255) {
		t.Errorf("tint = %08x, want ff8000ff", uint32(q.Tint))
	}
}

func TestExecuteTileGridPlacement(t *testing.T) {
	r, backend := newTestRenderer()
	tiles := []uint32{0, 1, 2, 3, 4, 5}
	r.Execute(append(atlasSetup(1),
		DrawTiles{Atlas: 1, X: 10, Y: 20, CellW: 32, CellH: 16, GridW: 3, GridH: 2, Tiles: tiles},
	))

	if len(backend.Quads) != 6 {
		t.Fatalf("submitted %d quads, want 6", len(backend.Quads))
	}

	// Row-major order: gy outer, gx inner. Cell (gx=2, gy=1) is the last
	// quad, placed at (10+2*32, 20+1*16).
	last := backend.Quads[5]
	want := Rect{X: 74, Y: 36, Width: 32, Height: 16}
	if last.Dst != want {
		t.Errorf("cell (2,1) dst = %+v, want %+v", last.Dst, want)
	}
	if last.Tint != ColorWhite {
		t.Errorf("grid tint = %08x, want opaque white", uint32(last.Tint))
	}
	// Tile index per cell comes from tiles[gy*gridW+gx].
	if last.UV != r.Atlas(1).TileUV(5, 0) {
		t.Errorf("cell (2,1) uv = %+v, want tile 5", last.UV)
	}
}

func TestExecuteTileGridShortSliceSkipped(t *testing.T) {
	r, backend := newTestRenderer()
	r.Execute(append(atlasSetup(1),
		DrawTiles{Atlas: 1, CellW: 16, CellH: 16, GridW: 3, GridH: 2, Tiles: make([]uint32, 5)},
	))
	if len(backend.Quads) != 0 {
		t.Errorf("submitted %d quads for a short tiles slice, want 0", len(backend.Quads))
	}
}

func TestExecuteUnknownCommandsSkipped(t *testing.T) {
	r, backend := newTestRenderer()
	r.Execute(append(append([]Command{bogusCommand{}, nil}, atlasSetup(1)...),
		bogusCommand{},
		DrawSprite{Atlas: 1, Tint: ColorWhite},
	))

	// Unknown commands neither error nor disturb later commands.
	if len(backend.Quads) != 1 {
		t.Errorf("submitted %d quads, want 1", len(backend.Quads))
	}
	if r.Stats().Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", r.Stats().Skipped)
	}
}

func TestExecuteMalformedCommandsSkipped(t *testing.T) {
	r, backend := newTestRenderer()
	r.Execute([]Command{
		CreateAtlas{ID: 1},                                             // zero dimensions
		UploadAtlasChunk{ID: 1, W: 4, H: 4, Pixels: make([]byte, 15)},  // short buffer
		SetCamera{Scale: 0},                                            // non-positive scale
		SetCamera{Scale: 1, Rotation: float32(math.Inf(1))},            // non-finite
	})
	if len(backend.Textures) != 0 || len(backend.Writes) != 0 {
		t.Error("malformed commands reached the backend")
	}
	if got := r.Camera(); got != defaultCamera() {
		t.Errorf("camera = %+v after malformed set-camera, want defaults", got)
	}
	if r.Stats().Skipped != 4 {
		t.Errorf("Skipped = %d, want 4", r.Stats().Skipped)
	}
}

func TestExecuteSetCameraAffectsDraws(t *testing.T) {
	r, backend := newTestRenderer()
	r.Execute(append(atlasSetup(1),
		DrawSprite{Atlas: 1, Tint: ColorWhite},
		SetCamera{OriginX: 100, OriginY: 0, Scale: 1},
		DrawSprite{Atlas: 1, Tint: ColorWhite},
	))

	if len(backend.Quads) != 2 {
		t.Fatalf("submitted %d quads, want 2", len(backend.Quads))
	}
	x0, _ := transformPoint(backend.Quads[0].Transform, 0, 0)
	x1, _ := transformPoint(backend.Quads[1].Transform, 0, 0)
	if !approxEqual(x1-x0, 100, epsilon) {
		t.Errorf("set-camera between draws moved origin by %f, want 100", x1-x0)
	}
}

func TestExecuteBeginFrameClearColor(t *testing.T) {
	r, backend := newTestRenderer()
	red := RGBA(255, 0, 0, 255)

	r.Execute([]Command{BeginFrame{Clear: red, HasClear: true}})
	r.Execute([]Command{BeginFrame{}}) // no clear value: previous one persists

	if len(backend.Clears) != 2 {
		t.Fatalf("recorded %d clears, want 2", len(backend.Clears))
	}
	if backend.Clears[0] != red || backend.Clears[1] != red {
		t.Errorf("clears = %v, want [%v %v]", backend.Clears, red, red)
	}
}

func TestExecuteSetBlendForwarded(t *testing.T) {
	r, backend := newTestRenderer()
	r.Execute([]Command{
		SetBlend{Mode: BlendAdditive},
		SetBlend{Mode: BlendNone},
	})
	if len(backend.Blends) != 2 || backend.Blends[0] != BlendAdditive || backend.Blends[1] != BlendNone {
		t.Errorf("blends = %v, want [additive none]", backend.Blends)
	}
}

func TestResizeBetweenFramesChangesTransform(t *testing.T) {
	r, backend := newTestRenderer()
	r.Execute(append(atlasSetup(1), DrawSprite{Atlas: 1, X: 100, Y: 100, Tint: ColorWhite}))
	firstTransform := backend.Quads[0].Transform

	// Double the surface between frames. The first frame's submitted
	// geometry is untouched; the second frame's draws pick up the new scale.
	backend.SurfaceW, backend.SurfaceH = 1600, 900
	r.ResizeToMatchDisplay()
	r.Execute([]Command{DrawSprite{Atlas: 1, X: 100, Y: 100, Tint: ColorWhite}})

	if backend.Quads[0].Transform != firstTransform {
		t.Error("first frame's submitted transform changed after resize")
	}
	x0, y0 := transformPoint(backend.Quads[0].Transform, 100, 100)
	x1, y1 := transformPoint(backend.Quads[1].Transform, 100, 100)
	if !approxEqual(x1, 2*x0, epsilon) || !approxEqual(y1, 2*y0, epsilon) {
		t.Errorf("after 2x resize point maps to (%f,%f), want (%f,%f)", x1, y1, 2*x0, 2*y0)
	}
}

func TestSetLogicalSizeClamped(t *testing.T) {
	r, _ := newTestRenderer()
	r.SetLogicalSize(0, -5)
	vp := r.Viewport()
	if vp.LogicalW != 1 || vp.LogicalH != 1 {
		t.Errorf("logical size = %dx%d, want 1x1", vp.LogicalW, vp.LogicalH)
	}
}

func TestSetLogicalSizeChangesHostScale(t *testing.T) {
	r, backend := newTestRenderer()
	r.SetLogicalSize(400, 225) // half the 800x450 surface: 2x host scale
	r.Execute(append(atlasSetup(1), DrawSprite{Atlas: 1, X: 10, Y: 10, Tint: ColorWhite}))

	x, y := transformPoint(backend.Quads[0].Transform, 10, 10)
	if !approxEqual(x, 20, epsilon) || !approxEqual(y, 20, epsilon) {
		t.Errorf("logical (10,10) maps to (%f,%f), want (20,20)", x, y)
	}
}

func TestExecuteStats(t *testing.T) {
	r, _ := newTestRenderer()
	cmds := append(atlasSetup(1),
		BeginFrame{},
		SetBlend{Mode: BlendAdditive},
		DrawSprite{Atlas: 1, Tint: ColorWhite},
		DrawTiles{Atlas: 1, CellW: 8, CellH: 8, GridW: 2, GridH: 2, Tiles: make([]uint32, 4)},
		bogusCommand{},
		EndFrame{},
	)
	r.Execute(cmds)

	stats := r.Stats()
	if stats.Commands != len(cmds) {
		t.Errorf("Commands = %d, want %d", stats.Commands, len(cmds))
	}
	if stats.DrawCalls != 5 {
		t.Errorf("DrawCalls = %d, want 5", stats.DrawCalls)
	}
	if stats.Uploads != 1 || stats.UploadBytes != 256*256*4 {
		t.Errorf("Uploads = %d (%d bytes), want 1 (%d bytes)", stats.Uploads, stats.UploadBytes, 256*256*4)
	}
	if stats.Clears != 1 || stats.BlendChanges != 1 || stats.Skipped != 1 {
		t.Errorf("Clears/BlendChanges/Skipped = %d/%d/%d, want 1/1/1",
			stats.Clears, stats.BlendChanges, stats.Skipped)
	}
}

func TestNewRendererNilBackendPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewRenderer(nil) did not panic")
		}
	}()
	NewRenderer(nil)
}

func TestFrameStatsLogValue(t *testing.T) {
	stats := FrameStats{Commands: 3, DrawCalls: 2}
	attrs := stats.LogValue().Group()
	found := map[string]int64{}
	for _, a := range attrs {
		found[a.Key] = a.Value.Int64()
	}
	if found["commands"] != 3 || found["draw_calls"] != 2 {
		t.Errorf("LogValue attrs = %v", found)
	}
}
