package aspen

// Renderer interprets command lists against a GraphicsBackend. It owns all
// renderer state: the atlas table, the current camera, blend mode, clear
// value, and viewport dimensions.
//
// A Renderer is single-threaded: the host calls Execute once per frame and
// all state mutation and GPU submission happen synchronously inside that
// call, in command-list order. Nothing else may mutate the Renderer
// concurrently. Producers that need to emit commands from other goroutines
// stage them in a [Queue] and drain it between frames.
type Renderer struct {
	backend GraphicsBackend
	atlases atlasTable

	camera     Camera
	blend      BlendMode
	clearColor PackedColor
	viewport   Viewport

	stats FrameStats
}

// NewRenderer creates a Renderer over the given backend and sizes the
// viewport to the backend's current surface. Panics if backend is nil.
func NewRenderer(backend GraphicsBackend) *Renderer {
	if backend == nil {
		panic("aspen: NewRenderer called with nil backend")
	}
	r := &Renderer{
		backend:    backend,
		atlases:    newAtlasTable(backend),
		camera:     defaultCamera(),
		blend:      BlendAlpha,
		clearColor: RGBA(0, 0, 0, 255),
		viewport:   defaultViewport(),
	}
	r.ResizeToMatchDisplay()
	return r
}

// ResizeToMatchDisplay re-reads the physical surface dimensions from the
// backend and reconfigures the viewport. Call between frames when the
// display surface or pixel density changes; mid-list resizes are not
// forbidden but draws split across one see inconsistent physical dimensions.
func (r *Renderer) ResizeToMatchDisplay() {
	w, h := r.backend.SurfaceSize()
	r.viewport.PhysicalW = w
	r.viewport.PhysicalH = h
	r.backend.SetViewport(w, h)
}

// SetLogicalSize overrides the logical coordinate extent the camera
// transform stretches to the physical surface. Dimensions are clamped to a
// minimum of 1.
func (r *Renderer) SetLogicalSize(w, h int) {
	r.viewport.LogicalW = max(w, 1)
	r.viewport.LogicalH = max(h, 1)
}

// Viewport returns the current viewport dimensions.
func (r *Renderer) Viewport() Viewport {
	return r.viewport
}

// Camera returns the current camera state.
func (r *Renderer) Camera() Camera {
	return r.camera
}

// Atlas returns the atlas registered under id, or nil if unknown.
func (r *Renderer) Atlas(id AtlasID) *Atlas {
	return r.atlases.lookup(id)
}

// Stats returns the counters accumulated by the most recent Execute call.
func (r *Renderer) Stats() FrameStats {
	return r.stats
}

// Execute processes each command strictly in list order, synchronously,
// before returning. Unknown or malformed commands are skipped without
// raising an error; execution continues with the next command. There is no
// cancellation: once Execute begins it runs the whole list.
func (r *Renderer) Execute(commands []Command) {
	r.stats = FrameStats{Commands: len(commands)}

	for _, c := range commands {
		switch cmd := c.(type) {
		case BeginFrame:
			if cmd.HasClear {
				r.clearColor = cmd.Clear
			}
			r.backend.Clear(r.clearColor)
			r.stats.Clears++

		case EndFrame:
			// Reserved for future synchronization.

		case SetBlend:
			r.blend = cmd.Mode
			r.backend.SetBlend(cmd.Mode)
			r.stats.BlendChanges++

		case SetCamera:
			next := Camera{
				OriginX:  float64(cmd.OriginX),
				OriginY:  float64(cmd.OriginY),
				Scale:    float64(cmd.Scale),
				Rotation: float64(cmd.Rotation),
			}
			if !next.valid() {
				r.stats.Skipped++
				continue
			}
			r.camera = next

		case CreateAtlas:
			if cmd.Width < 1 || cmd.Height < 1 || cmd.Cols < 1 || cmd.Rows < 1 ||
				cmd.TileW < 1 || cmd.TileH < 1 {
				r.stats.Skipped++
				continue
			}
			r.atlases.createOrReplace(cmd)

		case UploadAtlasChunk:
			if cmd.W < 1 || cmd.H < 1 || len(cmd.Pixels) < cmd.W*cmd.H*4 {
				r.stats.Skipped++
				continue
			}
			if r.atlases.uploadChunk(cmd) {
				r.stats.Uploads++
				r.stats.UploadBytes += cmd.W * cmd.H * 4
			} else {
				r.stats.Skipped++
			}

		case FinalizeAtlas:
			if !r.atlases.finalize(cmd.ID) {
				r.stats.Skipped++
			}

		case DrawSprite:
			r.drawSprite(cmd)

		case DrawTiles:
			r.drawTiles(cmd)

		default:
			// nil or a command kind this renderer does not know.
			r.stats.Skipped++
		}
	}

	if globalDebug {
		debugLog(r.stats)
	}
}

// drawSprite issues one quad for a single tile. Ignored unless the atlas
// exists and is finalized.
func (r *Renderer) drawSprite(cmd DrawSprite) {
	a := r.atlases.lookup(cmd.Atlas)
	if a == nil || !a.Ready {
		r.stats.Skipped++
		return
	}

	r.backend.DrawQuad(QuadDraw{
		Texture:   a.Texture,
		Dst:       Rect{X: float64(cmd.X), Y: float64(cmd.Y), Width: float64(a.TileW), Height: float64(a.TileH)},
		UV:        a.TileUV(cmd.Tile, cmd.Flip),
		Transform: composeTransform(r.camera, r.viewport),
		Tint:      cmd.Tint,
	})
	r.stats.DrawCalls++
}

// drawTiles issues GridW*GridH quads in row-major order (gy outer, gx
// inner), unflipped, tinted opaque white. Ignored unless the atlas exists
// and is finalized; a tiles slice shorter than the grid is malformed and
// skips the whole command.
func (r *Renderer) drawTiles(cmd DrawTiles) {
	if cmd.GridW < 1 || cmd.GridH < 1 || len(cmd.Tiles) < cmd.GridW*cmd.GridH {
		r.stats.Skipped++
		return
	}
	a := r.atlases.lookup(cmd.Atlas)
	if a == nil || !a.Ready {
		r.stats.Skipped++
		return
	}

	transform := composeTransform(r.camera, r.viewport)
	cellW := float64(cmd.CellW)
	cellH := float64(cmd.CellH)

	for gy := 0; gy < cmd.GridH; gy++ {
		for gx := 0; gx < cmd.GridW; gx++ {
			tile := cmd.Tiles[gy*cmd.GridW+gx]
			r.backend.DrawQuad(QuadDraw{
				Texture: a.Texture,
				Dst: Rect{
					X:      float64(cmd.X) + float64(gx)*cellW,
					Y:      float64(cmd.Y) + float64(gy)*cellH,
					Width:  cellW,
					Height: cellH,
				},
				UV:        a.TileUV(tile, 0),
				Transform: transform,
				Tint:      ColorWhite,
			})
			r.stats.DrawCalls++
		}
	}
}
