// Package aspen is a command-driven immediate-mode 2D renderer for
// [Ebitengine].
//
// Aspen sits between a simulation/logic layer and the GPU. The logic layer
// emits an ordered list of declarative commands each frame — camera and blend
// state, atlas lifecycle, sprite and tile-grid draws — and aspen translates
// them into exactly the right texture uploads, state changes, and draw calls,
// keeping atlas pixel space, logical application space, and physical device
// space mutually consistent regardless of display resolution or camera
// motion.
//
// # Quick start
//
// Create a backend and a [Renderer], then hand it one command list per frame:
//
//	backend := aspen.NewEbitenBackend()
//	renderer := aspen.NewRenderer(backend)
//
//	// inside your ebiten.Game Draw:
//	backend.SetTarget(screen)
//	renderer.Execute([]aspen.Command{
//		aspen.BeginFrame{Clear: aspen.RGBA(16, 16, 24, 255), HasClear: true},
//		aspen.SetCamera{Scale: 1},
//		aspen.DrawSprite{Atlas: 0, X: 100, Y: 50, Tile: 5, Tint: aspen.ColorWhite},
//		aspen.EndFrame{},
//	})
//
// Commands execute strictly in list order. Unknown or malformed commands are
// skipped without aborting the rest of the list.
//
// # Atlases
//
// An atlas is one texture holding a grid of equally sized tiles, addressed by
// row-major tile index. Atlases are created, filled by any number of
// sub-rectangle uploads, and then finalized; draws against an unfinalized
// atlas are ignored. [Pack] files bundle atlas metadata and LZ4-compressed
// pixels into a single binary blob that expands back into the create/upload/
// finalize command sequence, and [WatchPack] hot-reloads a pack file into a
// command [Queue] whenever it changes on disk.
//
// # Coordinate spaces
//
// Draw coordinates are logical pixels: an application-defined extent
// (default 800×450, see [Renderer.SetLogicalSize]) stretched to the physical
// surface each frame. The camera applies translation, uniform scale, and
// rotation in logical space before that stretch. [CameraTween] interpolates
// camera parameters on the logic side (via [gween]) and emits a fresh
// [SetCamera] per tick — the renderer itself never interpolates.
//
// # Testing without a GPU
//
// [GraphicsBackend] is the only boundary to real GPU work. A
// [RecordingBackend] captures every backend call as plain data, so command
// interpretation, camera math, and UV math are unit-testable headlessly.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package aspen
