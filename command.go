package aspen

import "sync"

// Command is one entry in a frame's command list. The nine concrete kinds
// below are the complete set; [Renderer.Execute] matches them exhaustively
// and silently skips anything else.
//
// The interface is sealed: only types in this package implement it.
type Command interface {
	isCommand()
}

// BeginFrame clears the color buffer. If HasClear is set, Clear becomes the
// new clear value first; otherwise the previous clear value is reused.
type BeginFrame struct {
	Clear    PackedColor
	HasClear bool
}

// EndFrame marks the end of a frame's command stream. Currently a no-op,
// reserved for future synchronization.
type EndFrame struct{}

// SetBlend replaces the current blend mode. The mode persists across frames
// until the next SetBlend.
type SetBlend struct {
	Mode BlendMode
}

// SetCamera replaces the camera wholesale: translation in logical units,
// uniform scale (must be > 0), rotation in radians. There is no
// interpolation; emit intermediate values from the logic layer (see
// [CameraTween]) if smooth motion is wanted.
type SetCamera struct {
	OriginX, OriginY float32
	Scale            float32
	Rotation         float32
}

// CreateAtlas creates or replaces the atlas with the given id: backing
// storage is allocated (or reused when dimensions and sampling match) and the
// atlas returns to the not-ready state. Width and Height are the texture's
// pixel dimensions; Cols×Rows is the tile grid; TileW×TileH is the pixel
// size of one tile.
type CreateAtlas struct {
	ID            AtlasID
	Width, Height int
	Cols, Rows    int
	TileW, TileH  int
	Filter        Filter
	Wrap          Wrap
}

// UploadAtlasChunk writes a sub-rectangle of RGBA8 pixels into an atlas's
// texture. Pixels must hold at least W*H*4 bytes. Chunks may arrive in any
// order and may overlap. No-op if the id is unknown.
type UploadAtlasChunk struct {
	ID         AtlasID
	X, Y, W, H int
	Pixels     []byte
}

// FinalizeAtlas marks an atlas ready for drawing. Idempotent; no-op if the
// id is unknown.
type FinalizeAtlas struct {
	ID AtlasID
}

// DrawSprite draws one tile of an atlas as a quad at (X, Y) in logical
// pixels, sized to the atlas's tile dimensions. Tint multiplies the sampled
// texture color. No-op if the atlas is unknown or not finalized.
type DrawSprite struct {
	Atlas AtlasID
	X, Y  float32
	Tile  uint32
	Flip  Flip
	Tint  PackedColor
}

// DrawTiles draws a GridW×GridH grid of cells starting at (X, Y), each
// CellW×CellH logical pixels. Tiles holds the tile index per cell in
// row-major order and must have at least GridW*GridH entries. Cells draw
// unflipped with an opaque white tint, one draw call per cell, row-major
// (gy outer, gx inner). No-op if the atlas is unknown or not finalized.
type DrawTiles struct {
	Atlas        AtlasID
	X, Y         float32
	CellW, CellH float32
	GridW, GridH int
	Tiles        []uint32
}

func (BeginFrame) isCommand()       {}
func (EndFrame) isCommand()         {}
func (SetBlend) isCommand()         {}
func (SetCamera) isCommand()        {}
func (CreateAtlas) isCommand()      {}
func (UploadAtlasChunk) isCommand() {}
func (FinalizeAtlas) isCommand()    {}
func (DrawSprite) isCommand()       {}
func (DrawTiles) isCommand()        {}

// Queue is the producer-side staging buffer for commands. Producers (logic
// callbacks, asset watchers) may push from any goroutine; the host drains
// the queue between frames and hands the slice to [Renderer.Execute] on the
// render thread. The queue preserves push order.
type Queue struct {
	mu   sync.Mutex
	cmds []Command
}

// Push appends commands to the queue.
func (q *Queue) Push(cmds ...Command) {
	q.mu.Lock()
	q.cmds = append(q.cmds, cmds...)
	q.mu.Unlock()
}

// Drain removes and returns all queued commands. The returned slice is owned
// by the caller; the queue is empty afterwards.
func (q *Queue) Drain() []Command {
	q.mu.Lock()
	cmds := q.cmds
	q.cmds = nil
	q.mu.Unlock()
	return cmds
}

// Len reports the number of queued commands.
func (q *Queue) Len() int {
	q.mu.Lock()
	n := len(q.cmds)
	q.mu.Unlock()
	return n
}
