package aspen

import "log"

// Atlas is one texture holding a grid of equally sized tiles, addressed by
// row-major tile index.
type Atlas struct {
	ID            AtlasID
	Width, Height int // pixel dimensions of the backing texture
	Cols, Rows    int // tile grid dimensions
	TileW, TileH  int // pixel size of one tile
	Filter        Filter
	Wrap          Wrap

	// Texture is the backend handle for the backing storage.
	Texture TextureID

	// Ready is false from creation (and re-creation) until a finalize
	// command. Draw commands against a not-ready atlas are ignored.
	Ready bool
}

// atlasTable owns the set of atlases and their backing textures. All
// mutation happens on the render thread via the command interpreter.
type atlasTable struct {
	backend GraphicsBackend
	entries map[AtlasID]*Atlas
}

func newAtlasTable(backend GraphicsBackend) atlasTable {
	return atlasTable{
		backend: backend,
		entries: make(map[AtlasID]*Atlas),
	}
}

// lookup returns the atlas for id, or nil if unknown.
func (t *atlasTable) lookup(id AtlasID) *Atlas {
	return t.entries[id]
}

// createOrReplace (re)creates the atlas entry for cmd.ID. The backing
// texture is reused when dimensions and sampling parameters match the
// existing one, otherwise destroyed and reallocated. Readiness always resets:
// callers must re-finalize before the atlas is drawable again.
func (t *atlasTable) createOrReplace(cmd CreateAtlas) {
	next := &Atlas{
		ID:     cmd.ID,
		Width:  cmd.Width,
		Height: cmd.Height,
		Cols:   cmd.Cols,
		Rows:   cmd.Rows,
		TileW:  cmd.TileW,
		TileH:  cmd.TileH,
		Filter: cmd.Filter,
		Wrap:   cmd.Wrap,
	}

	if prev := t.entries[cmd.ID]; prev != nil {
		if prev.Width == next.Width && prev.Height == next.Height &&
			prev.Filter == next.Filter && prev.Wrap == next.Wrap {
			next.Texture = prev.Texture
		} else {
			t.backend.DestroyTexture(prev.Texture)
		}
	}
	if next.Texture == 0 {
		next.Texture = t.backend.CreateTexture(next.Width, next.Height, next.Filter, next.Wrap)
	}

	t.entries[cmd.ID] = next
}

// uploadChunk writes a sub-rectangle of RGBA8 pixels into the named atlas.
// No-op if the id is unknown. The rectangle is not validated against the
// atlas dimensions here; out-of-range writes are the backend's to reject or
// clip.
func (t *atlasTable) uploadChunk(cmd UploadAtlasChunk) bool {
	a := t.entries[cmd.ID]
	if a == nil {
		if globalDebug {
			log.Printf("aspen: upload chunk for unknown atlas %d dropped", cmd.ID)
		}
		return false
	}
	t.backend.WriteTexture(a.Texture, cmd.X, cmd.Y, cmd.W, cmd.H, cmd.Pixels[:cmd.W*cmd.H*4])
	return true
}

// finalize marks the named atlas ready. Idempotent; no-op if the id is
// unknown.
func (t *atlasTable) finalize(id AtlasID) bool {
	a := t.entries[id]
	if a == nil {
		return false
	}
	a.Ready = true
	return true
}
