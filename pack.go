package aspen

import (
	"encoding/binary"
	"fmt"
	"image"
	"io"

	"github.com/pierrec/lz4/v4"
	xdraw "golang.org/x/image/draw"
)

// A Pack bundles one atlas's metadata and full RGBA8 pixel payload into a
// single binary blob for shipping and hot-reloading. On disk the payload is
// LZ4 block-compressed; in memory it is raw pixels.
//
// File layout (little-endian): 8-byte magic, fixed header, payload.
type Pack struct {
	ID            AtlasID
	Width, Height int
	Cols, Rows    int
	TileW, TileH  int
	Filter        Filter
	Wrap          Wrap

	// Pixels is the full Width×Height RGBA8 image, len Width*Height*4.
	Pixels []byte
}

const packMagic = "ASPENPK1"

// packHeader is the fixed on-disk header following the magic.
type packHeader struct {
	ID             uint16
	Filter, Wrap   uint8
	Width, Height  uint32
	Cols, Rows     uint32
	TileW, TileH   uint32
	RawSize        uint32
	CompressedSize uint32 // equal to RawSize means the payload is stored raw
}

// WritePack serializes the pack. The payload is LZ4 block-compressed unless
// compression does not help, in which case it is stored raw.
func WritePack(w io.Writer, p *Pack) error {
	rawSize := p.Width * p.Height * 4
	if len(p.Pixels) != rawSize {
		return fmt.Errorf("aspen: write pack: pixel payload is %d bytes, want %d", len(p.Pixels), rawSize)
	}

	var compressor lz4.Compressor
	buf := make([]byte, lz4.CompressBlockBound(rawSize))
	n, err := compressor.CompressBlock(p.Pixels, buf)
	if err != nil {
		return fmt.Errorf("aspen: write pack: compress payload: %w", err)
	}

	payload := buf[:n]
	if n == 0 || n >= rawSize {
		payload = p.Pixels // incompressible, store raw
	}

	if _, err := io.WriteString(w, packMagic); err != nil {
		return fmt.Errorf("aspen: write pack: %w", err)
	}
	header := packHeader{
		ID:             uint16(p.ID),
		Filter:         uint8(p.Filter),
		Wrap:           uint8(p.Wrap),
		Width:          uint32(p.Width),
		Height:         uint32(p.Height),
		Cols:           uint32(p.Cols),
		Rows:           uint32(p.Rows),
		TileW:          uint32(p.TileW),
		TileH:          uint32(p.TileH),
		RawSize:        uint32(rawSize),
		CompressedSize: uint32(len(payload)),
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("aspen: write pack: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("aspen: write pack: %w", err)
	}
	return nil
}

// ReadPack deserializes a pack written by WritePack.
func ReadPack(r io.Reader) (*Pack, error) {
	magic := make([]byte, len(packMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("aspen: read pack: %w", err)
	}
	if string(magic) != packMagic {
		return nil, fmt.Errorf("aspen: read pack: bad magic %q", magic)
	}

	var header packHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("aspen: read pack: %w", err)
	}
	if header.RawSize != header.Width*header.Height*4 {
		return nil, fmt.Errorf("aspen: read pack: raw size %d does not match %dx%d", header.RawSize, header.Width, header.Height)
	}

	payload := make([]byte, header.CompressedSize)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("aspen: read pack: payload: %w", err)
	}

	pixels := payload
	if header.CompressedSize != header.RawSize {
		pixels = make([]byte, header.RawSize)
		n, err := lz4.UncompressBlock(payload, pixels)
		if err != nil {
			return nil, fmt.Errorf("aspen: read pack: decompress payload: %w", err)
		}
		if uint32(n) != header.RawSize {
			return nil, fmt.Errorf("aspen: read pack: decompressed %d bytes, want %d", n, header.RawSize)
		}
	}

	return &Pack{
		ID:     AtlasID(header.ID),
		Width:  int(header.Width),
		Height: int(header.Height),
		Cols:   int(header.Cols),
		Rows:   int(header.Rows),
		TileW:  int(header.TileW),
		TileH:  int(header.TileH),
		Filter: Filter(header.Filter),
		Wrap:   Wrap(header.Wrap),
		Pixels: pixels,
	}, nil
}

// Commands expands the pack into the command sequence that installs it:
// create-atlas, a series of row-banded upload chunks of at most
// maxChunkRows pixel rows each (the whole image in one chunk when
// maxChunkRows <= 0), and finalize-atlas.
func (p *Pack) Commands(maxChunkRows int) []Command {
	if maxChunkRows <= 0 || maxChunkRows > p.Height {
		maxChunkRows = p.Height
	}

	cmds := []Command{CreateAtlas{
		ID:     p.ID,
		Width:  p.Width,
		Height: p.Height,
		Cols:   p.Cols,
		Rows:   p.Rows,
		TileW:  p.TileW,
		TileH:  p.TileH,
		Filter: p.Filter,
		Wrap:   p.Wrap,
	}}

	stride := p.Width * 4
	for y := 0; y < p.Height; y += maxChunkRows {
		rows := min(maxChunkRows, p.Height-y)
		cmds = append(cmds, UploadAtlasChunk{
			ID:     p.ID,
			X:      0,
			Y:      y,
			W:      p.Width,
			H:      rows,
			Pixels: p.Pixels[y*stride : (y+rows)*stride],
		})
	}

	return append(cmds, FinalizeAtlas{ID: p.ID})
}

// BuildPack composes source images onto the pack's tile grid, scaling each
// to the tile size with nearest-neighbor resampling. Tiles fill the grid in
// row-major order; grid cells beyond len(tiles) stay transparent.
func BuildPack(id AtlasID, cols, rows, tileW, tileH int, filter Filter, wrap Wrap, tiles []image.Image) (*Pack, error) {
	if cols < 1 || rows < 1 || tileW < 1 || tileH < 1 {
		return nil, fmt.Errorf("aspen: build pack: invalid grid %dx%d tiles of %dx%d", cols, rows, tileW, tileH)
	}
	if len(tiles) > cols*rows {
		return nil, fmt.Errorf("aspen: build pack: %d tiles exceed %dx%d grid", len(tiles), cols, rows)
	}

	width := cols * tileW
	height := rows * tileH
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))

	for i, tile := range tiles {
		if tile == nil {
			continue
		}
		col := i % cols
		row := i / cols
		cell := image.Rect(col*tileW, row*tileH, (col+1)*tileW, (row+1)*tileH)
		xdraw.NearestNeighbor.Scale(canvas, cell, tile, tile.Bounds(), xdraw.Src, nil)
	}

	return &Pack{
		ID:     id,
		Width:  width,
		Height: height,
		Cols:   cols,
		Rows:   rows,
		TileW:  tileW,
		TileH:  tileH,
		Filter: filter,
		Wrap:   wrap,
		Pixels: canvas.Pix,
	}, nil
}
