package aspen

import (
	"encoding/json"
	"fmt"
)

// Command scripts are the protocol's tagged records serialized as JSON: an
// array of objects, each carrying a "cmd" tag plus that kind's fields.
// Pixel buffers are base64 strings (encoding/json's []byte convention);
// tile arrays are plain number arrays.
//
// Consistent with the interpreter's error model, records with an unknown
// tag or an undecodable payload are dropped rather than failing the whole
// script; only malformed top-level JSON is an error.

// scriptRecord is the union of every command kind's wire fields. Pointer
// fields distinguish absent from zero where the protocol cares (clear).
type scriptRecord struct {
	Cmd string `json:"cmd"`

	// begin-frame
	Clear *uint32 `json:"clear,omitempty"`

	// set-blend
	Mode string `json:"mode,omitempty"`

	// set-camera
	OriginX  float32 `json:"origin-x,omitempty"`
	OriginY  float32 `json:"origin-y,omitempty"`
	Scale    float32 `json:"scale,omitempty"`
	Rotation float32 `json:"rotation,omitempty"`

	// atlas lifecycle
	ID     uint16 `json:"id,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Cols   int    `json:"cols,omitempty"`
	Rows   int    `json:"rows,omitempty"`
	TileW  int    `json:"tile-w,omitempty"`
	TileH  int    `json:"tile-h,omitempty"`
	Filter string `json:"filter,omitempty"`
	Wrap   string `json:"wrap,omitempty"`

	// upload-atlas-chunk
	X      float32 `json:"x,omitempty"`
	Y      float32 `json:"y,omitempty"`
	W      int     `json:"w,omitempty"`
	H      int     `json:"h,omitempty"`
	Data   []byte  `json:"data,omitempty"`

	// draw-sprite
	AtlasID   uint16 `json:"atlas-id,omitempty"`
	TileIndex uint32 `json:"tile-index,omitempty"`
	Flip      uint8  `json:"flip,omitempty"`
	Tint      uint32 `json:"tint,omitempty"`

	// draw-tiles
	CellW float32  `json:"cell-w,omitempty"`
	CellH float32  `json:"cell-h,omitempty"`
	GridW int      `json:"grid-w,omitempty"`
	GridH int      `json:"grid-h,omitempty"`
	Tiles []uint32 `json:"tiles,omitempty"`
}

// ParseScript decodes a JSON command script into a command list. Records
// with unknown tags or undecodable payloads are skipped.
func ParseScript(data []byte) ([]Command, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("aspen: parse script: %w", err)
	}

	cmds := make([]Command, 0, len(raw))
	for _, entry := range raw {
		var rec scriptRecord
		if err := json.Unmarshal(entry, &rec); err != nil {
			continue
		}
		cmd, ok := rec.toCommand()
		if !ok {
			continue
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// FormatScript encodes a command list as a JSON script. Nil commands are
// dropped.
func FormatScript(cmds []Command) ([]byte, error) {
	records := make([]scriptRecord, 0, len(cmds))
	for _, cmd := range cmds {
		if rec, ok := recordOf(cmd); ok {
			records = append(records, rec)
		}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("aspen: format script: %w", err)
	}
	return data, nil
}

func (rec *scriptRecord) toCommand() (Command, bool) {
	switch rec.Cmd {
	case "begin-frame":
		cmd := BeginFrame{}
		if rec.Clear != nil {
			cmd.Clear = PackedColor(*rec.Clear)
			cmd.HasClear = true
		}
		return cmd, true

	case "end-frame":
		return EndFrame{}, true

	case "set-blend":
		mode, ok := parseBlendMode(rec.Mode)
		if !ok {
			return nil, false
		}
		return SetBlend{Mode: mode}, true

	case "set-camera":
		return SetCamera{
			OriginX:  rec.OriginX,
			OriginY:  rec.OriginY,
			Scale:    rec.Scale,
			Rotation: rec.Rotation,
		}, true

	case "create-atlas":
		filter, ok := parseFilter(rec.Filter)
		if !ok {
			return nil, false
		}
		wrap, ok := parseWrap(rec.Wrap)
		if !ok {
			return nil, false
		}
		return CreateAtlas{
			ID:     AtlasID(rec.ID),
			Width:  rec.Width,
			Height: rec.Height,
			Cols:   rec.Cols,
			Rows:   rec.Rows,
			TileW:  rec.TileW,
			TileH:  rec.TileH,
			Filter: filter,
			Wrap:   wrap,
		}, true

	case "upload-atlas-chunk":
		return UploadAtlasChunk{
			ID:     AtlasID(rec.ID),
			X:      int(rec.X),
			Y:      int(rec.Y),
			W:      rec.W,
			H:      rec.H,
			Pixels: rec.Data,
		}, true

	case "finalize-atlas":
		return FinalizeAtlas{ID: AtlasID(rec.ID)}, true

	case "draw-sprite":
		return DrawSprite{
			Atlas: AtlasID(rec.AtlasID),
			X:     rec.X,
			Y:     rec.Y,
			Tile:  rec.TileIndex,
			Flip:  Flip(rec.Flip),
			Tint:  PackedColor(rec.Tint),
		}, true

	case "draw-tiles":
		return DrawTiles{
			Atlas: AtlasID(rec.AtlasID),
			X:     rec.X,
			Y:     rec.Y,
			CellW: rec.CellW,
			CellH: rec.CellH,
			GridW: rec.GridW,
			GridH: rec.GridH,
			Tiles: rec.Tiles,
		}, true
	}
	return nil, false
}

func recordOf(cmd Command) (scriptRecord, bool) {
	switch c := cmd.(type) {
	case BeginFrame:
		rec := scriptRecord{Cmd: "begin-frame"}
		if c.HasClear {
			clear := uint32(c.Clear)
			rec.Clear = &clear
		}
		return rec, true

	case EndFrame:
		return scriptRecord{Cmd: "end-frame"}, true

	case SetBlend:
		return scriptRecord{Cmd: "set-blend", Mode: c.Mode.String()}, true

	case SetCamera:
		return scriptRecord{
			Cmd:     "set-camera",
			OriginX: c.OriginX, OriginY: c.OriginY,
			Scale: c.Scale, Rotation: c.Rotation,
		}, true

	case CreateAtlas:
		return scriptRecord{
			Cmd: "create-atlas",
			ID:  uint16(c.ID),
			Width: c.Width, Height: c.Height,
			Cols: c.Cols, Rows: c.Rows,
			TileW: c.TileW, TileH: c.TileH,
			Filter: c.Filter.String(), Wrap: c.Wrap.String(),
		}, true

	case UploadAtlasChunk:
		return scriptRecord{
			Cmd: "upload-atlas-chunk",
			ID:  uint16(c.ID),
			X:   float32(c.X), Y: float32(c.Y),
			W: c.W, H: c.H,
			Data: c.Pixels,
		}, true

	case FinalizeAtlas:
		return scriptRecord{Cmd: "finalize-atlas", ID: uint16(c.ID)}, true

	case DrawSprite:
		return scriptRecord{
			Cmd:     "draw-sprite",
			AtlasID: uint16(c.Atlas),
			X:       c.X, Y: c.Y,
			TileIndex: c.Tile,
			Flip:      uint8(c.Flip),
			Tint:      uint32(c.Tint),
		}, true

	case DrawTiles:
		return scriptRecord{
			Cmd:     "draw-tiles",
			AtlasID: uint16(c.Atlas),
			X:       c.X, Y: c.Y,
			CellW: c.CellW, CellH: c.CellH,
			GridW: c.GridW, GridH: c.GridH,
			Tiles: c.Tiles,
		}, true
	}
	return scriptRecord{}, false
}
