package aspen

// UVRect is a texture-space rectangle in normalized coordinates. A flipped
// rectangle has U0 > U1 and/or V0 > V1; values outside [0, 1] sample per the
// texture's wrap mode.
type UVRect struct {
	U0, V0, U1, V1 float64
}

// Flipped returns the rectangle with the flip mask applied: bit 0 swaps
// U0/U1, bit 1 swaps V0/V1. Applying the same mask twice restores the
// original rectangle.
func (r UVRect) Flipped(f Flip) UVRect {
	if f&FlipX != 0 {
		r.U0, r.U1 = r.U1, r.U0
	}
	if f&FlipY != 0 {
		r.V0, r.V1 = r.V1, r.V0
	}
	return r
}

// TileUV maps a row-major tile index within the atlas grid to its UV
// rectangle. No bounds check: an out-of-range index yields a rectangle
// outside [0, 1], which samples per the atlas's wrap mode.
func (a *Atlas) TileUV(index uint32, flip Flip) UVRect {
	col := int(index) % a.Cols
	row := int(index) / a.Cols
	u0 := float64(col*a.TileW) / float64(a.Width)
	v0 := float64(row*a.TileH) / float64(a.Height)
	return UVRect{
		U0: u0,
		V0: v0,
		U1: u0 + float64(a.TileW)/float64(a.Width),
		V1: v0 + float64(a.TileH)/float64(a.Height),
	}.Flipped(flip)
}
