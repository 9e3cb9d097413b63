package aspen

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// PackedColor is an RGBA color packed as 0xRRGGBBAA. Components are not
// premultiplied; premultiplication occurs at render submission time.
type PackedColor uint32

// ColorWhite is the default tint (no color modification).
const ColorWhite PackedColor = 0xFFFFFFFF

// RGBA packs four 8-bit components into a PackedColor.
func RGBA(r, g, b, a uint8) PackedColor {
	return PackedColor(r)<<24 | PackedColor(g)<<16 | PackedColor(b)<<8 | PackedColor(a)
}

// Components returns the four 8-bit channels.
func (c PackedColor) Components() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Premultiplied returns the color as float components in [0, 1] with RGB
// multiplied by alpha, the form draw submission expects.
func (c PackedColor) Premultiplied() (r, g, b, a float32) {
	cr, cg, cb, ca := c.Components()
	a = float32(ca) / 255
	return float32(cr) / 255 * a, float32(cg) / 255 * a, float32(cb) / 255 * a, a
}

// toRGBA converts to the stdlib color type (straight alpha).
func (c PackedColor) toRGBA() color.RGBA {
	r, g, b, a := c.Components()
	return color.RGBA{R: r, G: g, B: b, A: a}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// AtlasID identifies an atlas. IDs are assigned by the logic layer; the
// renderer treats them as opaque keys.
type AtlasID uint16

// Flip is a 2-bit mask applied to a tile's UV rectangle.
type Flip uint8

const (
	FlipX Flip = 1 << iota // horizontal flip (swap U0/U1)
	FlipY                  // vertical flip (swap V0/V1)
)

// Filter selects texture sampling for an atlas.
type Filter uint8

const (
	FilterNearest Filter = iota // point sampling (pixel art)
	FilterLinear                // bilinear sampling
)

// Wrap selects how UV coordinates outside [0, 1] sample an atlas.
type Wrap uint8

const (
	WrapClamp  Wrap = iota // clamp to edge texels
	WrapRepeat             // tile the texture
)

// BlendMode selects a compositing operation. Each maps to a specific
// ebiten.Blend value. State is process-wide and persists across frames until
// changed by a SetBlend command.
type BlendMode uint8

const (
	BlendNone     BlendMode = iota // opaque copy (skip blending)
	BlendAlpha                     // source-over (standard alpha blending)
	BlendAdditive                  // additive / lighter
	BlendMultiply                  // destination-color source factor (see below)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
//
// BlendMultiply intentionally pairs a destination-color source factor with an
// inverse-source-alpha destination factor rather than the conventional
// multiplicative equation. Content authored against the command protocol
// depends on these exact factors.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendNone:
		return ebiten.BlendCopy
	case BlendAdditive:
		return ebiten.BlendLighter
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	default:
		return ebiten.BlendSourceOver
	}
}

// String returns the protocol tag for the blend mode.
func (b BlendMode) String() string {
	switch b {
	case BlendNone:
		return "none"
	case BlendAdditive:
		return "additive"
	case BlendMultiply:
		return "multiply"
	default:
		return "alpha"
	}
}

// parseBlendMode maps a protocol tag to a BlendMode.
func parseBlendMode(s string) (BlendMode, bool) {
	switch s {
	case "none":
		return BlendNone, true
	case "alpha":
		return BlendAlpha, true
	case "additive":
		return BlendAdditive, true
	case "multiply":
		return BlendMultiply, true
	}
	return 0, false
}

// String returns the protocol tag for the filter.
func (f Filter) String() string {
	if f == FilterLinear {
		return "linear"
	}
	return "nearest"
}

func parseFilter(s string) (Filter, bool) {
	switch s {
	case "nearest":
		return FilterNearest, true
	case "linear":
		return FilterLinear, true
	}
	return 0, false
}

// String returns the protocol tag for the wrap mode.
func (w Wrap) String() string {
	if w == WrapRepeat {
		return "repeat"
	}
	return "clamp"
}

func parseWrap(s string) (Wrap, bool) {
	switch s {
	case "clamp":
		return WrapClamp, true
	case "repeat":
		return WrapRepeat, true
	}
	return 0, false
}
