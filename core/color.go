package core

import "math"

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
)

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (c RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return c
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// Scale multiplies each channel by factor (for fading effects)
func (c RGB) Scale(factor float64) RGB {
	if factor <= 0 {
		return RGBBlack
	}
	if factor >= 1 {
		return c
	}
	return RGB{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
	}
}

// Tint is a normalized screen overlay color, channels and alpha in [0,1]
// Values outside the range are carried as-is and clamped only on conversion
type Tint struct {
	R, G, B, A float64
}

// RGB converts the color channels to 8-bit, ignoring alpha
func (t Tint) RGB() RGB {
	return RGB{
		R: unitToByte(t.R),
		G: unitToByte(t.G),
		B: unitToByte(t.B),
	}
}

// Over composites the tint onto dst using its own alpha
func (t Tint) Over(dst RGB) RGB {
	return dst.Blend(t.RGB(), t.A)
}

// WithAlpha returns a copy with alpha replaced
func (t Tint) WithAlpha(a float64) Tint {
	t.A = a
	return t
}

func unitToByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}
