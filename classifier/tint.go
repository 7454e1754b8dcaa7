package classifier

import (
	"strings"

	"github.com/lixenwraith/killctx/core"
	"github.com/lixenwraith/killctx/parameter"
)

// LowHealthTint replaces the palette tint on low health kills
var LowHealthTint = core.Tint{
	R: parameter.LowHealthTint[0],
	G: parameter.LowHealthTint[1],
	B: parameter.LowHealthTint[2],
	A: parameter.LowHealthTint[3],
}

// BaseTint resolves a palette by name and applies intensity as alpha
func BaseTint(mode string, intensity float64) core.Tint {
	p := parameter.DefaultPalette
	for _, candidate := range parameter.Palettes {
		if strings.EqualFold(candidate.Name, mode) {
			p = candidate
			break
		}
	}
	return core.Tint{R: p.R, G: p.G, B: p.B, A: intensity}
}
