package sandbox

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/killctx/classifier"
	"github.com/lixenwraith/killctx/core"
	"github.com/lixenwraith/killctx/trigger"
)

// Layout
const (
	swatchX      = 2
	swatchY      = 5
	swatchWidth  = 24
	swatchHeight = 5
	textX        = 2
)

// SceneColor is the backdrop the tint is composited over
var SceneColor = core.RGB{R: 150, G: 150, B: 150}

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Bold(true)
	styleOn      = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen)
	styleOff     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFlash   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleHelp    = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// HelpLine lists the sandbox keys
const HelpLine = "c crit  h head  u unaware  k crouch  up/down dist  [/] hp  +/- streak  d chance  p palette  space cue  q quit"

// View draws a classified kill onto a screen
type View struct {
	screen tcell.Screen
}

// NewView creates a View over screen
func NewView(screen tcell.Screen) *View {
	return &View{screen: screen}
}

// Draw renders state, its modifiers and chosen trigger, then shows the screen
func (v *View) Draw(st State, mods classifier.ContextModifiers, trig trigger.Trigger) {
	v.screen.Clear()

	v.text(textX, 0, "killctx sandbox", styleTitle)
	v.text(textX, 1, fmt.Sprintf("distance %.1fm  health %.0f  streak %d  dismember %.0f%%  palette %s",
		st.Distance, st.Health, st.Streak, st.DismemberChance*100, st.PaletteName()), styleDefault)

	x := textX
	for _, f := range []struct {
		label string
		on    bool
	}{
		{"crit", st.Crit},
		{"headshot", st.Headshot},
		{"unaware", st.Unaware},
		{"crouch", st.Crouching},
	} {
		style := styleOff
		if f.on {
			style = styleOn
		}
		x = v.text(x, 3, " "+f.label+" ", style) + 1
	}

	v.swatch(mods)

	y := swatchY + swatchHeight + 1
	v.text(textX, y, fmt.Sprintf("duration x%.2f  slow x%.2f  zoom x%.2f  zoom speed x%.2f",
		mods.DurationMultiplier, mods.SlowScaleMultiplier, mods.ZoomMultiplier, mods.ZoomSpeedMultiplier), styleDefault)
	v.text(textX, y+1, fmt.Sprintf("bonus duration +%.2fs  effective 1s -> %.2fs",
		mods.BonusDuration, mods.EffectiveDuration(1)), styleDefault)
	v.text(textX, y+2, "trigger  "+trig.String(), styleTitle)
	v.text(textX, y+3, "contexts "+mods.TriggeredContexts.String(), styleDefault)
	v.text(textX, y+4, "debug    "+mods.DebugInfo, styleDefault)

	_, h := v.screen.Size()
	v.text(textX, h-1, HelpLine, styleHelp)

	v.screen.Show()
}

// swatch fills a block with the tint composited over SceneColor
// Flash kills get a highlighted frame
func (v *View) swatch(mods classifier.ContextModifiers) {
	c := mods.ScreenTint.Over(SceneColor)
	fill := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	for dy := 0; dy < swatchHeight; dy++ {
		for dx := 0; dx < swatchWidth; dx++ {
			v.screen.SetContent(swatchX+dx, swatchY+dy, ' ', nil, fill)
		}
	}
	if mods.TriggerFlash {
		for dx := -1; dx <= swatchWidth; dx++ {
			v.screen.SetContent(swatchX+dx, swatchY-1, '*', nil, styleFlash)
			v.screen.SetContent(swatchX+dx, swatchY+swatchHeight, '*', nil, styleFlash)
		}
	}
	v.text(swatchX+swatchWidth+2, swatchY, fmt.Sprintf("tint %.2f %.2f %.2f a%.2f",
		mods.ScreenTint.R, mods.ScreenTint.G, mods.ScreenTint.B, mods.ScreenTint.A), styleDefault)
	v.text(swatchX+swatchWidth+2, swatchY+1, fmt.Sprintf("rgb  %d %d %d", c.R, c.G, c.B), styleDefault)
}

// text writes s at x,y and returns the column after it
func (v *View) text(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
