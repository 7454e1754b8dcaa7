package parameter

// Palette is a named color grading base color (RGB, 0..1)
type Palette struct {
	Name    string
	R, G, B float64
}

// Palettes in menu order; lookup is case-insensitive on Name
var Palettes = []Palette{
	{Name: "gritty", R: 0.3, G: 0.2, B: 0.05},   // brown/orange
	{Name: "horror", R: 0.3, G: 0, B: 0},        // deep red
	{Name: "noir", R: 0.1, G: 0.1, B: 0.1},      // dark grey
	{Name: "toxic", R: 0, G: 0.2, B: 0},         // green
	{Name: "bloodmoon", R: 0.55, G: 0, B: 0.28}, // magenta
	{Name: "cold", R: 0, G: 0.1, B: 0.3},        // deep blue
}

// DefaultPalette is used for unknown or empty mode names
var DefaultPalette = Palette{Name: "default", R: 0, G: 0, B: 0.2}
