package colorspace

// DefaultPickerColor is the initial color offered for manual picking.
const DefaultPickerColor = "#8cb368"

// DefaultBaseColor is the initial base color for scheme generation.
const DefaultBaseColor = "#a855f7"

var presets = []string{
	"#8cb368", "#a4c583", "#c7e0b3", "#5b7a3e", "#3e5c29",
	"#000000", "#ffffff", "#f44336", "#e91e63", "#9c27b0",
	"#673ab7", "#3f51b5", "#2196f3", "#03a9f4", "#00bcd4",
	"#009688", "#4caf50", "#8bc34a", "#cddc39", "#ffeb3b",
	"#ffc107", "#ff9800", "#ff5722", "#795548", "#9e9e9e",
}

// Presets returns the preset swatches offered for manual picking, in display
// order. The returned slice is a copy.
func Presets() []string {
	out := make([]string, len(presets))
	copy(out, presets)
	return out
}
