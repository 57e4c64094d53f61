package view

import "strings"

// Color is a hex RGB color such as "#f97316".
type Color string

const (
	ColorGlobal    Color = "#4cbbe3"
	ColorNA        Color = "#f97316"
	ColorJP        Color = "#ef4444"
	ColorEU        Color = "#0ea5e9"
	ColorOther     Color = "#22c55e"
	ColorDefault   Color = "#38bdf8"
	ColorPublisher Color = "#41a3e4"
)

// seriesColors is matched in order; the first key contained in the series
// name wins.
var seriesColors = []struct {
	key   string
	color Color
}{
	{"Global", ColorGlobal},
	{"NA", ColorNA},
	{"JP", ColorJP},
	{"EU", ColorEU},
	{"Other", ColorOther},
}

// ColorFor maps a series or category name to its fixed color.
func ColorFor(name string) Color {
	for _, c := range seriesColors {
		if strings.Contains(name, c.key) {
			return c.color
		}
	}
	return ColorDefault
}

var categoryPalette = []Color{
	"#38bdf8", "#22c55e", "#f97316", "#ef4444", "#0ea5e9",
	"#a855f7", "#14b8a6", "#eab308", "#f472b6", "#94a3b8",
}

// PaletteColor returns the i-th color of the categorical palette, wrapping.
func PaletteColor(i int) Color {
	return categoryPalette[i%len(categoryPalette)]
}

func colorsFor(labels []string) []Color {
	colors := make([]Color, len(labels))
	for i, l := range labels {
		colors[i] = ColorFor(l)
	}
	return colors
}
