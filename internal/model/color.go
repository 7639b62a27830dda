package model

import "math/rand/v2"

// ColorPalette is the curated set of badge colors for manufacturers.
var ColorPalette = []string{
	"#ef4444", // red
	"#f59e0b", // amber
	"#10b981", // emerald
	"#3b82f6", // blue
	"#8b5cf6", // violet
	"#ec4899", // pink
	"#14b8a6", // teal
	"#f97316", // orange
	"#6366f1", // indigo
	"#06b6d4", // cyan
	"#84cc16", // lime
	"#a855f7", // purple
}

// NextColor picks a badge color for a new manufacturer. Colors already in
// use are avoided while unused palette entries remain; once the palette is
// exhausted any entry may be returned, so collisions become possible.
func NextColor(used []string) string {
	inUse := make(map[string]bool, len(used))
	for _, c := range used {
		inUse[c] = true
	}

	available := make([]string, 0, len(ColorPalette))
	for _, c := range ColorPalette {
		if !inUse[c] {
			available = append(available, c)
		}
	}
	if len(available) == 0 {
		available = ColorPalette
	}
	return available[rand.IntN(len(available))]
}
