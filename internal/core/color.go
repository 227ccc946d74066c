package core

import "strings"

// Color represents a foreground color for a screen cell.
// The platform maps it onto ANSI 256-color codes.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

var colorNames = map[string]Color{
	"default":   ColorDefault,
	"red":       ColorRed,
	"green":     ColorGreen,
	"yellow":    ColorYellow,
	"blue":      ColorBlue,
	"magenta":   ColorMagenta,
	"cyan":      ColorCyan,
	"white":     ColorWhite,
	"black":     ColorGray,
	"orange":    ColorOrange,
	"gray":      ColorGray,
	"grey":      ColorGray,
	"firebrick": ColorBrightRed,
	"lime":      ColorBrightGreen,
	"gold":      ColorBrightYellow,
	"navy":      ColorBlue,
	"purple":    ColorMagenta,
	"pink":      ColorBrightMagenta,
}

// ParseColor maps a color name to a Color. Bright variants are written
// with a "bright" prefix ("bright red", "bright-red", "brightred").
func ParseColor(name string) (Color, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)

	if strings.HasPrefix(key, "bright") {
		switch strings.TrimPrefix(key, "bright") {
		case "red":
			return ColorBrightRed, true
		case "green":
			return ColorBrightGreen, true
		case "yellow":
			return ColorBrightYellow, true
		case "blue":
			return ColorBrightBlue, true
		case "magenta":
			return ColorBrightMagenta, true
		case "cyan":
			return ColorBrightCyan, true
		case "white":
			return ColorBrightWhite, true
		}
		return ColorDefault, false
	}

	c, ok := colorNames[key]
	return c, ok
}
