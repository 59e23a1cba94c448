package xtail

// Color is the presentation color a console should render a severity with.
// The core never interprets it; it exists for the display consumer.
type Color uint8

const (
	ColorGray Color = iota + 1
	ColorWhite
	ColorYellow
	ColorLightRed
	ColorRed
)

var colorNames = [...]string{"", "gray", "white", "yellow", "light_red", "red"}

func (c Color) String() string {
	if c > 0 && int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}

// Color maps a severity to its display color: Debug gray, Info white,
// Warning yellow, Error light red, Fatal red.
func (l Level) Color() Color {
	switch l {
	case LevelDebug:
		return ColorGray
	case LevelInfo:
		return ColorWhite
	case LevelWarning:
		return ColorYellow
	case LevelError:
		return ColorLightRed
	case LevelFatal:
		return ColorRed
	}
	return ColorWhite
}
