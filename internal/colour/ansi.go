package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// Swatch returns an ANSI-coloured block for a colour.
// Width specifies how many characters wide the block should be.
func Swatch(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	return bg + strings.Repeat(" ", width) + ansiReset
}

// SwatchWithText returns a colour block with centred text in a readable
// foreground colour. Text longer than width is truncated.
func SwatchWithText(c RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	fg := ReadableText(c)

	runes := []rune(text)
	displayText := text
	if len(runes) > width {
		displayText = string(runes[:width])
	} else if len(runes) < width {
		padding := (width - len(runes)) / 2
		displayText = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(runes)-padding)
	}

	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	fgCode := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, fg.R, fg.G, fg.B, ansiSuffix)

	return bg + fgCode + displayText + ansiReset
}
