package render

import (
	"golang.org/x/image/font"

	"github.com/brisk-gui/brisk/pkg/graphics"
)

// TextAlign positions a line within the paragraph box.
type TextAlign uint8

const (
	TextAlignStart TextAlign = iota
	TextAlignCenter
	TextAlignEnd
)

// PrerenderedText is shaped Unicode text produced by the host's text stack.
// The core only queries geometry and hands the opaque object back to the
// canvas.
type PrerenderedText interface {
	// Bounds returns the ink bounds relative to the text origin.
	Bounds() graphics.Rect
	// LineCount returns the number of shaped lines.
	LineCount() int
	// AlignLine repositions one line within the given width.
	AlignLine(line int, width float64, align TextAlign)
	// Metrics returns the font metrics of the primary face.
	Metrics() font.Metrics
}

// TextShaper turns Unicode text into prerendered runs. Implemented by the
// host; failures surface as optional results, never core-level errors.
type TextShaper interface {
	Prerender(text string, family string, sizePx float64) (PrerenderedText, error)
}
