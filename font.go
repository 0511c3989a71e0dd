package stun

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFontSize is the size of the built-in font.
const DefaultFontSize = 14

// Font wraps an Ebitengine text/v2 face used to draw node text.
type Font struct {
	face *text.GoTextFace
	lh   float64
}

// LoadFont parses TrueType or OpenType data at the given size.
func LoadFont(ttf []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// Measure returns the rendered size of s.
func (f *Font) Measure(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the distance between baselines.
func (f *Font) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying face.
func (f *Font) Face() *text.GoTextFace {
	return f.face
}

var defaultFont *Font

// DefaultFont returns the Go Regular font at DefaultFontSize, parsed on first
// use.
func DefaultFont() *Font {
	if defaultFont == nil {
		f, err := LoadFont(goregular.TTF, DefaultFontSize)
		if err != nil {
			panic(err)
		}
		defaultFont = f
	}
	return defaultFont
}
