package admin

import "catalog/client"

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiDim    = "\x1b[2m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

// Palette colours view output. Only the dark theme on a colour-capable
// terminal uses ANSI escapes; everything else prints plain text.
type Palette struct {
	color bool
}

func NewPalette(theme client.Theme, terminal bool) Palette {
	return Palette{color: terminal && theme == client.Dark}
}

func (p Palette) paint(code, s string) string {
	if !p.color {
		return s
	}
	return code + s + ansiReset
}

func (p Palette) Title(s string) string   { return p.paint(ansiBold+ansiCyan, s) }
func (p Palette) Success(s string) string { return p.paint(ansiGreen, s) }
func (p Palette) Error(s string) string   { return p.paint(ansiRed, s) }
func (p Palette) Warn(s string) string    { return p.paint(ansiYellow, s) }
func (p Palette) Muted(s string) string   { return p.paint(ansiDim, s) }
