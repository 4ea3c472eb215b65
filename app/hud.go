package app

import (
	"fmt"
	"image/color"
	"unicode/utf8"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"

	"meshview/hal"
	"meshview/raster"
)

var hudFont = &tinyfont.TomThumb

const (
	hudAscent     = 5
	hudLineHeight = 7
	hudMargin     = 4
)

// fbDisplayer adapts a hal.Framebuffer to drivers.Displayer for tinyfont.
type fbDisplayer struct {
	fb hal.Framebuffer
}

func (d fbDisplayer) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d fbDisplayer) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil {
		return
	}
	d.fb.SetPixel(int(x), int(y), c)
}

func (d fbDisplayer) Display() error { return nil }

var _ drivers.Displayer = fbDisplayer{}

// hudColor picks black or white, whichever reads on bg.
func hudColor(bg color.RGBA) color.RGBA {
	luma := (299*int(bg.R) + 587*int(bg.G) + 114*int(bg.B)) / 1000
	if luma >= 128 {
		return color.RGBA{A: 0xFF}
	}
	return color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
}

func hudLines(angle float64, triangles int, st raster.Stats) []string {
	return []string{
		fmt.Sprintf("angle %g", angle),
		fmt.Sprintf("tris %d  frags %d", triangles, st.Fragments),
		"<- -> rotate  home reset  h hud  q quit",
	}
}

// drawLines writes lines from (x, y) downwards, wrapping at the right edge.
// It stops at the bottom edge and returns the y of the next free line.
func drawLines(fb hal.Framebuffer, x, y int, lines []string, c color.RGBA) int {
	_, adv := tinyfont.LineWidth(hudFont, "0")
	if adv == 0 {
		return y
	}
	cols := (fb.Width() - x) / int(adv)
	if cols <= 0 {
		cols = 1
	}
	d := fbDisplayer{fb: fb}
	for _, line := range lines {
		for {
			if y+hudLineHeight > fb.Height() {
				return y
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(d, hudFont, int16(x), int16(y+hudAscent), chunk, c)
			y += hudLineHeight
			if rest == "" {
				break
			}
			line = rest
		}
	}
	return y
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
