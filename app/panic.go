package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"

	"meshview/hal"
)

// guard runs step and turns a panic into an error. The panic and its stack
// go to the log and onto the framebuffer.
func guard(h hal.HAL, step func() error) func() error {
	return func() (err error) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			stack := strings.Split(strings.TrimSpace(string(debug.Stack())), "\n")
			reportPanic(h, v, stack)
			err = fmt.Errorf("viewer panic: %v", v)
		}()
		return step()
	}
}

func reportPanic(h hal.HAL, v any, stack []string) {
	if l := h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf("meshview panic: %v", v))
		for _, line := range stack {
			if line == "" {
				continue
			}
			l.WriteLineString(line)
		}
	}

	disp := h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return
	}
	fb.ClearRGB(255, 255, 255)
	lines := append([]string{"meshview panic:", fmt.Sprint(v), "stack:"}, stack...)
	drawLines(fb, 0, 0, lines, color.RGBA{A: 0xFF})
	_ = fb.Present()
}
