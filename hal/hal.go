// Package hal is the viewer's contact point with the host: a framebuffer to
// draw into, keyboard events, and a log sink.
package hal

import (
	"errors"
	"image"
	"image/color"
)

// ErrQuit is returned by a step function to close the host loop cleanly.
var ErrQuit = errors.New("hal: quit")

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// Framebuffer is an RGBA pixel buffer plus a "present" hook.
//
// All writes clip to the buffer bounds.
type Framebuffer interface {
	Width() int
	Height() int
	Size() (w, h int)
	SetPixel(x, y int, c color.RGBA)
	FillRect(x, y, w, h int, c color.RGBA)
	ClearRGB(r, g, b uint8)

	// Image returns a copy of the last presented frame.
	Image() *image.RGBA
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyLeft
	KeyRight
	KeyEscape
	KeyHome
)

// KeyEvent is a keyboard event. Text input arrives with Code KeyUnknown and
// Rune set.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Display provides access to the framebuffer.
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices.
type Input interface {
	Keyboard() Keyboard
}

// HAL bundles the host services.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
}
