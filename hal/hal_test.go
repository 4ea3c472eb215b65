package hal

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"testing"
	"time"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func TestFramebufferFillRectClips(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	if w, h := fb.Size(); w != 4 || h != 3 {
		t.Fatalf("Size() = %d,%d, want 4,3", w, h)
	}
	fb.ClearRGB(255, 255, 255)
	fb.FillRect(-1, -1, 2, 2, red)
	fb.FillRect(3, 2, 5, 5, red)
	fb.FillRect(10, 10, 2, 2, red)
	fb.FillRect(1, 1, 0, 3, red)
	if err := fb.Present(); err != nil {
		t.Fatalf("Present() error = %v", err)
	}

	img := fb.Image()
	want := map[[2]int]bool{{0, 0}: true, {3, 2}: true}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			got := img.RGBAAt(x, y)
			exp := white
			if want[[2]int{x, y}] {
				exp = red
			}
			if got != exp {
				t.Fatalf("pixel(%d,%d) = %v, want %v", x, y, got, exp)
			}
		}
	}
}

func TestFramebufferFillRectRows(t *testing.T) {
	fb := NewFramebuffer(5, 5)
	fb.FillRect(1, 1, 3, 2, red)
	fb.Present()
	img := fb.Image()
	n := 0
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if img.RGBAAt(x, y) == red {
				n++
				if x < 1 || x > 3 || y < 1 || y > 2 {
					t.Fatalf("pixel(%d,%d) painted outside the rect", x, y)
				}
			}
		}
	}
	if n != 6 {
		t.Fatalf("painted %d pixels, want 6", n)
	}
}

func TestFramebufferPresent(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.SetPixel(1, 1, red)
	fb.SetPixel(-1, 5, red)
	if got := fb.Image().RGBAAt(1, 1); got == red {
		t.Fatalf("Image() shows unpresented pixel")
	}
	fb.Present()
	img := fb.Image()
	if got := img.RGBAAt(1, 1); got != red {
		t.Fatalf("Image().At(1,1) = %v, want %v", got, red)
	}

	// The returned image is a copy.
	img.SetRGBA(0, 0, red)
	if got := fb.Image().RGBAAt(0, 0); got == red {
		t.Fatalf("Image() aliases the framebuffer")
	}
}

func TestFramebufferSnapshotSeq(t *testing.T) {
	fb := newHostFramebuffer(1, 1)
	dst := make([]byte, 4)
	if seq := fb.snapshot(dst); seq != 0 {
		t.Fatalf("snapshot() seq = %d, want 0", seq)
	}
	fb.ClearRGB(1, 2, 3)
	fb.Present()
	if seq := fb.snapshot(dst); seq != 1 {
		t.Fatalf("snapshot() seq = %d, want 1", seq)
	}
	if !bytes.Equal(dst, []byte{1, 2, 3, 255}) {
		t.Fatalf("snapshot() = %v", dst)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	h := New(Options{Width: 1, Height: 1, Log: &buf})
	h.Logger().WriteLineString("a")
	h.Logger().WriteLineBytes([]byte("b"))
	Logf(h.Logger(), "viewer: angle=%v", 10.0)
	Logf(nil, "dropped")
	if got, want := buf.String(), "a\nb\nviewer: angle=10\n"; got != want {
		t.Fatalf("log = %q, want %q", got, want)
	}
}

func TestKeyboardBuffer(t *testing.T) {
	kbd := newHostKeyboard()
	for i := 0; i < 100; i++ {
		kbd.emit(KeyEvent{Code: KeyLeft, Press: true})
	}
	if got := len(kbd.Events()); got != 64 {
		t.Fatalf("buffered events = %d, want 64", got)
	}
}

func TestRunHeadlessTicks(t *testing.T) {
	steps := 0
	err := RunHeadless(context.Background(), Options{Width: 2, Height: 2, Log: &bytes.Buffer{}}, func(h HAL) func() error {
		if h.Display().Framebuffer().Width() != 2 {
			t.Errorf("framebuffer width = %d, want 2", h.Display().Framebuffer().Width())
		}
		return func() error {
			steps++
			return nil
		}
	}, HeadlessConfig{Hz: 1000, Ticks: 5})
	if err != nil {
		t.Fatalf("RunHeadless() error = %v", err)
	}
	if steps != 5 {
		t.Fatalf("steps = %d, want 5", steps)
	}
}

func TestRunHeadlessQuit(t *testing.T) {
	steps := 0
	err := RunHeadless(context.Background(), Options{Log: &bytes.Buffer{}}, func(HAL) func() error {
		return func() error {
			steps++
			if steps == 3 {
				return ErrQuit
			}
			return nil
		}
	}, HeadlessConfig{Hz: 1000})
	if err != nil {
		t.Fatalf("RunHeadless() error = %v", err)
	}
	if steps != 3 {
		t.Fatalf("steps = %d, want 3", steps)
	}
}

func TestRunHeadlessError(t *testing.T) {
	boom := errors.New("boom")
	err := RunHeadless(context.Background(), Options{Log: &bytes.Buffer{}}, func(HAL) func() error {
		return func() error { return boom }
	}, HeadlessConfig{Hz: 1000})
	if !errors.Is(err, boom) {
		t.Fatalf("RunHeadless() error = %v, want %v", err, boom)
	}
}

func TestRunHeadlessCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := RunHeadless(ctx, Options{Log: &bytes.Buffer{}}, func(HAL) func() error { return nil }, HeadlessConfig{Hz: 100})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("RunHeadless() error = %v, want deadline exceeded", err)
	}
}
