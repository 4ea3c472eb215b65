//go:build cgo

package hal

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"meshview/internal/buildinfo"
)

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Title string

	// Scale multiplies the framebuffer size for the initial window size.
	Scale int
}

// RunWindow starts a desktop window that displays the framebuffer and forwards keyboard input.
// It blocks until the window closes or step returns ErrQuit.
func RunWindow(opts Options, cfg WindowConfig, newApp func(HAL) func() error) error {
	h := newHost(opts)
	step := newApp(h)

	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	title := cfg.Title
	if title == "" {
		title = "meshview"
	}

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle(title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.Width()*cfg.Scale, h.fb.Height()*cfg.Scale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h     *hostHAL
	pix   []byte
	seq   uint64
	fbImg *ebiten.Image
	step  func() error
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	if g.step != nil {
		if err := g.step(); err != nil {
			if errors.Is(err, ErrQuit) {
				return ebiten.Termination
			}
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	w, h := fb.Size()
	if w == 0 || h == 0 {
		return
	}
	if g.fbImg == nil || g.fbImg.Bounds() != image.Rect(0, 0, w, h) {
		g.pix = make([]byte, w*h*4)
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
		g.seq = 0
	}

	if seq := fb.snapshot(g.pix); seq != g.seq {
		g.fbImg.WritePixels(g.pix)
		g.seq = seq
	}
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.Size()
}
