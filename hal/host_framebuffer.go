package hal

import (
	"image"
	"image/color"
	"sync"
)

type hostFramebuffer struct {
	mu    sync.Mutex
	back  *image.RGBA
	front *image.RGBA
	seq   uint64
}

// NewFramebuffer returns an in-memory framebuffer of the given size.
func NewFramebuffer(width, height int) Framebuffer {
	return newHostFramebuffer(width, height)
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	r := image.Rect(0, 0, width, height)
	return &hostFramebuffer{
		back:  image.NewRGBA(r),
		front: image.NewRGBA(r),
	}
}

func (f *hostFramebuffer) Width() int       { return f.back.Rect.Dx() }
func (f *hostFramebuffer) Height() int      { return f.back.Rect.Dy() }
func (f *hostFramebuffer) Size() (int, int) { return f.Width(), f.Height() }

func (f *hostFramebuffer) SetPixel(x, y int, c color.RGBA) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !(image.Point{X: x, Y: y}).In(f.back.Rect) {
		return
	}
	f.back.SetRGBA(x, y, c)
}

func (f *hostFramebuffer) FillRect(x, y, w, h int, c color.RGBA) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fill(image.Rect(x, y, x+w, y+h), c)
}

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fill(f.back.Rect, color.RGBA{R: r, G: g, B: b, A: 0xFF})
}

func (f *hostFramebuffer) fill(r image.Rectangle, c color.RGBA) {
	r = r.Intersect(f.back.Rect)
	if r.Empty() {
		return
	}
	row := f.back.PixOffset(r.Min.X, r.Min.Y)
	n := r.Dx() * 4
	pix := f.back.Pix
	for i := row; i < row+n; i += 4 {
		pix[i+0] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = c.A
	}
	for y := r.Min.Y + 1; y < r.Max.Y; y++ {
		off := f.back.PixOffset(r.Min.X, y)
		copy(pix[off:off+n], pix[row:row+n])
	}
}

// Present publishes the back buffer.
func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(f.front.Pix, f.back.Pix)
	f.seq++
	return nil
}

func (f *hostFramebuffer) Image() *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	img := image.NewRGBA(f.front.Rect)
	copy(img.Pix, f.front.Pix)
	return img
}

// snapshot copies the presented frame into dst and returns its sequence
// number.
func (f *hostFramebuffer) snapshot(dst []byte) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.front.Pix)
	return f.seq
}
