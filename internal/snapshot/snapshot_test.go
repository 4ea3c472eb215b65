package snapshot

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 13, 13, 255})
	img.SetRGBA(2, 1, color.RGBA{0, 0, 100, 255})
	return img
}

func TestSaveRoundTrip(t *testing.T) {
	decoders := map[string]func(*os.File) (image.Image, error){
		"frame.png":  func(f *os.File) (image.Image, error) { return png.Decode(f) },
		"frame.bmp":  func(f *os.File) (image.Image, error) { return bmp.Decode(f) },
		"frame.tiff": func(f *os.File) (image.Image, error) { return tiff.Decode(f) },
		"frame.TIF":  func(f *os.File) (image.Image, error) { return tiff.Decode(f) },
	}
	want := testImage()
	for name, decode := range decoders {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out", "nested", name)
			require.NoError(t, Save(path, want))

			f, err := os.Open(path)
			require.NoError(t, err)
			defer f.Close()
			got, err := decode(f)
			require.NoError(t, err)

			assert.Equal(t, want.Bounds(), got.Bounds())
			for _, p := range []image.Point{{0, 0}, {2, 1}, {1, 1}} {
				assert.Equal(t, want.RGBAAt(p.X, p.Y), color.RGBAModel.Convert(got.At(p.X, p.Y)), "%v", p)
			}
		})
	}
}

func TestSaveUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.gif")
	assert.ErrorIs(t, Save(path, testImage()), ErrUnknownFormat)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFramePath(t *testing.T) {
	assert.Equal(t, "out/f-007.png", FramePath("out/f-%03d.png", 7, 10))
	assert.Equal(t, "shot.png", FramePath("shot.png", 0, 1))
	assert.Equal(t, "shot-002.bmp", FramePath("shot.bmp", 2, 3))
}
