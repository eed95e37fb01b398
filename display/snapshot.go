package display

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/bmp"
)

// Snapshot reads the back framebuffer and writes it to path. The format is
// chosen by extension: .bmp, otherwise PNG.
func (d *Display) Snapshot(path string) error {
	width, height := d.window.GetFramebufferSize()
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	img := imageFromPixels(width, height, pixels)

	f, err := os.Create(path)
	if err != nil {
		return &Error{Op: "snapshot", Err: err}
	}
	if err := encodeImage(f, filepath.Ext(path), img); err != nil {
		f.Close()
		return &Error{Op: "snapshot", Err: err}
	}
	if err := f.Close(); err != nil {
		return &Error{Op: "snapshot", Err: err}
	}
	d.log.Info("snapshot written", "path", path, "width", width, "height", height)
	return nil
}

// imageFromPixels turns tightly packed RGBA rows, bottom row first as GL
// returns them, into an image with the top row first.
func imageFromPixels(width, height int, pixels []byte) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	stride := width * 4
	for y := 0; y < height; y++ {
		src := pixels[(height-1-y)*stride : (height-y)*stride]
		copy(img.Pix[y*img.Stride:y*img.Stride+stride], src)
	}
	return img
}

func encodeImage(w io.Writer, ext string, img image.Image) error {
	switch strings.ToLower(ext) {
	case ".bmp":
		return bmp.Encode(w, img)
	case ".png", "":
		return png.Encode(w, img)
	default:
		return fmt.Errorf("unsupported snapshot format %q", ext)
	}
}
