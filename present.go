package orrery

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"
)

// Format is an output image encoding.
type Format int

const (
	_ Format = iota
	PNG
	JPEG
	BMP
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case BMP:
		return "bmp"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatFromPath picks a format by file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := lowerExt(path); ext {
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".bmp":
		return BMP, nil
	default:
		return 0, fmt.Errorf("orrery: unsupported image format %q", ext)
	}
}

// Present copies the framebuffer into a display-ordered image. The
// framebuffer keeps row 0 at the bottom; the image has it at the top.
func Present(fb *Framebuffer) *image.NRGBA {
	w, h := fb.Width(), fb.Height()
	im := image.NewNRGBA(image.Rect(0, 0, w, h))
	PresentTo(fb, im)
	return im
}

// PresentTo is Present into an existing image of the framebuffer's size.
func PresentTo(fb *Framebuffer, im *image.NRGBA) {
	w, h := fb.Width(), fb.Height()
	cells := fb.Cells()
	for y := 0; y < h; y++ {
		row := cells[(h-1-y)*w : (h-y)*w]
		pix := im.Pix[y*im.Stride:]
		for x, c := range row {
			n := c.Color.NRGBA()
			i := x * 4
			pix[i+0] = n.R
			pix[i+1] = n.G
			pix[i+2] = n.B
			pix[i+3] = n.A
		}
	}
}

// Scale resizes a presented image for output. A zero width or height
// keeps the aspect ratio.
func Scale(im image.Image, width, height uint) image.Image {
	return resize.Resize(width, height, im, resize.Bilinear)
}

// Encode writes im to w in the given format.
func Encode(w io.Writer, im image.Image, format Format) error {
	switch format {
	case PNG:
		return png.Encode(w, im)
	case JPEG:
		return jpeg.Encode(w, im, &jpeg.Options{Quality: 95})
	case BMP:
		return bmp.Encode(w, im)
	default:
		return fmt.Errorf("orrery: cannot encode %v", format)
	}
}

// SaveImage encodes im to path, choosing the format by extension.
// Missing parent directories are created.
func SaveImage(path string, im image.Image) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("orrery: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(file, im, format); err != nil {
		file.Close()
		return fmt.Errorf("orrery: encode %s: %w", path, err)
	}
	return file.Close()
}
