// Package imagedata decodes PNG files into flat 8-bit RGBA buffers.
package imagedata

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log/slog"
	"os"
)

// Image is a decoded picture. Pix holds Width*Height pixels, four bytes
// each in R, G, B, A order with straight alpha, rows top to bottom with no
// padding.
type Image struct {
	Pix    []byte
	Width  int
	Height int
}

// At returns the RGBA bytes of pixel (x, y).
func (img *Image) At(x, y int) [4]byte {
	i := (y*img.Width + x) * 4
	return [4]byte(img.Pix[i : i+4])
}

// Load reads and decodes the PNG at path.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	return FromImage(src), nil
}

// FromImage converts any decoded image into the flat RGBA layout.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	dst, ok := src.(*image.NRGBA)
	if !ok || dst.Stride != b.Dx()*4 || b.Min != (image.Point{}) {
		dst = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	}
	return &Image{Pix: dst.Pix, Width: b.Dx(), Height: b.Dy()}
}

// Loader loads images and logs failures instead of returning them.
type Loader struct {
	Logger *slog.Logger
}

// Load returns the decoded image, or nil after logging why it could not
// be read.
func (l *Loader) Load(path string) *Image {
	img, err := Load(path)
	if err != nil {
		logger := l.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("PNGLoader: failed to load image", "path", path, "error", err)
		return nil
	}
	return img
}
