package cmd

import (
	"fmt"
	"log/slog"

	"github.com/gefkit/platform/graphics/imagedata"
)

// Image decodes a PNG and prints a summary of it.
type Image struct {
	File string `arg:"" help:"PNG file to decode" type:"existingfile"`
}

// Run is called by Kong when the image command is executed.
func (i *Image) Run(logger *slog.Logger) error {
	img := (&imagedata.Loader{Logger: logger}).Load(i.File)
	if img == nil {
		return fmt.Errorf("could not load %s", i.File)
	}
	fmt.Println(describeImage(i.File, img))
	return nil
}

func describeImage(name string, img *imagedata.Image) string {
	var sum [4]uint64
	var transparent int
	for p := 0; p+3 < len(img.Pix); p += 4 {
		for c := range sum {
			sum[c] += uint64(img.Pix[p+c])
		}
		if img.Pix[p+3] == 0 {
			transparent++
		}
	}
	n := uint64(img.Width * img.Height)
	if n == 0 {
		return fmt.Sprintf("%s: empty image", name)
	}
	return fmt.Sprintf("%s: %dx%d RGBA, %d bytes, mean #%02x%02x%02x alpha %d, %d transparent pixels",
		name, img.Width, img.Height, len(img.Pix),
		sum[0]/n, sum[1]/n, sum[2]/n, sum[3]/n, transparent)
}
