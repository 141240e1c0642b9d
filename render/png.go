package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
)

var fastPNG = png.Encoder{CompressionLevel: png.BestSpeed}

// EncodePNG writes img to w as PNG, favouring speed over size.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := fastPNG.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
