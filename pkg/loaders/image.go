package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/dfaivre/go-hybrid-tracer/pkg/material"
)

// LoadTexture decodes an image file into the packed RGB byte layout the
// texture sampler reads. The format is detected from the file header.
func LoadTexture(path string) (material.Texture, error) {
	file, err := os.Open(path)
	if err != nil {
		return material.Texture{}, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return material.Texture{}, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}

	return TextureFromImage(path, img), nil
}

// TextureFromImage converts any decoded image to the 3-byte RGB row-major
// buffer used by the samplers.
func TextureFromImage(path string, img image.Image) material.Texture {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	bytes := make([]byte, width*height*3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], keep the high byte
			i := (y*width + x) * 3
			bytes[i] = byte(r >> 8)
			bytes[i+1] = byte(g >> 8)
			bytes[i+2] = byte(b >> 8)
		}
	}

	return material.Texture{
		Path:   path,
		Width:  width,
		Height: height,
		Bytes:  bytes,
	}
}
