package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTexture(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{B: 255, A: 255})

	path := filepath.Join(t.TempDir(), "tex.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	tex, err := LoadTexture(path)
	if err != nil {
		t.Fatalf("LoadTexture() error: %v", err)
	}

	if tex.Width != 2 || tex.Height != 1 {
		t.Errorf("size = %dx%d, want 2x1", tex.Width, tex.Height)
	}
	if len(tex.Bytes) != 6 {
		t.Fatalf("bytes = %d, want 6", len(tex.Bytes))
	}
	if tex.Bytes[0] != 255 || tex.Bytes[1] != 0 || tex.Bytes[2] != 0 {
		t.Errorf("pixel 0 = %v, want red", tex.Bytes[0:3])
	}
	if tex.Bytes[3] != 0 || tex.Bytes[5] != 255 {
		t.Errorf("pixel 1 = %v, want blue", tex.Bytes[3:6])
	}
}

func TestLoadTextureMissingFile(t *testing.T) {
	if _, err := LoadTexture(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("LoadTexture() succeeded on missing file")
	}
}
