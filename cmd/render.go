package cmd

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/urfave/cli"

	"github.com/dfaivre/go-hybrid-tracer/pkg/loaders"
	"github.com/dfaivre/go-hybrid-tracer/pkg/renderer"
	"github.com/dfaivre/go-hybrid-tracer/pkg/scene"
)

// loadScene resolves the scene from either the file flag (YAML description)
// or the scene flag (built-in demo scene name).
func loadScene(ctx *cli.Context) (*scene.Scene, error) {
	if path := ctx.String("file"); path != "" {
		return loaders.LoadScene(path)
	}
	return scene.ByName(ctx.String("scene"), loaders.LoadTexture)
}

// RenderFrame renders a still image headlessly and writes it as PNG.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	s, err := loadScene(ctx)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}

	width := ctx.Int("width")
	height := ctx.Int("height")
	frames := ctx.Int("frames")
	if frames < 1 {
		frames = 1
	}
	if frames > 1 {
		s.EnableAccumulation = true
	}
	s.MaxFrames = frames

	camera := renderer.NewCameraWithPose(width, height, s.CameraPosition, s.CameraDirection)
	r := renderer.NewRenderer(ctx.Int("chunks"), ctx.Int("workers"))
	img := make([]byte, width*height*4)

	logger.Noticef("rendering %dx%d, %d frame(s)", width, height, frames)

	var last renderer.RenderStats
	updated := true
	for frame := 0; frame < frames; frame++ {
		stats, ok := r.Render(s, camera, img, updated)
		if !ok {
			break
		}
		last = stats
		updated = false
	}
	last.WriteTable(os.Stdout)

	return writePNG(ctx.String("out"), width, height, img)
}

func writePNG(path string, width, height int, pixels []byte) error {
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	copy(out.Pix, pixels)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, out); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	logger.Noticef("wrote %s", path)
	return nil
}
