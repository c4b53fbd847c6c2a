package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/dfaivre/go-hybrid-tracer/pkg/app"
)

// RenderInteractive opens the windowed viewer with progressive refinement
// and camera controls.
func RenderInteractive(ctx *cli.Context) error {
	setupLogging(ctx)

	s, err := loadScene(ctx)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}

	viewer := app.New(s, app.Config{
		Width:      ctx.Int("width"),
		Height:     ctx.Int("height"),
		NumChunks:  ctx.Int("chunks"),
		NumWorkers: ctx.Int("workers"),
	})
	return viewer.Run()
}
