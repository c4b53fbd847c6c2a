package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/dfaivre/go-hybrid-tracer/cmd"
)

func sceneFlags(extra ...cli.Flag) []cli.Flag {
	flags := []cli.Flag{
		cli.StringFlag{
			Name:  "scene, s",
			Value: "primitives",
			Usage: "built-in scene name (see the scenes command)",
		},
		cli.StringFlag{
			Name:  "file, f",
			Usage: "YAML scene description, overrides --scene",
		},
		cli.IntFlag{
			Name:  "width",
			Value: 800,
			Usage: "frame width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 600,
			Usage: "frame height",
		},
		cli.IntFlag{
			Name:  "chunks",
			Value: 64,
			Usage: "pixel chunks per frame",
		},
		cli.IntFlag{
			Name:  "workers",
			Value: 0,
			Usage: "render workers, 0 means one per CPU",
		},
	}
	return append(flags, extra...)
}

func main() {
	app := cli.NewApp()
	app.Name = "hybrid-tracer"
	app.Usage = "progressive hybrid ray tracing and ray marching renderer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a still frame to a PNG file",
			Description: `
Render a scene headlessly. With --frames greater than one the renderer
accumulates that many progressive passes before resolving the image.`,
			Flags: sceneFlags(
				cli.IntFlag{
					Name:  "frames",
					Value: 16,
					Usage: "progressive passes to accumulate",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			),
			Action: cmd.RenderFrame,
		},
		{
			Name:  "view",
			Usage: "open the interactive viewer",
			Description: `
Open a window with progressive refinement. WASD moves the camera, dragging
with the left mouse button rotates it; any change restarts accumulation.`,
			Flags:  sceneFlags(),
			Action: cmd.RenderInteractive,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: cmd.ListScenes,
		},
	}

	app.Run(os.Args)
}
