package cmd

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/dfaivre/go-hybrid-tracer/pkg/scene"
)

// ListScenes prints the built-in demo scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Scene"})
	for _, name := range scene.Names() {
		table.Append([]string{name})
	}
	table.Render()
	return nil
}
