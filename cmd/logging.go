package cmd

import (
	"github.com/urfave/cli"

	"github.com/dfaivre/go-hybrid-tracer/pkg/log"
)

var logger = log.New("tracer")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
