// Command kite inspects and renders scenes made of lines, circular arcs and
// elliptical arcs.
//
// A scene is a JSON or YAML document with an optional "transform" (nine
// numbers, row-major) that is applied to every segment, and a list of
// serialized "segments":
//
//	{
//	  "transform": [1, 0, 0, 0, 1, 0, 0, 0, 1],
//	  "segments": [
//	    {"type": "Line", "startX": 0, "startY": 0, "endX": 10, "endY": 0}
//	  ]
//	}
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// state is shared by all commands of one run.
type state struct {
	settings settings
	logger   *zap.Logger
}

func newApp() *cli.App {
	st := &state{
		settings: defaultSettings(),
		logger:   zap.NewNop(),
	}

	app := cli.NewApp()
	app.Name = "kite"
	app.Usage = "Inspect and render scenes of 2D segments"
	app.Description = `Scenes are read from the file named by the first argument, or from standard input.`
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			EnvVars: []string{"KITE_CONFIG"},
			Usage:   "Load settings from an INI file",
		},
		&cli.StringFlag{
			Name:    "log-level",
			EnvVars: []string{"KITE_LOG_LEVEL"},
			Usage:   "Log level (debug, info, warn, error); overrides [log] LEVEL",
		},
	}
	app.Before = st.setup
	app.After = func(*cli.Context) error {
		// Syncing a console writer fails on some platforms; there is nothing
		// left to flush in that case.
		_ = st.logger.Sync()
		return nil
	}
	app.Commands = []*cli.Command{
		st.svgCommand(),
		st.boundsCommand(),
		st.hitCommand(),
		st.overlapsCommand(),
		st.renderCommand(),
	}
	return app
}

func (st *state) setup(ctx *cli.Context) error {
	s, err := loadSettings(ctx.String("config"))
	if err != nil {
		return err
	}
	if ctx.IsSet("log-level") {
		s.LogLevel = ctx.String("log-level")
	}
	logger, err := newLogger(ctx.App.ErrWriter, s.LogLevel)
	if err != nil {
		return err
	}
	st.settings = s
	st.logger = logger
	if path := ctx.String("config"); path != "" {
		logger.Debug("loaded settings", zap.String("path", path))
	}
	return nil
}
