package main

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/vecpath/kite"
	"github.com/vecpath/kite/raster"
	"go.uber.org/zap"
)

func (st *state) renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "Fill a scene and write it as a PNG image",
		ArgsUsage: "[scene]",
		Action:    st.runRender,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "out",
				Aliases:  []string{"o"},
				Usage:    "Path of the PNG file to write (will overwrite if exists)",
				Required: true,
			},
			&cli.IntFlag{
				Name:    "width",
				EnvVars: []string{"KITE_WIDTH"},
				Usage:   "Image width in pixels; overrides [render] WIDTH",
			},
			&cli.IntFlag{
				Name:    "height",
				EnvVars: []string{"KITE_HEIGHT"},
				Usage:   "Image height in pixels; overrides [render] HEIGHT",
			},
		},
	}
}

func (st *state) runRender(ctx *cli.Context) error {
	width, height := st.settings.Width, st.settings.Height
	if ctx.IsSet("width") {
		width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		height = ctx.Int("height")
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}

	segs, err := st.loadScene(ctx)
	if err != nil {
		return err
	}

	rc := raster.NewContext(width, height)
	rc.Tolerance = st.settings.Tolerance
	kite.WritePath(rc, segs)
	if err := rc.Err(); err != nil {
		return err
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(st.settings.Background), image.Point{}, draw.Src)
	rc.Fill(dst, image.NewUniform(st.settings.Fill))

	out := ctx.String("out")
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, dst); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	st.logger.Info("rendered scene",
		zap.String("out", out),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("segments", len(segs)))
	return nil
}
