package main

import (
	"fmt"
	"image/color"
	"io"
	"strconv"

	"github.com/vecpath/kite/raster"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	ini "gopkg.in/ini.v1"
)

// settings holds the values read from the INI file.
//
//	[log]
//	LEVEL = info
//
//	[render]
//	WIDTH = 512
//	HEIGHT = 512
//	TOLERANCE = 0.1
//	FILL = #000000
//	BACKGROUND = #ffffff
type settings struct {
	LogLevel string

	Width      int
	Height     int
	Tolerance  float64
	Fill       color.RGBA
	Background color.RGBA
}

func defaultSettings() settings {
	return settings{
		LogLevel:   "info",
		Width:      512,
		Height:     512,
		Tolerance:  raster.DefaultTolerance,
		Fill:       color.RGBA{0, 0, 0, 0xff},
		Background: color.RGBA{0xff, 0xff, 0xff, 0xff},
	}
}

// loadSettings reads the INI file at path. An empty path yields the defaults.
func loadSettings(path string) (settings, error) {
	cfg := ini.Empty()
	if path != "" {
		var err error
		// Colors start with '#', so only treat it as a comment after a space.
		cfg, err = ini.LoadSources(ini.LoadOptions{SpaceBeforeInlineComment: true}, path)
		if err != nil {
			return settings{}, fmt.Errorf("loading config %s: %w", path, err)
		}
	}

	def := defaultSettings()
	s := settings{
		LogLevel:  cfg.Section("log").Key("LEVEL").MustString(def.LogLevel),
		Width:     cfg.Section("render").Key("WIDTH").MustInt(def.Width),
		Height:    cfg.Section("render").Key("HEIGHT").MustInt(def.Height),
		Tolerance: cfg.Section("render").Key("TOLERANCE").MustFloat64(def.Tolerance),
	}
	var err error
	s.Fill, err = parseColor(cfg.Section("render").Key("FILL").MustString("#000000"))
	if err != nil {
		return settings{}, fmt.Errorf("[render] FILL: %w", err)
	}
	s.Background, err = parseColor(cfg.Section("render").Key("BACKGROUND").MustString("#ffffff"))
	if err != nil {
		return settings{}, fmt.Errorf("[render] BACKGROUND: %w", err)
	}
	return s, nil
}

// parseColor parses an opaque color in #rrggbb notation.
func parseColor(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}, nil
}

func newLogger(w io.Writer, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), lvl)), nil
}
