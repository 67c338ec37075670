package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v2"
	"github.com/vecpath/kite"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type sceneFile struct {
	Transform []float64        `json:"transform" yaml:"transform"`
	Segments  []map[string]any `json:"segments" yaml:"segments"`
}

// loadScene reads the scene named by the first argument, or standard input if
// there is none or it is "-".
func (st *state) loadScene(ctx *cli.Context) ([]kite.Segment, error) {
	name := ctx.Args().First()
	var data []byte
	var err error
	if name == "" || name == "-" {
		data, err = io.ReadAll(ctx.App.Reader)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, err
	}
	segs, err := parseScene(data, isYAML(name, data))
	if err != nil {
		return nil, fmt.Errorf("reading scene %s: %w", name, err)
	}
	st.logger.Debug("loaded scene", zap.String("path", name), zap.Int("segments", len(segs)))
	return segs, nil
}

func isYAML(name string, data []byte) bool {
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		return true
	case ".json":
		return false
	}
	return !bytes.HasPrefix(bytes.TrimSpace(data), []byte("{"))
}

func parseScene(data []byte, yamlFormat bool) ([]kite.Segment, error) {
	json := jsoniter.ConfigCompatibleWithStandardLibrary

	var f sceneFile
	var err error
	if yamlFormat {
		err = yaml.Unmarshal(data, &f)
	} else {
		err = json.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, err
	}
	m, err := sceneTransform(f.Transform)
	if err != nil {
		return nil, err
	}

	segs := make([]kite.Segment, 0, len(f.Segments))
	for i, raw := range f.Segments {
		// Re-encode the generic record so that both formats go through the
		// segment's own JSON decoding.
		b, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		seg, err := kite.UnmarshalSegment(b)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		if m.Type != kite.TypeIdentity {
			seg, err = seg.Transformed(m)
			if err != nil {
				return nil, fmt.Errorf("segment %d: %w", i, err)
			}
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

func sceneTransform(entries []float64) (kite.Matrix3, error) {
	switch len(entries) {
	case 0:
		return kite.Identity, nil
	case 9:
		e := entries
		m := kite.RowMajor(e[0], e[1], e[2], e[3], e[4], e[5], e[6], e[7], e[8])
		if err := m.Validate(); err != nil {
			return kite.Matrix3{}, err
		}
		if m.Type == kite.TypeOther {
			return kite.Matrix3{}, fmt.Errorf("transform %v is not affine", m)
		}
		return m, nil
	default:
		return kite.Matrix3{}, fmt.Errorf("transform has %d entries, want 9", len(entries))
	}
}
