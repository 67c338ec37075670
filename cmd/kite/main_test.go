package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vecpath/kite"
)

type runResult struct {
	Stdout string
	Stderr string
}

func runTestApp(stdin string, args ...string) (runResult, error) {
	outBuf := new(strings.Builder)
	errBuf := new(strings.Builder)
	app := newApp()
	app.Writer = outBuf
	app.ErrWriter = errBuf
	app.Reader = strings.NewReader(stdin)
	err := app.Run(append([]string{"kite"}, args...))
	return runResult{outBuf.String(), errBuf.String()}, err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const polylineScene = `{
  "segments": [
    {"type": "Line", "startX": 0, "startY": 0, "endX": 10, "endY": 0},
    {"type": "Line", "startX": 10, "startY": 0, "endX": 10, "endY": 10}
  ]
}`

func TestSVG(t *testing.T) {
	path := writeFile(t, "scene.json", polylineScene)
	r, err := runTestApp("", "svg", path)
	require.NoError(t, err)
	assert.Equal(t, "M 0 0 L 10 0 L 10 10\n", r.Stdout)
}

func TestSVGFromStdinYAML(t *testing.T) {
	scene := `
transform: [1, 0, 5, 0, 1, 0, 0, 0, 1]
segments:
  - type: Line
    startX: 0
    startY: 0
    endX: 10
    endY: 0
`
	r, err := runTestApp(scene, "svg", "-")
	require.NoError(t, err)
	assert.Equal(t, "M 5 0 L 15 0\n", r.Stdout)
}

func TestBounds(t *testing.T) {
	path := writeFile(t, "scene.json", polylineScene)
	r, err := runTestApp("", "bounds", path)
	require.NoError(t, err)
	assert.Contains(t, r.Stdout, "0 Line [0, 10]×[0, 0]\n")
	assert.Contains(t, r.Stdout, "1 Line [10, 10]×[0, 10]\n")
	assert.Contains(t, r.Stdout, "scene [0, 10]×[0, 10]\n")
}

func decodeHits(t *testing.T, out string) hitReport {
	t.Helper()
	var report hitReport
	json := jsoniter.ConfigCompatibleWithStandardLibrary
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	return report
}

func TestHitLine(t *testing.T) {
	path := writeFile(t, "scene.json", polylineScene)
	r, err := runTestApp("", "hit", "--ray", "5,-5,0,1", path)
	require.NoError(t, err)

	report := decodeHits(t, r.Stdout)
	require.Len(t, report.Hits, 1)
	hit := report.Hits[0]
	assert.Equal(t, 0, hit.Segment)
	assert.InDelta(t, 5, hit.Distance, 1e-9)
	assert.InDelta(t, 5, hit.X, 1e-9)
	assert.InDelta(t, 0, hit.Y, 1e-9)
	assert.InDelta(t, 0.5, hit.T, 1e-9)
	assert.Equal(t, -1, report.Winding)
}

func TestHitCircle(t *testing.T) {
	scene := `{"segments": [{"type": "Arc", "centerX": 0, "centerY": 0, "radius": 1,
		"startAngle": 0, "endAngle": 6.283185307179586, "anticlockwise": false}]}`
	path := writeFile(t, "circle.json", scene)
	r, err := runTestApp("", "hit", "--ray", "-5,0,1,0", path)
	require.NoError(t, err)

	report := decodeHits(t, r.Stdout)
	require.Len(t, report.Hits, 2)
	assert.InDelta(t, 4, report.Hits[0].Distance, 1e-9)
	assert.InDelta(t, 6, report.Hits[1].Distance, 1e-9)
	assert.Equal(t, -report.Hits[0].Wind, report.Hits[1].Wind)
	assert.Equal(t, 0, report.Winding)
}

func TestHitInvalidRay(t *testing.T) {
	path := writeFile(t, "scene.json", polylineScene)
	_, err := runTestApp("", "hit", "--ray", "1,2,3", path)
	assert.ErrorContains(t, err, "invalid ray")

	_, err = runTestApp("", "hit", "--ray", "1,2,0,0", path)
	assert.ErrorContains(t, err, "non-zero")
}

func TestOverlaps(t *testing.T) {
	lines := `{"segments": [
		{"type": "Line", "startX": 0, "startY": 0, "endX": 10, "endY": 0},
		{"type": "Line", "startX": 5, "startY": 0, "endX": 15, "endY": 0},
		{"type": "Line", "startX": 2, "startY": -1, "endX": 2, "endY": 1}
	]}`
	r, err := runTestApp("", "overlaps", writeFile(t, "lines.json", lines))
	require.NoError(t, err)
	assert.Contains(t, r.Stdout, "0 1 overlap tB = 1·tA + -0.5 on [0.5, 1]\n")
	assert.Contains(t, r.Stdout, "0 2 intersection (2, 0) 0.2 0.5\n")
	assert.NotContains(t, r.Stdout, "0 1 intersection")

	arcs := `{"segments": [
		{"type": "EllipticalArc", "centerX": 0, "centerY": 0, "radiusX": 4, "radiusY": 2,
		 "rotation": 0, "startAngle": 0, "endAngle": 3.141592653589793, "anticlockwise": false},
		{"type": "EllipticalArc", "centerX": 0, "centerY": 0, "radiusX": 4, "radiusY": 2,
		 "rotation": 0, "startAngle": 1.5707963267948966, "endAngle": 4.71238898038469, "anticlockwise": false}
	]}`
	r, err = runTestApp("", "overlaps", writeFile(t, "arcs.json", arcs))
	require.NoError(t, err)
	assert.Contains(t, r.Stdout, "0 1 ellipses matching\n")
	assert.Contains(t, r.Stdout, "0 1 overlap")
}

func TestRender(t *testing.T) {
	scene := writeFile(t, "circle.json", `{"segments": [{"type": "Arc", "centerX": 16, "centerY": 16,
		"radius": 10, "startAngle": 0, "endAngle": 6.283185307179586, "anticlockwise": false}]}`)
	out := filepath.Join(t.TempDir(), "out.png")
	_, err := runTestApp("", "render", "--out", out, "--width", "32", "--height", "32", scene)
	require.NoError(t, err)

	img := decodePNG(t, out)
	assert.Equal(t, image.Rect(0, 0, 32, 32), img.Bounds())
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, color.RGBAModel.Convert(img.At(0, 0)))
	center := color.RGBAModel.Convert(img.At(16, 16)).(color.RGBA)
	assert.Less(t, center.R, uint8(0x10))
}

func TestRenderConfig(t *testing.T) {
	config := writeFile(t, "kite.ini", `
[render]
WIDTH = 20
HEIGHT = 10
FILL = #ff0000
`)
	scene := writeFile(t, "circle.yaml", `
segments:
  - {type: Arc, centerX: 5, centerY: 5, radius: 3, startAngle: 0, endAngle: 6.283185307179586, anticlockwise: false}
`)
	out := filepath.Join(t.TempDir(), "out.png")
	_, err := runTestApp("", "--config", config, "render", "--out", out, scene)
	require.NoError(t, err)

	img := decodePNG(t, out)
	assert.Equal(t, image.Rect(0, 0, 20, 10), img.Bounds())
	center := color.RGBAModel.Convert(img.At(5, 5)).(color.RGBA)
	assert.Greater(t, center.R, uint8(0xf0))
	assert.Less(t, center.G, uint8(0x10))
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func TestLogging(t *testing.T) {
	path := writeFile(t, "scene.json", polylineScene)

	r, err := runTestApp("", "--log-level", "debug", "svg", path)
	require.NoError(t, err)
	assert.Contains(t, r.Stderr, "loaded scene")

	t.Setenv("KITE_LOG_LEVEL", "error")
	r, err = runTestApp("", "svg", path)
	require.NoError(t, err)
	assert.Empty(t, r.Stderr)

	_, err = runTestApp("", "--log-level", "loud", "svg", path)
	assert.Error(t, err)
}

func TestSceneErrors(t *testing.T) {
	_, err := runTestApp("", "svg", writeFile(t, "bad.json", `{"segments": [{"type": "Bezier"}]}`))
	assert.ErrorIs(t, err, kite.ErrWrongSegmentType)

	_, err = runTestApp("", "svg", writeFile(t, "bad.json", `{"segments": [
		{"type": "Arc", "centerX": 0, "centerY": 0, "radius": 1, "startAngle": 0, "endAngle": 7, "anticlockwise": false}
	]}`))
	assert.ErrorIs(t, err, kite.ErrAmbiguousSpan)

	_, err = runTestApp("", "svg", writeFile(t, "bad.json", `{"transform": [1, 2, 3], "segments": []}`))
	assert.ErrorContains(t, err, "want 9")

	_, err = runTestApp("", "svg", writeFile(t, "bad.json", `{"transform": [1, 0, 0, 0, 1, 0, 1, 0, 1], "segments": []}`))
	assert.ErrorContains(t, err, "not affine")
}

func TestLoadSettings(t *testing.T) {
	s, err := loadSettings("")
	require.NoError(t, err)
	assert.Equal(t, defaultSettings(), s)

	_, err = loadSettings(writeFile(t, "kite.ini", "[render]\nBACKGROUND = white\n"))
	assert.ErrorContains(t, err, "BACKGROUND")

	_, err = loadSettings(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("#12ab3C")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0x12, 0xab, 0x3c, 0xff}, c)

	for _, s := range []string{"", "#123", "123456", "#12345g"} {
		_, err := parseColor(s)
		assert.Error(t, err, s)
	}
}
