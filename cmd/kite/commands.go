package main

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v2"
	"github.com/vecpath/kite"
	"go.uber.org/zap"
)

func (st *state) svgCommand() *cli.Command {
	return &cli.Command{
		Name:      "svg",
		Usage:     "Print the SVG path data of a scene",
		ArgsUsage: "[scene]",
		Action:    st.runSVG,
	}
}

func (st *state) runSVG(ctx *cli.Context) error {
	segs, err := st.loadScene(ctx)
	if err != nil {
		return err
	}
	if err := kite.WriteSVG(ctx.App.Writer, segs); err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.App.Writer)
	return err
}

func (st *state) boundsCommand() *cli.Command {
	return &cli.Command{
		Name:      "bounds",
		Usage:     "Print the bounding box of every segment and of the whole scene",
		ArgsUsage: "[scene]",
		Action:    st.runBounds,
	}
}

func (st *state) runBounds(ctx *cli.Context) error {
	segs, err := st.loadScene(ctx)
	if err != nil {
		return err
	}
	w := ctx.App.Writer
	union := kite.Nothing
	for i, seg := range segs {
		bounds := seg.BoundingBox()
		union = union.Union(bounds)
		if _, err := fmt.Fprintf(w, "%d %s %v\n", i, seg.Serialize().SegmentType(), bounds); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "scene %v\n", union)
	return err
}

func (st *state) hitCommand() *cli.Command {
	return &cli.Command{
		Name:      "hit",
		Usage:     "Cast a ray through a scene and print its hits and winding number as JSON",
		ArgsUsage: "[scene]",
		Action:    st.runHit,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "ray",
				Usage:    "Ray as x,y,dx,dy",
				Required: true,
			},
		},
	}
}

type hitRecord struct {
	Segment  int     `json:"segment"`
	Distance float64 `json:"distance"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	NormalX  float64 `json:"normalX"`
	NormalY  float64 `json:"normalY"`
	Wind     int     `json:"wind"`
	T        float64 `json:"t"`
}

type hitReport struct {
	Hits    []hitRecord `json:"hits"`
	Winding int         `json:"winding"`
}

func parseRay(s string) (kite.Ray2, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return kite.Ray2{}, fmt.Errorf("invalid ray %q, want x,y,dx,dy", s)
	}
	var v [4]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return kite.Ray2{}, fmt.Errorf("invalid ray %q: %w", s, err)
		}
		v[i] = f
	}
	dir := kite.Vec(v[2], v[3])
	if dir.Hypot2() == 0 || !dir.IsFinite() {
		return kite.Ray2{}, fmt.Errorf("invalid ray %q: direction must be finite and non-zero", s)
	}
	return kite.NewRay2(kite.Pt(v[0], v[1]), dir), nil
}

func (st *state) runHit(ctx *cli.Context) error {
	ray, err := parseRay(ctx.String("ray"))
	if err != nil {
		return err
	}
	segs, err := st.loadScene(ctx)
	if err != nil {
		return err
	}

	report := hitReport{Hits: []hitRecord{}}
	for i, seg := range segs {
		for _, hit := range seg.Intersection(ray) {
			report.Hits = append(report.Hits, hitRecord{
				Segment:  i,
				Distance: hit.Distance,
				X:        hit.Point.X,
				Y:        hit.Point.Y,
				NormalX:  hit.Normal.X,
				NormalY:  hit.Normal.Y,
				Wind:     hit.Wind,
				T:        hit.T,
			})
			report.Winding += hit.Wind
		}
	}
	slices.SortStableFunc(report.Hits, func(a, b hitRecord) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	st.logger.Debug("cast ray", zap.Stringer("ray", ray), zap.Int("hits", len(report.Hits)))

	json := jsoniter.ConfigCompatibleWithStandardLibrary
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(ctx.App.Writer, "%s\n", out)
	return err
}

func (st *state) overlapsCommand() *cli.Command {
	return &cli.Command{
		Name:      "overlaps",
		Usage:     "Print the overlaps and intersections of every pair of segments",
		ArgsUsage: "[scene]",
		Action:    st.runOverlaps,
	}
}

func (st *state) runOverlaps(ctx *cli.Context) error {
	segs, err := st.loadScene(ctx)
	if err != nil {
		return err
	}
	w := ctx.App.Writer
	for i, a := range segs {
		for j := i + 1; j < len(segs); j++ {
			b := segs[j]
			ea, okA := a.(*kite.EllipticalArc)
			eb, okB := b.(*kite.EllipticalArc)
			if okA && okB {
				typ := kite.ClassifyOverlap(ea, eb, kite.DefaultOverlapEpsilon)
				if _, err := fmt.Fprintf(w, "%d %d ellipses %v\n", i, j, typ); err != nil {
					return err
				}
			}
			for _, o := range kite.Overlaps(a, b) {
				if _, err := fmt.Fprintf(w, "%d %d overlap %v\n", i, j, o); err != nil {
					return err
				}
			}
			for _, x := range kite.Intersect(a, b) {
				if _, err := fmt.Fprintf(w, "%d %d intersection %v %g %g\n", i, j, x.Point, x.AT, x.BT); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
