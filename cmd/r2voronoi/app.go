// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/2dChan/r2voronoi"
	"github.com/2dChan/r2voronoi/bezier"
	"github.com/2dChan/r2voronoi/prefs"
	"github.com/2dChan/r2voronoi/progress"
	"github.com/2dChan/r2voronoi/r2delaunay"
	"github.com/2dChan/r2voronoi/render"
	"github.com/2dChan/r2voronoi/utils"
	"github.com/2dChan/r2voronoi/worker"
)

const (
	// Flags.
	flagPrefs   = "prefs"
	flagDebug   = "debug"
	flagPoints  = "points"
	flagSeed    = "seed"
	flagWidth   = "width"
	flagHeight  = "height"
	flagOut     = "out"
	flagRelax   = "relax"
	flagTimeout = "timeout"

	progressInterval = 500 * time.Millisecond
)

// env is the state shared by every command.
type env struct {
	logger *zap.SugaredLogger
	store  prefs.Store
}

// params are the per-command inputs.
type params struct {
	points  []r2.Point
	width   float64
	height  float64
	out     string
	relax   int
	timeout time.Duration
}

func newApp() *cli.App {
	e := &env{
		logger: zap.NewNop().Sugar(),
		store:  prefs.NewMapStore(),
	}

	return &cli.App{
		Name:  "r2voronoi",
		Usage: "draw Delaunay triangulations, Voronoi diagrams and Bezier curves of random points",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagPrefs,
				Usage: "load and save preferences in `FILE`",
			},
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			var (
				l   *zap.Logger
				err error
			)
			if c.Bool(flagDebug) {
				l, err = zap.NewDevelopment()
			} else {
				l, err = zap.NewProduction()
			}
			if err != nil {
				return errors.Wrap(err, "create logger")
			}
			e.logger = l.Sugar().Named("r2voronoi")

			if path := c.String(flagPrefs); path != "" {
				fs, err := prefs.OpenFileStore(path)
				if err != nil {
					return err
				}
				e.store = fs
			}
			return nil
		},
		After: func(c *cli.Context) error {
			// Sync fails on terminals.
			_ = e.logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "delaunay",
				Usage:  "triangulate random points",
				Flags:  commandFlags("delaunay.svg", false),
				Action: e.action(e.runDelaunay),
			},
			{
				Name:   "voronoi",
				Usage:  "compute the Voronoi diagram of random points",
				Flags:  commandFlags("voronoi.svg", true),
				Action: e.action(e.runVoronoi),
			},
			{
				Name:   "bezier",
				Usage:  "sample the Bezier curve through random control points",
				Flags:  commandFlags("bezier.svg", false),
				Action: e.action(e.runBezier),
			},
			{
				Name:   "all",
				Usage:  "run every computation concurrently, writing into the --out directory",
				Flags:  commandFlags(".", true),
				Action: e.action(e.runAll),
			},
			{
				Name:  "reset-prefs",
				Usage: "restore every preference to its default",
				Action: func(c *cli.Context) error {
					if err := prefs.ResetAll(e.store); err != nil {
						return err
					}
					e.logger.Infow("preferences reset")
					return nil
				},
			},
		},
	}
}

func commandFlags(out string, relax bool) []cli.Flag {
	flags := []cli.Flag{
		&cli.IntFlag{
			Name:  flagPoints,
			Usage: "number of random points (default: the random_point_count preference)",
		},
		&cli.Int64Flag{
			Name:  flagSeed,
			Usage: "random seed",
		},
		&cli.Float64Flag{
			Name:  flagWidth,
			Value: 1000,
			Usage: "canvas width",
		},
		&cli.Float64Flag{
			Name:  flagHeight,
			Value: 1000,
			Usage: "canvas height",
		},
		&cli.StringFlag{
			Name:  flagOut,
			Value: out,
			Usage: "output `PATH`",
		},
		&cli.DurationFlag{
			Name:  flagTimeout,
			Usage: "abort after this long (0 means no limit)",
		},
	}
	if relax {
		flags = append(flags, &cli.IntFlag{
			Name:  flagRelax,
			Usage: "Lloyd relaxation steps applied to the Voronoi diagram",
		})
	}
	return flags
}

func (e *env) action(run func(ctx context.Context, p params) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		p, err := e.params(c)
		if err != nil {
			return err
		}
		e.logger.Debugw("running", "command", c.Command.Name, "input", p)
		ctx := c.Context
		if p.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, p.timeout)
			defer cancel()
		}
		return run(ctx, p)
	}
}

func (e *env) params(c *cli.Context) (params, error) {
	n := prefs.RandomPointCount.Get(e.store)
	if c.IsSet(flagPoints) {
		n = c.Int(flagPoints)
	}
	p := params{
		width:   c.Float64(flagWidth),
		height:  c.Float64(flagHeight),
		out:     c.String(flagOut),
		relax:   c.Int(flagRelax),
		timeout: c.Duration(flagTimeout),
	}
	switch {
	case n < 1:
		return params{}, errors.Errorf("--%s must be positive, got %d", flagPoints, n)
	case !(p.width > 0 && p.height > 0):
		return params{}, errors.Errorf("canvas must have a positive size, got %vx%v", p.width, p.height)
	case p.relax < 0:
		return params{}, errors.Errorf("--%s must not be negative, got %d", flagRelax, p.relax)
	}
	p.points = utils.GenerateRandomPoints(n, c.Int64(flagSeed), utils.Canvas(p.width, p.height))
	return p, nil
}

// await waits for j and logs its progress at debug level meanwhile.
func await[T any](e *env, j *worker.Job[T]) (T, error) {
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()
	for {
		select {
		case <-j.Done():
			return j.Wait()
		case <-ticker.C:
			e.logger.Debugw("progress", "job", j.Name(), "fraction", j.Progress())
		}
	}
}

func (e *env) triangulate(p params) worker.Task[*r2delaunay.Triangulation] {
	return func(ctx context.Context, r progress.Reporter) (*r2delaunay.Triangulation, error) {
		return r2delaunay.NewTriangulation(ctx, p.points,
			r2delaunay.WithBounds(utils.Canvas(p.width, p.height)),
			r2delaunay.WithProgress(r))
	}
}

func (e *env) diagram(p params) worker.Task[*r2voronoi.Diagram] {
	return func(ctx context.Context, r progress.Reporter) (*r2voronoi.Diagram, error) {
		// Relaxation rounds share the progress with the first diagram.
		share := 1 / float64(p.relax+1)
		vd, err := r2voronoi.NewDiagram(ctx, p.points, p.width, p.height,
			r2voronoi.WithProgress(progress.Scale(r, share)))
		if err != nil {
			return nil, err
		}
		for range p.relax {
			if err := vd.Relax(ctx, 1); err != nil {
				return nil, err
			}
			r.Add(share)
		}
		return vd, nil
	}
}

func (e *env) sample(p params) (worker.Task[[]r2.Point], *bezier.Curve, error) {
	curve, err := bezier.NewCurve(p.points...)
	if err != nil {
		return nil, nil, err
	}
	steps := prefs.BezierStepCount.Get(e.store)
	maxDiff := prefs.BezierMaxPointDifference.Get(e.store)
	return func(ctx context.Context, r progress.Reporter) ([]r2.Point, error) {
		return bezier.Sample(ctx, curve,
			bezier.WithStepCount(steps),
			bezier.WithMaxDifference(maxDiff),
			bezier.WithProgress(r))
	}, curve, nil
}

func (e *env) style() render.Style {
	return render.StyleFromPrefs(e.store)
}

func (e *env) runDelaunay(ctx context.Context, p params) error {
	j := worker.Start(ctx, "delaunay", e.triangulate(p), worker.WithLogger(e.logger))
	dt, err := await(e, j)
	if err != nil {
		return err
	}
	return e.write(p.out, func(w io.Writer) error {
		return render.Triangulation(w, dt, int(p.width), int(p.height), e.style())
	})
}

func (e *env) runVoronoi(ctx context.Context, p params) error {
	j := worker.Start(ctx, "voronoi", e.diagram(p), worker.WithLogger(e.logger))
	vd, err := await(e, j)
	if err != nil {
		return err
	}
	return e.write(p.out, func(w io.Writer) error {
		return render.Diagram(w, vd, e.style())
	})
}

func (e *env) runBezier(ctx context.Context, p params) error {
	task, curve, err := e.sample(p)
	if err != nil {
		return err
	}
	j := worker.Start(ctx, "bezier", task, worker.WithLogger(e.logger))
	points, err := await(e, j)
	if err != nil {
		return err
	}
	return e.write(p.out, func(w io.Writer) error {
		return render.Polyline(w, points, curve.ControlPoints(), int(p.width), int(p.height), e.style())
	})
}

func (e *env) runAll(ctx context.Context, p params) error {
	task, curve, err := e.sample(p)
	if err != nil {
		return err
	}

	g := worker.NewGroup(ctx, worker.WithLogger(e.logger))
	dj := worker.Go(g, "delaunay", e.triangulate(p))
	vj := worker.Go(g, "voronoi", e.diagram(p))
	bj := worker.Go(g, "bezier", task)
	if err := g.Wait(); err != nil {
		return err
	}

	dt, _ := dj.Wait()
	vd, _ := vj.Wait()
	points, _ := bj.Wait()
	st := e.style()
	w, h := int(p.width), int(p.height)
	outputs := []struct {
		name string
		draw func(io.Writer) error
	}{
		{"delaunay.svg", func(wr io.Writer) error { return render.Triangulation(wr, dt, w, h, st) }},
		{"voronoi.svg", func(wr io.Writer) error { return render.Diagram(wr, vd, st) }},
		{"bezier.svg", func(wr io.Writer) error {
			return render.Polyline(wr, points, curve.ControlPoints(), w, h, st)
		}},
	}
	for _, o := range outputs {
		if err := e.write(filepath.Join(p.out, o.name), o.draw); err != nil {
			return err
		}
	}
	return nil
}

func (e *env) write(path string, draw func(io.Writer) error) error {
	if err := render.WriteFile(path, draw); err != nil {
		return err
	}
	e.logger.Infow("wrote output", "path", path)
	return nil
}

func (p params) String() string {
	return fmt.Sprintf("%d points on %vx%v", len(p.points), p.width, p.height)
}
