// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package worker

import (
	"context"
	"testing"
	"time"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/2dChan/r2voronoi/progress"
	"github.com/2dChan/r2voronoi/r2delaunay"
	"github.com/2dChan/r2voronoi/utils"
)

func newObservedLogger() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.LevelEnablerFunc(zapcore.DebugLevel.Enabled))
	return zap.New(core).Sugar(), logs
}

func TestStart_Result(t *testing.T) {
	logger, logs := newObservedLogger()
	j := Start(context.Background(), "sum", func(ctx context.Context, r progress.Reporter) (int, error) {
		sum := 0
		for i := range 4 {
			sum += i
			r.Add(0.25)
		}
		return sum, nil
	}, WithLogger(logger))

	got, err := j.Wait()
	if err != nil {
		t.Fatal(err)
	}
	if got != 6 {
		t.Errorf("j.Wait() = %v, want 6", got)
	}
	if p := j.Progress(); p != 1 {
		t.Errorf("j.Progress() = %v, want 1", p)
	}
	if j.Name() != "sum" {
		t.Errorf("j.Name() = %q, want %q", j.Name(), "sum")
	}
	select {
	case <-j.Done():
	default:
		t.Errorf("j.Done() is open after Wait")
	}

	if n := logs.FilterMessage("job started").FilterField(zap.String("job", "sum")).Len(); n != 1 {
		t.Errorf("%d start logs, want 1", n)
	}
	if n := logs.FilterMessage("job finished").Len(); n != 1 {
		t.Errorf("%d finish logs, want 1", n)
	}
}

func TestStart_Cancel(t *testing.T) {
	logger, logs := newObservedLogger()
	started := make(chan struct{})
	j := Start(context.Background(), "block", func(ctx context.Context, r progress.Reporter) (int, error) {
		close(started)
		<-ctx.Done()
		return 0, ctx.Err()
	}, WithLogger(logger))

	<-started
	j.Cancel()
	if _, err := j.Wait(); !errors.Is(err, context.Canceled) {
		t.Errorf("j.Wait() error = %v, want context.Canceled", err)
	}
	if n := logs.FilterMessage("job cancelled").Len(); n != 1 {
		t.Errorf("%d cancel logs, want 1", n)
	}
}

func TestStart_Failure(t *testing.T) {
	logger, logs := newObservedLogger()
	errBoom := errors.New("boom")
	j := Start(context.Background(), "fail", func(ctx context.Context, r progress.Reporter) (string, error) {
		return "", errBoom
	}, WithLogger(logger))

	if _, err := j.Wait(); !errors.Is(err, errBoom) {
		t.Errorf("j.Wait() error = %v, want %v", err, errBoom)
	}
	if n := logs.FilterMessage("job failed").FilterLevelExact(zapcore.WarnLevel).Len(); n != 1 {
		t.Errorf("%d failure logs, want 1", n)
	}
}

func TestStart_Panic(t *testing.T) {
	j := Start(context.Background(), "panic", func(ctx context.Context, r progress.Reporter) (int, error) {
		panic("bad")
	})
	got, err := j.Wait()
	if err == nil {
		t.Fatalf("j.Wait() error = nil, want non-nil")
	}
	if got != 0 {
		t.Errorf("j.Wait() = %v, want 0", got)
	}
}

func TestStart_ParentDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	j := Start(ctx, "wait", func(ctx context.Context, r progress.Reporter) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	}, WithLogger(nil))
	if _, err := j.Wait(); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("j.Wait() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestStart_Triangulation(t *testing.T) {
	points := utils.GenerateRandomPoints(200, 0, r2.RectFromPoints(r2.Point{}, r2.Point{X: 100, Y: 100}))
	j := Start(context.Background(), "delaunay", func(ctx context.Context, r progress.Reporter) (*r2delaunay.Triangulation, error) {
		return r2delaunay.NewTriangulation(ctx, points, r2delaunay.WithProgress(r))
	})
	dt, err := j.Wait()
	if err != nil {
		t.Fatal(err)
	}
	if dt.NumSites != 200 {
		t.Errorf("dt.NumSites = %d, want 200", dt.NumSites)
	}
	if p := j.Progress(); p < 1-1e-9 {
		t.Errorf("j.Progress() = %v, want 1", p)
	}
}

func TestGroup(t *testing.T) {
	g := NewGroup(context.Background())
	a := Go(g, "a", func(ctx context.Context, r progress.Reporter) (int, error) {
		r.Add(1)
		return 1, nil
	})
	b := Go(g, "b", func(ctx context.Context, r progress.Reporter) (string, error) {
		r.Add(1)
		return "b", nil
	})
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	if got, _ := a.Wait(); got != 1 {
		t.Errorf("a.Wait() = %v, want 1", got)
	}
	if got, _ := b.Wait(); got != "b" {
		t.Errorf("b.Wait() = %v, want %q", got, "b")
	}
}

func TestGroup_FailureCancelsOthers(t *testing.T) {
	logger, _ := newObservedLogger()
	g := NewGroup(context.Background(), WithLogger(logger))
	errBoom := errors.New("boom")

	blocked := Go(g, "blocked", func(ctx context.Context, r progress.Reporter) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	Go(g, "fail", func(ctx context.Context, r progress.Reporter) (int, error) {
		return 0, errBoom
	})

	if err := g.Wait(); !errors.Is(err, errBoom) {
		t.Errorf("g.Wait() error = %v, want %v", err, errBoom)
	}
	if _, err := blocked.Wait(); !errors.Is(err, context.Canceled) {
		t.Errorf("blocked.Wait() error = %v, want context.Canceled", err)
	}
}
