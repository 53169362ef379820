// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package worker runs kernel computations in the background with progress
// tracking and cooperative cancellation.

package worker

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/2dChan/r2voronoi/progress"
)

// Task is a cancellable computation that reports its progress to r.
type Task[T any] func(ctx context.Context, r progress.Reporter) (T, error)

type Options struct {
	Logger *zap.SugaredLogger
}

type Option func(*Options)

// WithLogger sets the logger for job lifecycle events. A nil logger
// discards them.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *Options) {
		if l == nil {
			l = zap.NewNop().Sugar()
		}
		o.Logger = l
	}
}

// Job is a task running on its own goroutine.
type Job[T any] struct {
	name    string
	cancel  context.CancelFunc
	done    chan struct{}
	tracker progress.Tracker

	// Written once before done is closed.
	result T
	err    error
}

// Start runs task on a new goroutine. The task context is derived from ctx
// and is cancelled by Cancel.
func Start[T any](ctx context.Context, name string, task Task[T], setters ...Option) *Job[T] {
	opts := Options{
		Logger: zap.NewNop().Sugar(),
	}
	for _, set := range setters {
		set(&opts)
	}
	logger := opts.Logger.With("job", name)

	ctx, cancel := context.WithCancel(ctx)
	j := &Job[T]{
		name:   name,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(j.done)
		defer cancel()

		start := time.Now()
		logger.Debug("job started")
		j.result, j.err = run(ctx, task, &j.tracker)

		elapsed := time.Since(start)
		switch {
		case j.err == nil:
			logger.Infow("job finished", "duration", elapsed)
		case errors.Is(j.err, context.Canceled), errors.Is(j.err, context.DeadlineExceeded):
			logger.Infow("job cancelled", "duration", elapsed, "progress", j.tracker.Fraction())
		default:
			logger.Warnw("job failed", "duration", elapsed, "error", j.err)
		}
	}()
	return j
}

func run[T any](ctx context.Context, task Task[T], r progress.Reporter) (res T, err error) {
	defer func() {
		if p := recover(); p != nil {
			var zero T
			res, err = zero, errors.Errorf("panic: %v", p)
		}
	}()
	return task(ctx, r)
}

func (j *Job[T]) Name() string {
	return j.name
}

// Cancel asks the task to stop. It does not wait for it.
func (j *Job[T]) Cancel() {
	j.cancel()
}

// Done is closed when the task has returned.
func (j *Job[T]) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the task returns and gives its result.
func (j *Job[T]) Wait() (T, error) {
	<-j.done
	return j.result, j.err
}

// Progress returns the completed fraction of the task in [0, 1].
func (j *Job[T]) Progress() float64 {
	return j.tracker.Fraction()
}

// Group runs jobs that fail together: the first error cancels the others.
type Group struct {
	ctx  context.Context
	g    *errgroup.Group
	opts []Option
}

// NewGroup returns a group whose jobs derive from ctx. Options apply to
// every job started in the group.
func NewGroup(ctx context.Context, setters ...Option) *Group {
	g, ctx := errgroup.WithContext(ctx)
	return &Group{ctx: ctx, g: g, opts: setters}
}

// Go starts task as a job of g.
func Go[T any](g *Group, name string, task Task[T]) *Job[T] {
	j := Start(g.ctx, name, task, g.opts...)
	g.g.Go(func() error {
		_, err := j.Wait()
		return errors.Wrapf(err, "job %s", name)
	})
	return j
}

// Wait blocks until every job returns and gives the first error.
func (g *Group) Wait() error {
	return g.g.Wait()
}
