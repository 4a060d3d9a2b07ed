package engine

import (
	"context"
	"log/slog"
)

type CheckFunc[T any] func(ctx context.Context, item T) (bool, error)

// Named predicate. Returning false drops the item; an error aborts the whole pipeline.
type Stage[T any] struct {
	Name  string
	Check CheckFunc[T]
}

// Wraps a local, non-failing predicate as a stage.
func Sync[T any](name string, f func(T) bool) Stage[T] {
	return Stage[T]{
		Name: name,
		Check: func(ctx context.Context, item T) (bool, error) {
			return f(item), nil
		},
	}
}

// Wraps a predicate which may block on the network as a stage.
func Async[T any](name string, f CheckFunc[T]) Stage[T] {
	return Stage[T]{Name: name, Check: f}
}

// Ordered predicate stages, evaluated strictly in declaration order. Cheap local checks should come first, so that network-backed stages only see items that survived them.
type Pipeline[T any] struct {
	Stages []Stage[T]
	Logger *slog.Logger
}

func NewPipeline[T any](logger *slog.Logger, stages ...Stage[T]) *Pipeline[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline[T]{Stages: stages, Logger: logger}
}

// Evaluates stages against a single item until one rejects it. Returns the name of the rejecting stage, if any.
func (p *Pipeline[T]) Accept(ctx context.Context, item T) (bool, string, error) {
	for _, s := range p.Stages {
		ok, err := s.Check(ctx, item)
		if err != nil {
			return false, s.Name, err
		}
		if !ok {
			stageRejections.WithLabelValues(s.Name).Inc()
			return false, s.Name, nil
		}
	}
	return true, "", nil
}

// Returns a lazy iterator over the items of src accepted by the pipeline, in source order.
func (p *Pipeline[T]) Filter(src Iterator[T]) Iterator[T] {
	return &filterIterator[T]{pipeline: p, src: src}
}

type filterIterator[T any] struct {
	pipeline *Pipeline[T]
	src      Iterator[T]
}

func (f *filterIterator[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	for {
		item, ok, err := f.src.Next(ctx)
		if err != nil {
			return zero, false, err
		}
		if !ok {
			return zero, false, nil
		}
		accepted, stage, err := f.pipeline.Accept(ctx, item)
		if err != nil {
			return zero, false, err
		}
		if accepted {
			return item, true, nil
		}
		f.pipeline.Logger.Debug("item rejected by pipeline stage", "stage", stage)
	}
}
