package engine

import (
	"context"
)

// Lazy sequence of items. Next returns false once the sequence is exhausted; an error terminates the sequence.
type Iterator[T any] interface {
	Next(ctx context.Context) (T, bool, error)
}

// Drains the iterator in to a slice.
func Collect[T any](ctx context.Context, it Iterator[T]) ([]T, error) {
	var out []T
	for {
		item, ok, err := it.Next(ctx)
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, item)
	}
}

// Calls fn for every item, in order. The next item is only pulled after fn returns; the first error stops iteration.
func ForEach[T any](ctx context.Context, it Iterator[T], fn func(ctx context.Context, item T) error) error {
	for {
		item, ok, err := it.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(ctx, item); err != nil {
			return err
		}
	}
}

// Iterator over an in-memory slice. Mostly useful in tests and for re-feeding collected batches.
type SliceIterator[T any] struct {
	items []T
}

func NewSliceIterator[T any](items []T) *SliceIterator[T] {
	return &SliceIterator[T]{items: items}
}

func (s *SliceIterator[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if len(s.items) == 0 {
		return zero, false, nil
	}
	item := s.items[0]
	s.items = s.items[1:]
	return item, true, nil
}
