// Package concurrent runs work over sequences with bounded parallelism.
package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/aecs/pkg/sequence"
)

// Each runs action for every element of it, at most limit at a time. A limit
// of zero or less means unbounded. The first error cancels ctx for the
// remaining actions and is returned once all of them finished.
func Each[T any](ctx context.Context, it *sequence.Iterator[T], limit int, action func(context.Context, T) error) error {
	group, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		group.SetLimit(limit)
	}

	next, stop := it.Pull()
	defer stop()

	for {
		value, valid := next()
		if !valid {
			break
		}
		if ctx.Err() != nil {
			break
		}

		group.Go(func() error {
			return action(ctx, value)
		})
	}

	return group.Wait()
}

// Map applies mapFn to each element in parallel, preserving order.
func Map[T any, R any](ctx context.Context, it *sequence.Iterator[T], limit int, mapFn func(context.Context, T) (R, error)) ([]R, error) {
	in := it.Collect()
	out := make([]R, len(in))

	group, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		group.SetLimit(limit)
	}
	for idx, val := range in {
		group.Go(func() error {
			r, err := mapFn(ctx, val)
			if err != nil {
				return err
			}
			out[idx] = r
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Batch splits items into chunks of batchSize and runs action on each chunk
// in its own goroutine.
func Batch[T any](ctx context.Context, items []T, batchSize int, action func(context.Context, []T) error) error {
	if batchSize <= 0 {
		batchSize = len(items)
	}

	group, ctx := errgroup.WithContext(ctx)
	for idx := 0; idx < len(items); idx += batchSize {
		chunk := items[idx:min(idx+batchSize, len(items))]
		group.Go(func() error {
			return action(ctx, chunk)
		})
	}
	return group.Wait()
}
