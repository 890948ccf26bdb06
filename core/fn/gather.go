package fn

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Gather executes the prompt function once per argument set, running at most
// the configured concurrency in parallel, and returns the values in the same
// order as the argument sets. The first failure cancels the remaining calls
// and is returned annotated with the index of the argument set that failed.
func (f *Fn[T]) Gather(ctx context.Context, argSets []Args, opts ...CallOption) ([]T, error) {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(f.concurrency)

	results := make([]T, len(argSets))
	for i, args := range argSets {
		group.Go(func() error {
			value, err := f.Call(ctx, args, opts...)
			if err != nil {
				return fmt.Errorf("argument set %d: %w", i, err)
			}
			results[i] = value
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
