package util

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Parallel runs fn over inputs with at most workerLimit calls in flight. The
// first error cancels the context handed to the remaining calls and is
// returned once every started call has finished.
func Parallel[T any](ctx context.Context, inputs []T, workerLimit int, fn func(context.Context, T) error) error {
	if len(inputs) == 0 {
		return nil
	}
	if workerLimit <= 0 {
		workerLimit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerLimit)

	for _, item := range inputs {
		if gctx.Err() != nil {
			break
		}
		item := item // per-iteration copy; go.mod targets go1.21 loop semantics
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, item)
		})
	}
	return g.Wait()
}
