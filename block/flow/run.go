package flow

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// supportedTypes are the element types Run can dispatch on.
var supportedTypes = []string{
	"uint8", "uint16", "uint32", "uint64",
	"int8", "int16", "int32", "int64",
	"float32", "float64", "complex64", "complex128",
	"string",
}

func isSupportedType(name string) bool {
	for _, t := range supportedTypes {
		if t == name {
			return true
		}
	}
	return false
}

// SupportedTypes returns the element type names accepted in a Spec.
func SupportedTypes() []string {
	return append([]string(nil), supportedTypes...)
}

// RunOptions configure RunParallel.
type RunOptions struct {
	Parallel  int // overrides Spec.Parallel when > 0
	Observers []Observer
}

// RunParallel validates s and runs max(1, parallel) independent chains built
// from it, each on its own goroutine with its own block instances and run ID.
// The first chain error cancels the others. Reports are in chain order.
func RunParallel(ctx context.Context, s *Spec, opts RunOptions) ([]*Report, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	switch s.Type {
	case "uint8":
		return runTyped[uint8](ctx, s, opts)
	case "uint16":
		return runTyped[uint16](ctx, s, opts)
	case "uint32":
		return runTyped[uint32](ctx, s, opts)
	case "uint64":
		return runTyped[uint64](ctx, s, opts)
	case "int8":
		return runTyped[int8](ctx, s, opts)
	case "int16":
		return runTyped[int16](ctx, s, opts)
	case "int32":
		return runTyped[int32](ctx, s, opts)
	case "int64":
		return runTyped[int64](ctx, s, opts)
	case "float32":
		return runTyped[float32](ctx, s, opts)
	case "float64":
		return runTyped[float64](ctx, s, opts)
	case "complex64":
		return runTyped[complex64](ctx, s, opts)
	case "complex128":
		return runTyped[complex128](ctx, s, opts)
	case "string":
		return runTyped[string](ctx, s, opts)
	}
	return nil, fmt.Errorf("unsupported element type %q", s.Type)
}

func runTyped[T any](ctx context.Context, s *Spec, opts RunOptions) ([]*Report, error) {
	parallel := s.Parallel
	if opts.Parallel > 0 {
		parallel = opts.Parallel
	}
	if parallel < 1 {
		parallel = 1
	}

	// Build every chain before starting any, so configuration errors
	// surface without partial runs.
	chains := make([]*Chain[T], parallel)
	for i := range chains {
		c, err := Build[T](s, Options{RunID: uuid.NewString(), Observers: opts.Observers})
		if err != nil {
			return nil, fmt.Errorf("building chain %d: %w", i, err)
		}
		chains[i] = c
	}

	logrus.Debugf("running %d chain(s) of %s", parallel, s.Type)
	reports := make([]*Report, parallel)
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range chains {
		i, c := i, c
		g.Go(func() error {
			r, err := c.Run(gctx)
			if err != nil {
				return fmt.Errorf("chain %s: %w", c.opts.RunID, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
