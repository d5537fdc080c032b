package assess

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sells-group/shell-assess/internal/model"
)

// Pair is one unit of batch work: a customer account and its resolved shell,
// nil when the account has no parent or the parent could not be fetched.
type Pair struct {
	Account model.Account
	Parent  *model.Account
}

// EvaluateBatch runs Evaluate over every pair concurrently. Results come
// back in input order regardless of completion order. A zero or negative
// concurrency falls back to the CPU count.
func (e *Engine) EvaluateBatch(ctx context.Context, pairs []Pair, concurrency int) ([]model.Assessment, error) {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	results := make([]model.Assessment, len(pairs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, p := range pairs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = model.Assessment{
				Account: p.Account,
				Parent:  p.Parent,
				Flags:   e.Evaluate(p.Account, p.Parent),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
