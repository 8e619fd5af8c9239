package phrase

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of resolving one input of a batch.
type Result struct {
	Input string
	Name  string
	Err   error
}

// Batch resolves inputs concurrently and renders each with c. Results are
// returned in input order; a failed input carries its own error and does not
// stop the others. Batch only returns early if ctx is cancelled, in which
// case unfinished results carry ctx.Err().
func (r *Resolver) Batch(ctx context.Context, inputs []string, c Case) []Result {
	results := make([]Result, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, in := range inputs {
		results[i].Input = in
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			p, err := r.Resolve(in)
			if err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Name = p.WithCase(c).Render()
			return nil
		})
	}
	_ = g.Wait()

	return results
}
