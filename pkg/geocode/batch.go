package geocode

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Query is one address to resolve in a batch.
type Query struct {
	Address string
	Country string
}

// BatchResolve resolves many addresses with bounded parallelism. Individual
// failures become unsuccessful LocationData entries; the batch itself never
// fails. Results are positionally aligned with the input.
func (r *Resolver) BatchResolve(ctx context.Context, queries []Query) []LocationData {
	if len(queries) == 0 {
		return nil
	}

	results := make([]LocationData, len(queries))

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(r.batchConcurrency)

	for i, q := range queries {
		i, q := i, q
		eg.Go(func() error {
			resp, err := r.Resolve(gCtx, q.Address, q.Country)
			if err != nil {
				results[i] = LocationData{Success: false, Error: "could not geocode the given address"}
				return nil //nolint:nilerr // individual lookup failures don't fail the batch
			}
			results[i] = ExtractLocation(resp)
			return nil
		})
	}

	_ = eg.Wait()
	return results
}
