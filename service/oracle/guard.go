package oracle

import (
	"context"

	"fairprice/core"
)

type depthKey struct{}

func depthFrom(ctx context.Context) int {
	depth, _ := ctx.Value(depthKey{}).(int)
	return depth
}

// enter returns a child context one derived level deeper. The parent context
// keeps its own depth, so every exit path restores the caller's level.
func (o *Oracle) enter(ctx context.Context, assetID string) (context.Context, error) {
	depth := depthFrom(ctx)
	if depth >= o.limits.MaxRecursionDepth {
		return ctx, core.NewError(core.ErrRecursionExceeded, assetID).
			WithReason("depth %d reached limit %d", depth, o.limits.MaxRecursionDepth)
	}

	return context.WithValue(ctx, depthKey{}, depth+1), nil
}
