package oracle

import (
	"context"
	"time"

	"fairprice/internal/metrics"
	"fairprice/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
)

// FeedStatus outcome of a feed read
type FeedStatus int

const (
	FeedValid FeedStatus = iota
	FeedUnavailable
	FeedNonPositive
	FeedMissingTimestamp
	FeedFutureTimestamp
	FeedStale
	FeedOverflow
	FeedOutOfBounds
)

var feedStatusNames = map[FeedStatus]string{
	FeedValid:            "valid",
	FeedUnavailable:      "unavailable",
	FeedNonPositive:      "non_positive",
	FeedMissingTimestamp: "missing_timestamp",
	FeedFutureTimestamp:  "future_timestamp",
	FeedStale:            "stale",
	FeedOverflow:         "overflow",
	FeedOutOfBounds:      "out_of_bounds",
}

func (s FeedStatus) String() string {
	if name, ok := feedStatusNames[s]; ok {
		return name
	}

	return "unknown"
}

// FeedResult normalized feed read, Price is set only when Status is FeedValid
type FeedResult struct {
	Price     number.Wad
	UpdatedAt int64
	Status    FeedStatus
	Err       error
}

// Valid feed answer usable as a live price
func (r FeedResult) Valid() bool {
	return r.Status == FeedValid
}

// fetchFeed reads and validates a feed. Provider failures are reported through
// the result status, never as an error.
func (o *Oracle) fetchFeed(ctx context.Context, assetID, feedID string) FeedResult {
	r := o.readFeed(ctx, feedID)
	if !r.Valid() {
		log := logger.FromContext(ctx).WithField("asset", assetID).
			WithField("feed", feedID).
			WithField("reason", r.Status.String())
		if r.Err != nil {
			log = log.WithError(r.Err)
		}
		log.Debugln("feed answer rejected")
		metrics.Oracle().ObserveFeedRejection(assetID, r.Status.String())
	}

	return r
}

func (o *Oracle) readFeed(ctx context.Context, feedID string) FeedResult {
	ctx, cancel := o.providerContext(ctx)
	defer cancel()

	answer, err := o.feeds.LatestAnswer(ctx, feedID)
	if err != nil {
		return FeedResult{Status: FeedUnavailable, Err: err}
	}

	if answer == nil || answer.Answer == nil {
		return FeedResult{Status: FeedUnavailable}
	}

	r := FeedResult{UpdatedAt: answer.UpdatedAt}
	now := o.now().Unix()
	stale := int64(o.Settings().StalePeriod / time.Second)

	switch {
	case answer.Answer.Sign() <= 0:
		r.Status = FeedNonPositive
		return r
	case answer.UpdatedAt == 0:
		r.Status = FeedMissingTimestamp
		return r
	case answer.UpdatedAt > now:
		r.Status = FeedFutureTimestamp
		return r
	case now-answer.UpdatedAt > stale:
		r.Status = FeedStale
		return r
	}

	raw, overflow := uint256.FromBig(answer.Answer)
	if overflow {
		r.Status = FeedOverflow
		return r
	}

	price, err := number.ToWad(raw, answer.Decimals)
	if err != nil {
		r.Status = FeedOverflow
		r.Err = err
		return r
	}

	if !o.limits.PriceInBounds(price) {
		r.Status = FeedOutOfBounds
		return r
	}

	r.Price = price
	r.Status = FeedValid
	return r
}

func (o *Oracle) providerContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.limits.ProviderTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, o.limits.ProviderTimeout)
}
