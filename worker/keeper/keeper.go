package keeper

import (
	"context"
	"sync/atomic"

	"fairprice/core"
	"fairprice/service/oracle"
	"fairprice/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// Oracle the engine calls the keeper drives
type Oracle interface {
	Settings() core.Settings
	SupportedAssets(ctx context.Context) ([]string, error)
	FetchAndUpdate(ctx context.Context, assetID string) (*oracle.Resolution, error)
}

// Report result of one keeper round
type Report struct {
	Updated int
	Failed  int
	Skipped bool
}

// Worker refreshes every supported asset on a schedule
type Worker struct {
	worker.BaseJob
	oracle      Oracle
	concurrency int
}

// New new keeper worker
func New(o Oracle, cfg core.Keeper) (*Worker, error) {
	w := &Worker{
		oracle:      o,
		concurrency: cfg.Concurrency,
	}

	if w.concurrency <= 0 {
		w.concurrency = 1
	}

	w.Cron = cron.New()
	if _, err := w.Cron.AddFunc(cfg.Schedule, w.BaseJob.Run); err != nil {
		return nil, err
	}

	return w, nil
}

// Run runs rounds on schedule until ctx is done
func (w *Worker) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "keeper")
	ctx = logger.WithContext(ctx, log)

	w.OnWork = func() error {
		_, err := w.Tick(ctx)
		return err
	}

	_ = w.Start()
	log.Infoln("keeper started")

	<-ctx.Done()
	_ = w.Stop()
	log.Infoln("keeper stopped")
	return ctx.Err()
}

// Tick refreshes all supported assets once. A failing asset never stops the round
func (w *Worker) Tick(ctx context.Context) (*Report, error) {
	log := logger.FromContext(ctx)

	if w.oracle.Settings().Paused() {
		log.Debugln("oracle paused, skip round")
		return &Report{Skipped: true}, nil
	}

	assets, err := w.oracle.SupportedAssets(ctx)
	if err != nil {
		log.WithError(err).Errorln("list supported assets")
		return nil, err
	}

	var updated, failed int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)
	for _, assetID := range assets {
		assetID := assetID
		g.Go(func() error {
			if _, err := w.oracle.FetchAndUpdate(ctx, assetID); err != nil {
				atomic.AddInt64(&failed, 1)
				return nil
			}

			atomic.AddInt64(&updated, 1)
			return nil
		})
	}
	_ = g.Wait()

	r := &Report{Updated: int(updated), Failed: int(failed)}
	log.WithField("updated", r.Updated).WithField("failed", r.Failed).Debugln("keeper round done")
	return r, nil
}
