package indexer

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/idn-labs/substrate-index/internal/nodeclient"
)

// telemetryInterval matches the original source's 2-second interval timer
// used to report indexing progress without flooding logs per-block.
const telemetryInterval = 2 * time.Second

// Run starts both pipelines and blocks until ctx is cancelled. Each
// pipeline absorbs its own failures: the head follower resubscribes with
// backoff, and a batch backfill that fails is logged and ends without
// stopping the head follower. It first subscribes to
// finalized heads to learn the live tip, then resolves the batch
// backfiller's start block exactly as spec.md §9 describes: an explicit
// override wins; otherwise resume from whichever of LastHeadBlock/
// LastBatchBlock was in progress, falling back to a chain-specific default.
func (ix *Indexer) Run(ctx context.Context, defaultStartBlock uint32) error {
	heads, errc, err := ix.client.SubscribeFinalizedHeads(ctx)
	if err != nil {
		return NodeError{Err: err}
	}
	var firstHead nodeclient.FinalizedHead
	select {
	case h := <-heads:
		firstHead = h
	case err := <-errc:
		return NodeError{Err: err}
	case <-ctx.Done():
		return nil
	}
	headTip := firstHead.Number

	start, err := ix.resolveStartBlock(defaultStartBlock)
	if err != nil {
		return StoreError{Err: err}
	}
	if err := ix.store.SetBatchIndexingComplete(false); err != nil {
		return StoreError{Err: err}
	}
	ix.log.Infow("batch indexing from", "block", start, "head_tip", headTip)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return ix.runHeadFollower(gctx, firstHead, heads, errc) })
	g.Go(func() error {
		if err := ix.runBatchBackfiller(gctx, start, headTip); err != nil {
			ix.log.Errorw("batch backfill stopped", "error", err)
		}
		return nil
	})
	g.Go(func() error { return ix.runTelemetry(gctx) })

	return g.Wait()
}

// resolveStartBlock picks where the batch backfiller resumes after a
// restart. Precedence: explicit override, then (if a previous run hadn't
// finished backfilling) LastBatchBlock, then (if it had) LastHeadBlock --
// meaning a fully caught-up indexer restarts by re-walking from its last
// known head rather than from scratch, in case the head follower itself
// was interrupted mid-block.
func (ix *Indexer) resolveStartBlock(defaultStartBlock uint32) (uint32, error) {
	if ix.cfg.StartBlock != nil {
		return *ix.cfg.StartBlock, nil
	}
	complete, err := ix.store.BatchIndexingComplete()
	if err != nil {
		return 0, err
	}
	if complete {
		if b, ok, err := ix.store.LastHeadBlock(); err != nil {
			return 0, err
		} else if ok {
			return b, nil
		}
		return defaultStartBlock, nil
	}
	if b, ok, err := ix.store.LastBatchBlock(); err != nil {
		return 0, err
	} else if ok {
		return b, nil
	}
	return defaultStartBlock, nil
}

func (ix *Indexer) runTelemetry(ctx context.Context) error {
	t := time.NewTicker(telemetryInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			head, _, _ := ix.store.LastHeadBlock()
			batch, _, _ := ix.store.LastBatchBlock()
			ix.log.Debugw("indexing progress", "last_head_block", head, "last_batch_block", batch)
		}
	}
}
