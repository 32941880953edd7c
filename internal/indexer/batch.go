package indexer

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// backfillRPCRate caps how many blocks per second the batch backfiller
// starts indexing (each block issues several node RPC calls), independent
// of queueDepth's in-flight cap: queueDepth bounds concurrency, this bounds
// request rate against a node that answers slowly under load rather than
// rejecting connections outright.
const backfillRPCRate = 200

// checkpointInterval is how often the backfiller persists LastBatchBlock.
// Smaller than this and every block pays a store write just for
// checkpointing; larger and a crash re-does more work than necessary on
// restart. 1000 matches the batch-size order of magnitude the original
// source's queue_depth-bounded backfill already worked in.
const checkpointInterval = 1000

// runBatchBackfiller indexes blocks [from, to) with up to queueDepth
// in-flight at once, the same bounded-window concurrency the teacher's
// header downloader uses rather than an unbounded fan-out that would let
// the backfiller run arbitrarily far ahead of its own checkpointing.
func (ix *Indexer) runBatchBackfiller(ctx context.Context, from, to uint32) error {
	if from >= to {
		return ix.store.SetBatchIndexingComplete(true)
	}

	queueDepth := ix.cfg.QueueDepth
	if queueDepth <= 0 {
		queueDepth = 32
	}

	sem := semaphore.NewWeighted(int64(queueDepth))
	limiter := rate.NewLimiter(rate.Limit(backfillRPCRate), queueDepth)
	g, gctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	highestCheckpointed := from

	for block := from; block < to; block++ {
		block := block
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			if err := limiter.Wait(gctx); err != nil {
				return nil
			}
			if err := ix.indexOneBlock(gctx, block); err != nil {
				var bnf BlockNotFoundError
				if errors.As(err, &bnf) {
					return nil
				}
				return err
			}

			mu.Lock()
			if block > highestCheckpointed {
				highestCheckpointed = block
			}
			due := highestCheckpointed
			mu.Unlock()

			if block%checkpointInterval == 0 {
				if err := ix.store.SetLastBatchBlock(due); err != nil {
					return StoreError{Err: err}
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := ix.store.SetLastBatchBlock(to - 1); err != nil {
		return StoreError{Err: err}
	}
	return ix.store.SetBatchIndexingComplete(true)
}
