package indexer

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/idn-labs/substrate-index/internal/metrics"
	"github.com/idn-labs/substrate-index/internal/nodeclient"
)

// runHeadFollower drives the head-following pipeline from the subscription
// Run already opened (and the first head Run already read off it, to learn
// head_start_block) rather than opening a second, independent
// chain_subscribeFinalizedHeads subscription for the same process. Only a
// later reconnect after a broken subscription opens a new one, via
// followOnce. A broken subscription is retried with exponential backoff
// rather than treated as fatal -- node restarts and network blips are
// routine, not exceptional, for a long-running indexer.
func (ix *Indexer) runHeadFollower(ctx context.Context, firstHead nodeclient.FinalizedHead, heads <-chan nodeclient.FinalizedHead, errc <-chan error) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 0 // retry forever; only ctx cancellation stops us

	useInitial := true
	for {
		var err error
		if useInitial {
			useInitial = false
			if err = ix.onFinalizedHead(ctx, firstHead); err == nil {
				err = ix.followWith(ctx, heads, errc)
			}
		} else {
			err = ix.followOnce(ctx)
		}

		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			ix.log.Warnw("head subscription broken, resubscribing", "error", err)
			select {
			case <-time.After(bo.NextBackOff()):
			case <-ctx.Done():
				return nil
			}
			continue
		}
		bo.Reset()
		if ctx.Err() != nil {
			return nil
		}
	}
}

// followOnce opens a fresh finalized-heads subscription and drives it until
// it breaks or ctx is cancelled. Used for reconnects only -- the initial
// subscription is threaded in from Run via runHeadFollower's parameters.
func (ix *Indexer) followOnce(ctx context.Context) error {
	heads, errc, err := ix.client.SubscribeFinalizedHeads(ctx)
	if err != nil {
		metrics.NodeErrors.Inc()
		return NodeError{Err: err}
	}
	return ix.followWith(ctx, heads, errc)
}

func (ix *Indexer) followWith(ctx context.Context, heads <-chan nodeclient.FinalizedHead, errc <-chan error) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errc:
			metrics.NodeErrors.Inc()
			return NodeError{Err: err}
		case head, ok := <-heads:
			if !ok {
				return nil
			}
			if err := ix.onFinalizedHead(ctx, head); err != nil {
				return err
			}
		}
	}
}

func (ix *Indexer) onFinalizedHead(ctx context.Context, head nodeclient.FinalizedHead) error {
	ix.hashCache.Add(head.Number, head.Hash)
	if err := ix.indexOneBlock(ctx, head.Number); err != nil {
		var bnf BlockNotFoundError
		if errors.As(err, &bnf) {
			ix.log.Warnw("finalized head disappeared before indexing", "block", head.Number)
			return nil
		}
		return err
	}
	if err := ix.store.SetLastHeadBlock(head.Number); err != nil {
		return StoreError{Err: err}
	}
	return nil
}
