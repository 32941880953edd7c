package indexer

import "fmt"

// Typed errors per spec.md §7's error-handling design: every failure mode
// an operator might need to distinguish gets its own type, not a bare
// fmt.Errorf, so the head/batch loops can decide whether to retry, skip, or
// abort.
type (
	// BlockNotFoundError wraps the node reporting no hash for a requested
	// block number. The batch backfiller skips that block and carries on
	// with the rest of its range; the head follower logs a warning and
	// waits for the next finalized head.
	BlockNotFoundError struct{ Block uint32 }

	// DecodeError wraps a pallet decoder failure. Logged and the
	// offending event's Variant key is still written (I1 holds
	// regardless of decode success), matching the original source's
	// log-and-continue per-event error handling.
	DecodeError struct {
		Block uint32
		Event uint16
		Err   error
	}

	// StoreError wraps a failure writing to the embedded store. The block
	// is not marked indexed (no span is extended). The batch backfiller
	// stops and logs it; the head follower treats it like a broken
	// subscription and resubscribes with backoff.
	StoreError struct{ Err error }

	// NodeError wraps an RPC/subscription failure talking to the chain
	// node. The head follower resubscribes with exponential backoff
	// (cenkalti/backoff); the batch backfiller stops and logs it. Neither
	// case stops the other pipeline.
	NodeError struct{ Err error }
)

func (e BlockNotFoundError) Error() string { return fmt.Sprintf("indexer: block %d not found", e.Block) }

func (e DecodeError) Error() string {
	return fmt.Sprintf("indexer: decode block %d event %d: %v", e.Block, e.Event, e.Err)
}
func (e DecodeError) Unwrap() error { return e.Err }

func (e StoreError) Error() string { return fmt.Sprintf("indexer: store: %v", e.Err) }
func (e StoreError) Unwrap() error { return e.Err }

func (e NodeError) Error() string { return fmt.Sprintf("indexer: node: %v", e.Err) }
func (e NodeError) Unwrap() error { return e.Err }
