// Package nodeclient pins the external interface a chain node must satisfy
// for the indexer core to consume it (spec.md §6): subscribe to finalized
// blocks, and resolve a block's events given its hash. Besides the
// contract, this package supplies RPCClient (rpc.go), a JSON-RPC client
// whose BlockEvents returns ErrNoEventDecoder, and Fake, an in-memory
// client used by tests and by the end-to-end scenarios in spec.md §8.
package nodeclient

import (
	"context"
	"errors"

	"github.com/idn-labs/substrate-index/internal/pallets"
)

// ErrBlockNotFound is returned when a requested block number has no
// corresponding hash -- either it's beyond the finalized tip, or (in the
// batch-backfill path) the node has pruned it.
var ErrBlockNotFound = errors.New("nodeclient: block not found")

// FinalizedHead describes one block announced on the finalized-heads
// subscription.
type FinalizedHead struct {
	Number uint32
	Hash   [32]byte
}

// BlockEvents is the per-block payload the indexer core needs: the runtime
// spec version active at that block (to select a metadata-driven decoder
// table) and the ordered event list itself.
type BlockEvents struct {
	SpecVersion uint32
	Events      []pallets.Event
}

// Metadata is the runtime metadata active at one spec version, keyed and
// cached by the indexer core per spec.md §4.4. Raw carries the metadata
// exactly as the node returned it; decoding it into named pallet/event
// tables requires a SCALE codec, which (like BlockEvents' event decode)
// neither the teacher nor the rest of the retrieval pack ships for Go --
// see ErrNoEventDecoder's doc comment. Callers needing pallet/event names
// use the statically compiled internal/pallets tables instead.
type Metadata struct {
	SpecVersion uint32
	Raw         []byte
}

// Client is the node-facing half of the indexer core (C4). Implementations
// must be safe for concurrent use: the head follower and the batch
// backfiller call BlockHash/BlockEvents/SpecVersion/Metadata concurrently.
type Client interface {
	// SubscribeFinalizedHeads streams newly finalized heads until ctx is
	// cancelled or the subscription breaks. A broken subscription is a
	// Node-class error (spec.md §7); callers resubscribe with backoff.
	SubscribeFinalizedHeads(ctx context.Context) (<-chan FinalizedHead, <-chan error, error)

	// BlockHash resolves a finalized block number to its hash. Returns
	// ErrBlockNotFound if the node cannot produce one.
	BlockHash(ctx context.Context, block uint32) ([32]byte, error)

	// SpecVersion reports the runtime spec version active at hash.
	SpecVersion(ctx context.Context, hash [32]byte) (uint32, error)

	// Metadata fetches the runtime metadata for the given spec version,
	// given some block hash known to fall within that version (spec.md §6
	// node-client contract item (d)). The indexer core caches the result
	// per spec version; this is only called on a cache miss.
	Metadata(ctx context.Context, hash [32]byte, specVersion uint32) (Metadata, error)

	// BlockEvents decodes the finalized event list at hash, tagged with the
	// runtime spec version the decode used, against the metadata in effect
	// for the given spec version.
	BlockEvents(ctx context.Context, hash [32]byte, specVersion uint32) (BlockEvents, error)
}
