// Package indexer implements the indexer core (C4): a dual-pipeline
// consumer of the node-client contract (internal/nodeclient) that decodes
// finalized-block events through the pallet registry (internal/pallets)
// and writes index rows through the store (internal/store), fanning out
// each write through the subscription hub (internal/hub).
//
// The two pipelines -- a head follower tracking the live finalized tip, and
// a batch backfiller catching the store up to where the head follower
// started -- run side by side as goroutines under one errgroup (see Run),
// the way the teacher's cmd/headers/download downloader runs its
// header-fetch and body-fetch loops side by side.
package indexer

import (
	"context"
	"fmt"
	"math"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/idn-labs/substrate-index/internal/hub"
	"github.com/idn-labs/substrate-index/internal/keys"
	"github.com/idn-labs/substrate-index/internal/metrics"
	"github.com/idn-labs/substrate-index/internal/nodeclient"
	"github.com/idn-labs/substrate-index/internal/pallets"
	"github.com/idn-labs/substrate-index/internal/store"
)

// Config configures an Indexer's runtime behavior. See internal/config for
// how these are populated from flags.
type Config struct {
	QueueDepth         int
	StartBlock         *uint32
	BlockHashCacheSize int
}

// Indexer owns one chain's live index: the store it writes to, the node
// it reads from, the decoder table it applies, and the subscribers it
// notifies.
type Indexer struct {
	store    *store.Store
	client   nodeclient.Client
	registry *pallets.Registry
	hub      *hub.Hub
	log      *zap.SugaredLogger
	cfg      Config

	hashCache *lru.Cache[uint32, [32]byte]

	// metadataMu guards metadataCache: a per-spec-version metadata cache
	// (spec.md §4.4) so concurrent block fetches can read metadata in
	// parallel while a metadata download is exclusive.
	metadataMu    sync.RWMutex
	metadataCache map[uint32]nodeclient.Metadata
}

// New builds an Indexer. registry is typically pallets.Default(), extended
// by the caller with runtime-version-specific overrides.
func New(s *store.Store, client nodeclient.Client, registry *pallets.Registry, h *hub.Hub, log *zap.SugaredLogger, cfg Config) (*Indexer, error) {
	if cfg.BlockHashCacheSize <= 0 {
		cfg.BlockHashCacheSize = 1024
	}
	cache, err := lru.New[uint32, [32]byte](cfg.BlockHashCacheSize)
	if err != nil {
		return nil, fmt.Errorf("indexer: build hash cache: %w", err)
	}
	return &Indexer{
		store: s, client: client, registry: registry, hub: h, log: log, cfg: cfg,
		hashCache:     cache,
		metadataCache: map[uint32]nodeclient.Metadata{},
	}, nil
}

// metadataFor returns the runtime metadata for specVersion, fetching it
// from the node and populating the cache on a miss. Per spec.md §4.4 step
// 3: a cache hit takes only a read lock; a miss upgrades to a write lock
// and re-checks before fetching, so two readers racing on the same
// uncached spec version don't both pay for the node round-trip.
func (ix *Indexer) metadataFor(ctx context.Context, hash [32]byte, specVersion uint32) (nodeclient.Metadata, error) {
	ix.metadataMu.RLock()
	m, ok := ix.metadataCache[specVersion]
	ix.metadataMu.RUnlock()
	if ok {
		return m, nil
	}

	ix.metadataMu.Lock()
	defer ix.metadataMu.Unlock()
	if m, ok := ix.metadataCache[specVersion]; ok {
		return m, nil
	}
	m, err := ix.client.Metadata(ctx, hash, specVersion)
	if err != nil {
		return nodeclient.Metadata{}, err
	}
	ix.metadataCache[specVersion] = m
	return m, nil
}

// resolveHash resolves a block number to its hash, consulting the recent
// hash LRU before calling out to the node (spec.md §12.1: the head
// follower and the backfiller's trailing edge repeatedly touch the same
// handful of recent blocks).
func (ix *Indexer) resolveHash(ctx context.Context, block uint32) ([32]byte, error) {
	if h, ok := ix.hashCache.Get(block); ok {
		return h, nil
	}
	h, err := ix.client.BlockHash(ctx, block)
	if err != nil {
		return [32]byte{}, err
	}
	ix.hashCache.Add(block, h)
	return h, nil
}

// indexOneBlock is the unit of work shared by both pipelines: resolve the
// block's hash and spec version, decode its events, write every attribute
// key they carry plus the unconditional Variant key (I1), notify
// subscribers, and extend the span covering this block.
func (ix *Indexer) indexOneBlock(ctx context.Context, block uint32) error {
	hash, err := ix.resolveHash(ctx, block)
	if err != nil {
		if err == nodeclient.ErrBlockNotFound {
			return BlockNotFoundError{Block: block}
		}
		metrics.NodeErrors.Inc()
		return NodeError{Err: err}
	}

	specVersion, err := ix.client.SpecVersion(ctx, hash)
	if err != nil {
		metrics.NodeErrors.Inc()
		return NodeError{Err: err}
	}

	if err := ix.handleVersionSkew(block, specVersion); err != nil {
		return StoreError{Err: err}
	}

	if _, err := ix.metadataFor(ctx, hash, specVersion); err != nil {
		metrics.NodeErrors.Inc()
		return NodeError{Err: err}
	}

	payload, err := ix.client.BlockEvents(ctx, hash, specVersion)
	if err != nil {
		metrics.NodeErrors.Inc()
		return NodeError{Err: err}
	}

	for i, ev := range payload.Events {
		if i > math.MaxUint16 {
			ix.log.Errorw("event ordinal does not fit in 16 bits; event skipped", "block", block, "event", i)
			continue
		}
		eventIdx := uint16(i)
		pos := keys.Position{Block: block, Event: eventIdx}

		variant := keys.VariantAttr(ev.Pallet(), ev.Variant())
		if err := ix.writeAttribute(variant, pos); err != nil {
			return StoreError{Err: err}
		}

		attrs := ix.registry.Decode(ev)
		for _, a := range attrs {
			if err := ix.writeAttribute(a, pos); err != nil {
				return StoreError{Err: err}
			}
		}
		metrics.EventsIndexed.Inc()
	}

	if err := ix.store.ExtendSpan(block, specVersion); err != nil {
		return StoreError{Err: err}
	}
	metrics.BlocksIndexed.Inc()
	return nil
}

func (ix *Indexer) writeAttribute(a keys.Attribute, pos keys.Position) error {
	if err := ix.store.InsertAttribute(a, pos); err != nil {
		return err
	}
	metrics.AttributeRowsWritten.Inc()
	ix.hub.Notify(a, pos)
	return nil
}

// handleVersionSkew implements Open Question (a) from spec.md §9: when a
// block is indexed a second time (e.g. after a node-side reorg at the
// finality boundary) under a different runtime spec version than its
// existing span recorded, the entire span it belongs to is invalidated and
// rebuilt rather than patched in place -- correctness over salvaging a
// partial span.
func (ix *Indexer) handleVersionSkew(block, specVersion uint32) error {
	sp, ok, err := ix.store.FindSpanCovering(block)
	if err != nil || !ok {
		return err
	}
	if sp.SpecVersion == specVersion {
		return nil
	}
	if err := ix.store.InvalidateRange(sp.Start, sp.End); err != nil {
		return err
	}
	metrics.SpanInvalidations.Inc()
	ix.log.Warnw("invalidated span on spec-version skew",
		"span_start", sp.Start, "span_end", sp.End,
		"old_spec_version", sp.SpecVersion, "new_spec_version", specVersion)
	return nil
}
