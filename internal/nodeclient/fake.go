package nodeclient

import (
	"context"
	"sync"

	"github.com/idn-labs/substrate-index/internal/pallets"
)

// FakeBlock is one entry in a Fake client's chain.
type FakeBlock struct {
	Hash        [32]byte
	SpecVersion uint32
	Events      []pallets.Event
	Metadata    []byte
}

// Fake is an in-memory Client used by the indexer's tests and by spec.md
// §8's end-to-end scenarios: a deterministic chain fed by the test, with no
// real network involved.
type Fake struct {
	mu     sync.Mutex
	blocks map[uint32]FakeBlock
	heads  chan FinalizedHead
}

// NewFake builds an empty fake client; use Append to extend its chain and
// Finalize to push a block onto the finalized-heads subscription.
func NewFake() *Fake {
	return &Fake{
		blocks: map[uint32]FakeBlock{},
		heads:  make(chan FinalizedHead, 256),
	}
}

// Append records a block at the given number, overwriting any block
// previously recorded there (used to simulate version-skew reorg tests).
func (f *Fake) Append(number uint32, b FakeBlock) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blocks[number] = b
}

// Finalize pushes number onto the finalized-heads stream. The block must
// already have been Appended.
func (f *Fake) Finalize(number uint32) {
	f.mu.Lock()
	b, ok := f.blocks[number]
	f.mu.Unlock()
	if !ok {
		panic("nodeclient: Finalize of unappended block")
	}
	f.heads <- FinalizedHead{Number: number, Hash: b.Hash}
}

func (f *Fake) SubscribeFinalizedHeads(ctx context.Context) (<-chan FinalizedHead, <-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		<-ctx.Done()
		errc <- ctx.Err()
	}()
	return f.heads, errc, nil
}

func (f *Fake) BlockHash(ctx context.Context, number uint32) ([32]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blocks[number]
	if !ok {
		return [32]byte{}, ErrBlockNotFound
	}
	return b.Hash, nil
}

func (f *Fake) SpecVersion(ctx context.Context, hash [32]byte) (uint32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.blocks {
		if b.Hash == hash {
			return b.SpecVersion, nil
		}
	}
	return 0, ErrBlockNotFound
}

func (f *Fake) Metadata(ctx context.Context, hash [32]byte, specVersion uint32) (Metadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.blocks {
		if b.Hash == hash {
			return Metadata{SpecVersion: b.SpecVersion, Raw: b.Metadata}, nil
		}
	}
	return Metadata{}, ErrBlockNotFound
}

func (f *Fake) BlockEvents(ctx context.Context, hash [32]byte, specVersion uint32) (BlockEvents, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.blocks {
		if b.Hash == hash {
			return BlockEvents{SpecVersion: b.SpecVersion, Events: b.Events}, nil
		}
	}
	return BlockEvents{}, ErrBlockNotFound
}

var _ Client = (*Fake)(nil)
