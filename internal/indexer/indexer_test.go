package indexer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/idn-labs/substrate-index/internal/hub"
	"github.com/idn-labs/substrate-index/internal/keys"
	"github.com/idn-labs/substrate-index/internal/nodeclient"
	"github.com/idn-labs/substrate-index/internal/pallets"
	"github.com/idn-labs/substrate-index/internal/store"
)

func newTestIndexer(t *testing.T) (*Indexer, *store.Store, *nodeclient.Fake) {
	t.Helper()
	s, err := store.Open("", store.Options{InMemory: true}, zap.NewNop().Sugar())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	client := nodeclient.NewFake()
	ix, err := New(s, client, pallets.Default(), hub.New(), zap.NewNop().Sugar(), Config{})
	require.NoError(t, err)
	return ix, s, client
}

func blockHash(b byte) [32]byte {
	var h [32]byte
	h[0] = b
	return h
}

func TestIndexOneBlockWritesVariantAndAttributeRows(t *testing.T) {
	ix, s, client := newTestIndexer(t)
	who := blockHash(7)
	client.Append(1, nodeclient.FakeBlock{
		Hash:        blockHash(1),
		SpecVersion: 1,
		Events: []pallets.Event{
			nodeclient.Event{
				PalletIdx: pallets.PalletBalances, VariantIdx: 0, Name: "Endowed",
				Accounts: map[string][32]byte{"account": who},
			},
		},
	})

	require.NoError(t, ix.indexOneBlock(context.Background(), 1))

	has, err := s.HasVariant(pallets.PalletBalances, 0, keys.Position{Block: 1, Event: 0})
	require.NoError(t, err)
	require.True(t, has)

	positions, err := s.QueryPositions(keys.Bytes32Attr(keys.KindAccountID, who), 10)
	require.NoError(t, err)
	require.Equal(t, []keys.Position{{Block: 1, Event: 0}}, positions)
}

func TestIndexOneBlockUnknownBlockReturnsBlockNotFoundError(t *testing.T) {
	ix, _, _ := newTestIndexer(t)
	err := ix.indexOneBlock(context.Background(), 99)
	var bnf BlockNotFoundError
	require.ErrorAs(t, err, &bnf)
	require.Equal(t, uint32(99), bnf.Block)
}

func TestIndexOneBlockExtendsSpan(t *testing.T) {
	ix, s, client := newTestIndexer(t)
	client.Append(1, nodeclient.FakeBlock{Hash: blockHash(1), SpecVersion: 5})
	client.Append(2, nodeclient.FakeBlock{Hash: blockHash(2), SpecVersion: 5})

	require.NoError(t, ix.indexOneBlock(context.Background(), 1))
	require.NoError(t, ix.indexOneBlock(context.Background(), 2))

	sp, ok, err := s.FindSpanCovering(2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, store.Span{Start: 1, End: 2, SpecVersion: 5}, sp)
}

func TestHandleVersionSkewInvalidatesCoveringSpan(t *testing.T) {
	ix, s, client := newTestIndexer(t)
	client.Append(1, nodeclient.FakeBlock{Hash: blockHash(1), SpecVersion: 1})
	require.NoError(t, ix.indexOneBlock(context.Background(), 1))

	who := blockHash(3)
	client.Append(1, nodeclient.FakeBlock{
		Hash:        blockHash(10), // new hash, simulating a re-finalized block
		SpecVersion: 2,
		Events: []pallets.Event{
			nodeclient.Event{PalletIdx: pallets.PalletBalances, VariantIdx: 0, Name: "Endowed",
				Accounts: map[string][32]byte{"account": who}},
		},
	})
	// Re-indexing block 1 under a new spec version must invalidate the
	// existing span rather than silently extend it under the old version.
	require.NoError(t, ix.indexOneBlock(context.Background(), 1))

	sp, ok, err := s.FindSpanCovering(1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint32(2), sp.SpecVersion)
}

func TestWriteAttributeNotifiesHub(t *testing.T) {
	ix, _, _ := newTestIndexer(t)
	received := make(chan hub.Notification, 1)
	ix.hub.Subscribe(keys.VariantAttr(4, 1), notifierFunc(func(n hub.Notification) bool {
		received <- n
		return true
	}))

	pos := keys.Position{Block: 3, Event: 0}
	require.NoError(t, ix.writeAttribute(keys.VariantAttr(4, 1), pos))

	select {
	case n := <-received:
		require.Equal(t, pos, n.Position)
	default:
		t.Fatal("expected hub notification")
	}
}

type notifierFunc func(hub.Notification) bool

func (f notifierFunc) Send(n hub.Notification) bool { return f(n) }

// countingMetadataClient wraps a Fake to count Metadata calls, proving the
// indexer's per-spec-version cache (spec.md §4.4) only fetches once per
// spec version rather than once per block.
type countingMetadataClient struct {
	*nodeclient.Fake
	calls int
}

func (c *countingMetadataClient) Metadata(ctx context.Context, hash [32]byte, specVersion uint32) (nodeclient.Metadata, error) {
	c.calls++
	return c.Fake.Metadata(ctx, hash, specVersion)
}

func TestMetadataForCachesPerSpecVersion(t *testing.T) {
	s, err := store.Open("", store.Options{InMemory: true}, zap.NewNop().Sugar())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	client := &countingMetadataClient{Fake: nodeclient.NewFake()}
	client.Append(1, nodeclient.FakeBlock{Hash: blockHash(1), SpecVersion: 9, Metadata: []byte{1}})
	client.Append(2, nodeclient.FakeBlock{Hash: blockHash(2), SpecVersion: 9, Metadata: []byte{1}})

	ix, err := New(s, client, pallets.Default(), hub.New(), zap.NewNop().Sugar(), Config{})
	require.NoError(t, err)

	require.NoError(t, ix.indexOneBlock(context.Background(), 1))
	require.NoError(t, ix.indexOneBlock(context.Background(), 2))

	require.Equal(t, 1, client.calls)
}
