package store

import (
	"testing"

	"github.com/idn-labs/substrate-index/internal/keys"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("", Options{InMemory: true}, zap.NewNop().Sugar())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestDescendingScanOnHotKey(t *testing.T) {
	s := openTestStore(t)
	attr := keys.Bytes32Attr(keys.KindAccountID, [32]byte{0x11})
	positions := []keys.Position{
		{Block: 100, Event: 0},
		{Block: 100, Event: 1},
		{Block: 200, Event: 0},
		{Block: 50, Event: 5},
	}
	for _, p := range positions {
		require.NoError(t, s.InsertAttribute(attr, p))
	}

	got, err := s.QueryPositions(attr, 1000)
	require.NoError(t, err)
	require.Equal(t, []keys.Position{
		{Block: 200, Event: 0},
		{Block: 100, Event: 1},
		{Block: 100, Event: 0},
		{Block: 50, Event: 5},
	}, got)
}

func TestCapAtLimit(t *testing.T) {
	s := openTestStore(t)
	attr := keys.U32Attr(keys.KindBountyIndex, 42)
	for b := uint32(0); b < 1500; b++ {
		require.NoError(t, s.InsertAttribute(attr, keys.Position{Block: b, Event: 0}))
	}

	got, err := s.QueryPositions(attr, 1000)
	require.NoError(t, err)
	require.Len(t, got, 1000)
	require.Equal(t, uint32(1499), got[0].Block)
	require.Equal(t, uint32(500), got[999].Block)
}

func TestIdempotentInsert(t *testing.T) {
	s := openTestStore(t)
	attr := keys.VariantAttr(4, 2)
	pos := keys.Position{Block: 10, Event: 0}
	require.NoError(t, s.InsertAttribute(attr, pos))
	require.NoError(t, s.InsertAttribute(attr, pos))

	got, err := s.QueryPositions(attr, 10)
	require.NoError(t, err)
	require.Equal(t, []keys.Position{pos}, got)
}

func TestSpanExtendAndMerge(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.ExtendSpan(100, 9110))
	sp, ok, err := s.FindSpanEndingAt(100)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Span{Start: 100, End: 100, SpecVersion: 9110}, sp)

	require.NoError(t, s.ExtendSpan(101, 9110))
	_, ok, err = s.FindSpanEndingAt(100)
	require.NoError(t, err)
	require.False(t, ok, "old span key should be gone after extend")

	sp, ok, err = s.FindSpanEndingAt(101)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Span{Start: 100, End: 101, SpecVersion: 9110}, sp)

	cover, ok, err := s.FindSpanCovering(100)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, sp, cover)
}

func TestSpanVersionBoundaryDoesNotMerge(t *testing.T) {
	s := openTestStore(t)
	for b := uint32(80); b <= 100; b++ {
		require.NoError(t, s.ExtendSpan(b, 9110))
	}
	for b := uint32(101); b <= 120; b++ {
		require.NoError(t, s.ExtendSpan(b, 9111))
	}

	spans, err := s.LoadSpans()
	require.NoError(t, err)
	require.Equal(t, []Span{
		{Start: 80, End: 100, SpecVersion: 9110},
		{Start: 101, End: 120, SpecVersion: 9111},
	}, spans)
}

func TestLoadSpansMergesAdjacentEqualVersion(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.PutSpan(Span{Start: 0, End: 9, SpecVersion: 1}))
	require.NoError(t, s.PutSpan(Span{Start: 10, End: 19, SpecVersion: 1}))
	require.NoError(t, s.PutSpan(Span{Start: 21, End: 29, SpecVersion: 1}))

	spans, err := s.LoadSpans()
	require.NoError(t, err)
	require.Equal(t, []Span{
		{Start: 0, End: 19, SpecVersion: 1},
		{Start: 21, End: 29, SpecVersion: 1},
	}, spans)
}

func TestInvalidateRangeDropsOnlyThatRange(t *testing.T) {
	s := openTestStore(t)
	attr := keys.Bytes32Attr(keys.KindAccountID, [32]byte{0x22})
	require.NoError(t, s.InsertAttribute(attr, keys.Position{Block: 50, Event: 0}))
	require.NoError(t, s.InsertAttribute(attr, keys.Position{Block: 150, Event: 0}))
	require.NoError(t, s.ExtendSpan(50, 1))
	require.NoError(t, s.ExtendSpan(150, 2))

	require.NoError(t, s.InvalidateRange(100, 200))

	got, err := s.QueryPositions(attr, 10)
	require.NoError(t, err)
	require.Equal(t, []keys.Position{{Block: 50, Event: 0}}, got)

	_, ok, err := s.FindSpanEndingAt(150)
	require.NoError(t, err)
	require.False(t, ok)
	_, ok, err = s.FindSpanEndingAt(50)
	require.NoError(t, err)
	require.True(t, ok)
}
