package nodeclient_test

import (
	"context"
	"testing"
	"time"

	"github.com/idn-labs/substrate-index/internal/nodeclient"
	"github.com/idn-labs/substrate-index/internal/pallets"
)

func TestFakeBlockHashNotFound(t *testing.T) {
	f := nodeclient.NewFake()
	if _, err := f.BlockHash(context.Background(), 1); err != nodeclient.ErrBlockNotFound {
		t.Fatalf("expected ErrBlockNotFound, got %v", err)
	}
}

func TestFakeAppendThenResolve(t *testing.T) {
	f := nodeclient.NewFake()
	hash := [32]byte{1, 2, 3}
	f.Append(10, nodeclient.FakeBlock{Hash: hash, SpecVersion: 7})

	gotHash, err := f.BlockHash(context.Background(), 10)
	if err != nil {
		t.Fatalf("BlockHash: %v", err)
	}
	if gotHash != hash {
		t.Fatalf("expected hash %v, got %v", hash, gotHash)
	}

	spec, err := f.SpecVersion(context.Background(), hash)
	if err != nil {
		t.Fatalf("SpecVersion: %v", err)
	}
	if spec != 7 {
		t.Fatalf("expected spec version 7, got %d", spec)
	}
}

func TestFakeFinalizeOfUnappendedBlockPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic finalizing an unappended block")
		}
	}()
	nodeclient.NewFake().Finalize(1)
}

func TestFakeFinalizeDeliversOnSubscription(t *testing.T) {
	f := nodeclient.NewFake()
	hash := [32]byte{9}
	f.Append(5, nodeclient.FakeBlock{Hash: hash, SpecVersion: 1})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	heads, errc, err := f.SubscribeFinalizedHeads(ctx)
	if err != nil {
		t.Fatalf("SubscribeFinalizedHeads: %v", err)
	}

	f.Finalize(5)
	select {
	case head := <-heads:
		if head.Number != 5 || head.Hash != hash {
			t.Fatalf("unexpected head: %+v", head)
		}
	case err := <-errc:
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for finalized head")
	}
}

func TestFakeSubscriptionBreaksOnContextCancel(t *testing.T) {
	f := nodeclient.NewFake()
	ctx, cancel := context.WithCancel(context.Background())
	_, errc, err := f.SubscribeFinalizedHeads(ctx)
	if err != nil {
		t.Fatalf("SubscribeFinalizedHeads: %v", err)
	}
	cancel()
	select {
	case err := <-errc:
		if err == nil {
			t.Fatal("expected a non-nil context error")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for subscription error")
	}
}

func TestFakeMetadataReturnsAppendedRaw(t *testing.T) {
	f := nodeclient.NewFake()
	hash := [32]byte{7}
	f.Append(6, nodeclient.FakeBlock{Hash: hash, SpecVersion: 3, Metadata: []byte{0xde, 0xad}})

	m, err := f.Metadata(context.Background(), hash, 3)
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	if m.SpecVersion != 3 || string(m.Raw) != string([]byte{0xde, 0xad}) {
		t.Fatalf("unexpected metadata: %+v", m)
	}
}

func TestFakeMetadataUnknownHashErrors(t *testing.T) {
	f := nodeclient.NewFake()
	if _, err := f.Metadata(context.Background(), [32]byte{1}, 1); err != nodeclient.ErrBlockNotFound {
		t.Fatalf("expected ErrBlockNotFound, got %v", err)
	}
}

func TestFakeBlockEventsReturnsAppendedEvents(t *testing.T) {
	f := nodeclient.NewFake()
	hash := [32]byte{4}
	f.Append(3, nodeclient.FakeBlock{
		Hash:        hash,
		SpecVersion: 2,
		Events:      []pallets.Event{nodeclient.Event{PalletIdx: 4, VariantIdx: 0, Name: "Endowed"}},
	})

	be, err := f.BlockEvents(context.Background(), hash, 2)
	if err != nil {
		t.Fatalf("BlockEvents: %v", err)
	}
	if len(be.Events) != 1 || be.SpecVersion != 2 {
		t.Fatalf("unexpected events payload: %+v", be)
	}
}
