package nodeclient

import "github.com/idn-labs/substrate-index/internal/pallets"

// Event is a concrete, test-friendly implementation of pallets.Event backed
// by plain field maps rather than a SCALE-decoded struct. A production
// client adapts the real node's decoded event type to this shape (or
// implements pallets.Event directly); this module fixes the interface, not
// the wire decode.
type Event struct {
	PalletIdx  uint8
	VariantIdx uint8
	Name       string

	Accounts map[string][32]byte
	Hashes   map[string][32]byte
	U32s     map[string]uint32
}

var _ pallets.Event = Event{}

func (e Event) Pallet() uint8       { return e.PalletIdx }
func (e Event) Variant() uint8      { return e.VariantIdx }
func (e Event) VariantName() string { return e.Name }

func (e Event) AccountID(field string) ([32]byte, bool) {
	v, ok := e.Accounts[field]
	return v, ok
}

func (e Event) Hash(field string) ([32]byte, bool) {
	v, ok := e.Hashes[field]
	return v, ok
}

func (e Event) U32(field string) (uint32, bool) {
	v, ok := e.U32s[field]
	return v, ok
}
