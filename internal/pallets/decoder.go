// Package pallets holds the per-pallet event decoders (C3). Each decoder
// pattern-matches on the variant discriminant and returns the attribute
// keys present in the event's payload; the indexer core (internal/indexer)
// writes each returned key, and writes the Variant key unconditionally
// regardless of what a decoder returns. Decoders never touch the store --
// this is "key emission", the source's cyclic store-handle-per-decoder
// pattern rewritten as spec.md §9 prescribes.
package pallets

import "github.com/idn-labs/substrate-index/internal/keys"

// Event is the minimal view of a decoded chain event a decoder needs. The
// concrete implementation is supplied by the external metadata/event
// adapter pinned in spec.md §6; this package only depends on the shape.
type Event interface {
	Pallet() uint8
	Variant() uint8
	VariantName() string

	AccountID(field string) ([32]byte, bool)
	Hash(field string) ([32]byte, bool)
	U32(field string) (uint32, bool)
}

// Decoder enumerates the attribute keys one event's payload carries. A
// decoder must emit every indexable attribute value the event contains and
// must not emit values of other kinds (spec.md §4.3); it is pure and
// stateless.
type Decoder func(ev Event) []keys.Attribute

// Registry maps a pallet index to its decoder. The set is open: a new
// chain variant is supported by registering one more decoder, not by
// touching the core.
type Registry struct {
	byPallet map[uint8]Decoder
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{byPallet: map[uint8]Decoder{}}
}

// Register binds a decoder to a pallet index. Registering the same pallet
// twice replaces the previous decoder -- used by runtime-version-specific
// static tables built at startup (spec.md §9).
func (r *Registry) Register(pallet uint8, d Decoder) {
	r.byPallet[pallet] = d
}

// Decode dispatches to the decoder registered for ev.Pallet(), returning
// nil if no decoder is registered for that pallet (the event still gets
// its Variant row from the core; I1 holds regardless).
func (r *Registry) Decode(ev Event) []keys.Attribute {
	d, ok := r.byPallet[ev.Pallet()]
	if !ok {
		return nil
	}
	return d(ev)
}

// Default builds the registry of decoders this module ships, indexed by
// the pallet constants in pallet_ids.go. Callers building a runtime-version-
// specific table start from Default() and Register additional/overriding
// decoders as needed.
func Default() *Registry {
	r := NewRegistry()
	r.Register(PalletSystem, DecodeSystem)
	r.Register(PalletIndices, DecodeIndices)
	r.Register(PalletBalances, DecodeBalances)
	r.Register(PalletSession, DecodeSession)
	r.Register(PalletStaking, DecodeStaking)
	r.Register(PalletDemocracy, DecodeDemocracy)
	r.Register(PalletCouncil, DecodeCollective)
	r.Register(PalletTechnicalCommittee, DecodeCollective)
	r.Register(PalletElectionsPhragmen, DecodeElectionsPhragmen)
	r.Register(PalletTreasury, DecodeTreasury)
	r.Register(PalletBounties, DecodeBounties)
	r.Register(PalletChildBounties, DecodeChildBounties)
	r.Register(PalletTips, DecodeTips)
	r.Register(PalletIdentity, DecodeIdentity)
	r.Register(PalletProxy, DecodeProxy)
	r.Register(PalletMultisig, DecodeMultisig)
	r.Register(PalletPreimage, DecodePreimage)
	r.Register(PalletFastUnstake, DecodeFastUnstake)
	r.Register(PalletNominationPools, DecodeNominationPools)
	r.Register(PalletAuctions, DecodeAuctions)
	r.Register(PalletCrowdloan, DecodeCrowdloan)
	r.Register(PalletParasRegistrar, DecodeParasRegistrar)
	r.Register(PalletParachainsDisputes, DecodeParachainsDisputes)
	return r
}
