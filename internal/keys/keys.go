// Package keys defines the byte layout of every index key (C1).
//
// Each attribute kind maps to one named tree (see TreeName). Inside a tree
// the byte key is attribute-bytes || block_number(big-endian,4) ||
// event_index(big-endian,2). The big-endian suffix is what lets a prefix
// scan with reverse iteration enumerate positions newest-first without a
// sort step.
package keys

import (
	"encoding/binary"
	"fmt"
)

// Kind identifies which attribute tree a key belongs to.
type Kind uint8

const (
	KindVariant Kind = iota
	KindAccountID
	KindPreimageHash
	KindProposalHash
	KindTipHash
	KindCandidateHash
	KindMessageID
	KindSubscriptionID
	KindAccountIndex
	KindAuctionIndex
	KindBountyIndex
	KindEraIndex
	KindParaID
	KindPoolID
	KindProposalIndex
	KindRefIndex
	KindRegistrarIndex
	KindSessionIndex

	kindSentinel // keep last
)

type family uint8

const (
	familyVariant family = iota
	familyBytes32
	familyU32
)

var kindFamily = map[Kind]family{
	KindVariant:        familyVariant,
	KindAccountID:      familyBytes32,
	KindPreimageHash:   familyBytes32,
	KindProposalHash:   familyBytes32,
	KindTipHash:        familyBytes32,
	KindCandidateHash:  familyBytes32,
	KindMessageID:      familyBytes32,
	KindSubscriptionID: familyBytes32,
	KindAccountIndex:   familyU32,
	KindAuctionIndex:   familyU32,
	KindBountyIndex:    familyU32,
	KindEraIndex:       familyU32,
	KindParaID:         familyU32,
	KindPoolID:         familyU32,
	KindProposalIndex:  familyU32,
	KindRefIndex:       familyU32,
	KindRegistrarIndex: familyU32,
	KindSessionIndex:   familyU32,
}

// treeNames mirrors the teacher's dbutils.Buckets table: one name per tree,
// checked for completeness in init().
var treeNames = map[Kind]string{
	KindVariant:        "variant",
	KindAccountID:      "account_id",
	KindPreimageHash:   "preimage_hash",
	KindProposalHash:   "proposal_hash",
	KindTipHash:        "tip_hash",
	KindCandidateHash:  "candidate_hash",
	KindMessageID:      "message_id",
	KindSubscriptionID: "subscription_id",
	KindAccountIndex:   "account_index",
	KindAuctionIndex:   "auction_index",
	KindBountyIndex:    "bounty_index",
	KindEraIndex:       "era_index",
	KindParaID:         "para_id",
	KindPoolID:         "pool_id",
	KindProposalIndex:  "proposal_index",
	KindRefIndex:       "ref_index",
	KindRegistrarIndex: "registrar_index",
	KindSessionIndex:   "session_index",
}

func init() {
	for k := Kind(0); k < kindSentinel; k++ {
		if _, ok := treeNames[k]; !ok {
			panic(fmt.Sprintf("keys: kind %d has no tree name", k))
		}
		if _, ok := kindFamily[k]; !ok {
			panic(fmt.Sprintf("keys: kind %d has no family", k))
		}
	}
}

// AllKinds lists every attribute kind except KindVariant, which is written
// unconditionally by the core rather than returned by a decoder.
func AllKinds() []Kind {
	out := make([]Kind, 0, int(kindSentinel)-1)
	for k := Kind(1); k < kindSentinel; k++ {
		out = append(out, k)
	}
	return out
}

// TreeName returns the store tree this kind's rows live in.
func (k Kind) TreeName() string {
	name, ok := treeNames[k]
	if !ok {
		panic(fmt.Sprintf("keys: unknown kind %d", k))
	}
	return name
}

func (k Kind) String() string { return k.TreeName() }

// Position uniquely names an event within the finalized chain.
type Position struct {
	Block uint32
	Event uint16
}

// Less reports whether p sorts strictly before o in (block, event) order.
func (p Position) Less(o Position) bool {
	if p.Block != o.Block {
		return p.Block < o.Block
	}
	return p.Event < o.Event
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Block, p.Event)
}

// Attribute is a tagged variant over the kinds of things an event can
// mention. Only the fields relevant to Kind's family are meaningful.
type Attribute struct {
	Kind    Kind
	Pallet  uint8
	Variant uint8
	Bytes32 [32]byte
	U32     uint32
}

// VariantAttr builds the one key every event is indexed under.
func VariantAttr(pallet, variant uint8) Attribute {
	return Attribute{Kind: KindVariant, Pallet: pallet, Variant: variant}
}

// Bytes32Attr builds an identifier key (account, hash subtype, subscription id).
func Bytes32Attr(kind Kind, v [32]byte) Attribute {
	if kindFamily[kind] != familyBytes32 {
		panic(fmt.Sprintf("keys: %s is not a 32-byte identifier kind", kind))
	}
	return Attribute{Kind: kind, Bytes32: v}
}

// U32Attr builds a numeric-domain key (account-index, era-index, ...).
func U32Attr(kind Kind, v uint32) Attribute {
	if kindFamily[kind] != familyU32 {
		panic(fmt.Sprintf("keys: %s is not a numeric-domain kind", kind))
	}
	return Attribute{Kind: kind, U32: v}
}

func (a Attribute) attrBytes() []byte {
	switch kindFamily[a.Kind] {
	case familyVariant:
		return []byte{a.Pallet, a.Variant}
	case familyBytes32:
		b := make([]byte, 32)
		copy(b, a.Bytes32[:])
		return b
	case familyU32:
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, a.U32)
		return b
	default:
		panic(fmt.Sprintf("keys: %s has no family", a.Kind))
	}
}

func attrLen(kind Kind) int {
	switch kindFamily[kind] {
	case familyVariant:
		return 2
	case familyBytes32:
		return 32
	case familyU32:
		return 4
	default:
		panic(fmt.Sprintf("keys: %s has no family", kind))
	}
}

// ErrMalformedKey is returned by Decode when the byte length doesn't match
// the kind's expected width. Callers never recover from this: they log and
// drop the row.
type ErrMalformedKey struct {
	Kind Kind
	Len  int
}

func (e ErrMalformedKey) Error() string {
	return fmt.Sprintf("keys: malformed %s key: length %d", e.Kind, e.Len)
}

// Encode lays out attr || position as described in the package doc.
// decode(encode(a, p)) == (a, p); for a fixed attribute, encode(a, p1) <
// encode(a, p2) iff p1 < p2.
func Encode(a Attribute, pos Position) []byte {
	ab := a.attrBytes()
	out := make([]byte, len(ab)+6)
	n := copy(out, ab)
	binary.BigEndian.PutUint32(out[n:n+4], pos.Block)
	binary.BigEndian.PutUint16(out[n+4:n+6], pos.Event)
	return out
}

// Prefix returns the attribute-bytes prefix shared by every position encoded
// under a, suitable for Store.ScanPrefix.
func Prefix(a Attribute) []byte {
	return a.attrBytes()
}

// Decode recovers the attribute and position from a raw key of the given
// kind. It fails with ErrMalformedKey if raw has the wrong length for kind.
func Decode(kind Kind, raw []byte) (Attribute, Position, error) {
	want := attrLen(kind) + 6
	if len(raw) != want {
		return Attribute{}, Position{}, ErrMalformedKey{Kind: kind, Len: len(raw)}
	}
	ab := raw[:len(raw)-6]
	posBuf := raw[len(raw)-6:]
	pos := Position{
		Block: binary.BigEndian.Uint32(posBuf[0:4]),
		Event: binary.BigEndian.Uint16(posBuf[4:6]),
	}
	var a Attribute
	a.Kind = kind
	switch kindFamily[kind] {
	case familyVariant:
		a.Pallet, a.Variant = ab[0], ab[1]
	case familyBytes32:
		copy(a.Bytes32[:], ab)
	case familyU32:
		a.U32 = binary.BigEndian.Uint32(ab)
	}
	return a, pos, nil
}
