package wsapi

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/idn-labs/substrate-index/internal/keys"
)

// AttributeRef is the wire form of keys.Attribute. Its JSON shape is
// pinned by spec.md §6 against original_source/src/shared.rs's
// `#[serde(tag = "type", content = "value")] enum Key`: a single object
// carrying the type name and a value shaped by that type's family, e.g.
// {"type":"AccountId","value":"0x.."}, {"type":"BountyIndex","value":42},
// {"type":"Variant","value":[4,0]} — not a struct of our own invention.
type AttributeRef keys.Attribute

// kindTypeNames maps each internal Kind onto the exact variant name the
// Rust Key enum uses on the wire. KindSubscriptionID has no counterpart
// there (shared.rs's Key enum never exposes a subscription id as a
// queryable attribute) but keeps a name here, so MarshalJSON can encode
// it and UnmarshalJSON accepts {"type":"SubscriptionId",...} from a
// client like any other 32-byte identifier kind.
var kindTypeNames = map[keys.Kind]string{
	keys.KindVariant:        "Variant",
	keys.KindAccountID:      "AccountId",
	keys.KindAccountIndex:   "AccountIndex",
	keys.KindAuctionIndex:   "AuctionIndex",
	keys.KindBountyIndex:    "BountyIndex",
	keys.KindCandidateHash:  "CandidateHash",
	keys.KindEraIndex:       "EraIndex",
	keys.KindMessageID:      "MessageId",
	keys.KindParaID:         "ParaId",
	keys.KindPoolID:         "PoolId",
	keys.KindPreimageHash:   "PreimageHash",
	keys.KindProposalHash:   "ProposalHash",
	keys.KindProposalIndex:  "ProposalIndex",
	keys.KindRefIndex:       "RefIndex",
	keys.KindRegistrarIndex: "RegistrarIndex",
	keys.KindSessionIndex:   "SessionIndex",
	keys.KindSubscriptionID: "SubscriptionId",
	keys.KindTipHash:        "TipHash",
}

var typeNameKinds = func() map[string]keys.Kind {
	m := make(map[string]keys.Kind, len(kindTypeNames))
	for k, name := range kindTypeNames {
		m[name] = k
	}
	return m
}()

// MarshalJSON emits the tagged-union shape documented on AttributeRef.
func (r AttributeRef) MarshalJSON() ([]byte, error) {
	typeName, ok := kindTypeNames[r.Kind]
	if !ok {
		return nil, fmt.Errorf("wsapi: unknown attribute kind %v", r.Kind)
	}

	var value interface{}
	switch {
	case r.Kind == keys.KindVariant:
		value = [2]uint8{r.Pallet, r.Variant}
	case isBytes32Kind(r.Kind):
		value = hexutil.Encode(r.Bytes32[:])
	default:
		value = r.U32
	}

	return json.Marshal(struct {
		Type  string      `json:"type"`
		Value interface{} `json:"value"`
	}{Type: typeName, Value: value})
}

// UnmarshalJSON parses the same shape MarshalJSON produces.
func (r *AttributeRef) UnmarshalJSON(b []byte) error {
	var wire struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	kind, ok := typeNameKinds[wire.Type]
	if !ok {
		return fmt.Errorf("wsapi: unknown attribute type %q", wire.Type)
	}

	switch {
	case kind == keys.KindVariant:
		var pv [2]uint8
		if err := json.Unmarshal(wire.Value, &pv); err != nil {
			return fmt.Errorf("wsapi: Variant requires a [pallet,variant] value: %w", err)
		}
		*r = AttributeRef{Kind: keys.KindVariant, Pallet: pv[0], Variant: pv[1]}
	case isBytes32Kind(kind):
		var s string
		if err := json.Unmarshal(wire.Value, &s); err != nil {
			return fmt.Errorf("wsapi: %s requires a hex string value: %w", wire.Type, err)
		}
		raw, err := hexutil.Decode(s)
		if err != nil || len(raw) != 32 {
			return fmt.Errorf("wsapi: %s requires a 32-byte 0x-prefixed hex value", wire.Type)
		}
		var v [32]byte
		copy(v[:], raw)
		*r = AttributeRef{Kind: kind, Bytes32: v}
	default:
		var v uint32
		if err := json.Unmarshal(wire.Value, &v); err != nil {
			return fmt.Errorf("wsapi: %s requires a numeric value: %w", wire.Type, err)
		}
		*r = AttributeRef{Kind: kind, U32: v}
	}
	return nil
}

// ToAttribute converts the wire form to keys.Attribute. AttributeRef
// shares keys.Attribute's layout exactly, so this is a plain conversion;
// validation already happened in UnmarshalJSON.
func (r AttributeRef) ToAttribute() (keys.Attribute, error) {
	return keys.Attribute(r), nil
}

// FromAttribute converts a keys.Attribute into its wire representation.
func FromAttribute(a keys.Attribute) AttributeRef { return AttributeRef(a) }

func isBytes32Kind(k keys.Kind) bool {
	switch k {
	case keys.KindAccountID, keys.KindPreimageHash, keys.KindProposalHash, keys.KindTipHash,
		keys.KindCandidateHash, keys.KindMessageID, keys.KindSubscriptionID:
		return true
	}
	return false
}
