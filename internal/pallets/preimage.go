package pallets

import "github.com/idn-labs/substrate-index/internal/keys"

// DecodePreimage handles pallet_preimage events. All three variants key on
// the same preimage hash field.
func DecodePreimage(ev Event) []keys.Attribute {
	switch ev.VariantName() {
	case "Noted", "Requested", "Cleared":
		if v, ok := ev.Hash("hash"); ok {
			return []keys.Attribute{keys.Bytes32Attr(keys.KindPreimageHash, v)}
		}
	}
	return nil
}
