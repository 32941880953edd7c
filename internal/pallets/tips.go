package pallets

import "github.com/idn-labs/substrate-index/internal/keys"

// DecodeTips handles pallet_tips events.
func DecodeTips(ev Event) []keys.Attribute {
	var out []keys.Attribute
	acc := func(field string) {
		if v, ok := ev.AccountID(field); ok {
			out = append(out, keys.Bytes32Attr(keys.KindAccountID, v))
		}
	}
	tipHash := func(field string) {
		if v, ok := ev.Hash(field); ok {
			out = append(out, keys.Bytes32Attr(keys.KindTipHash, v))
		}
	}

	switch ev.VariantName() {
	case "NewTip", "TipClosing", "TipRetracted":
		tipHash("tip_hash")
	case "TipClosed":
		tipHash("tip_hash")
		acc("who")
	case "TipSlashed":
		tipHash("tip_hash")
		acc("finder")
	}
	return out
}
