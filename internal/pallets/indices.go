package pallets

import "github.com/idn-labs/substrate-index/internal/keys"

// DecodeIndices handles pallet_indices events.
func DecodeIndices(ev Event) []keys.Attribute {
	var out []keys.Attribute
	acc := func(field string) {
		if v, ok := ev.AccountID(field); ok {
			out = append(out, keys.Bytes32Attr(keys.KindAccountID, v))
		}
	}
	idx := func() {
		if v, ok := ev.U32("index"); ok {
			out = append(out, keys.U32Attr(keys.KindAccountIndex, v))
		}
	}

	switch ev.VariantName() {
	case "IndexAssigned":
		acc("who")
		idx()
	case "IndexFreed":
		idx()
	case "IndexFrozen":
		idx()
		acc("who")
	}
	return out
}
