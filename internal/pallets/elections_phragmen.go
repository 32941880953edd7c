package pallets

import "github.com/idn-labs/substrate-index/internal/keys"

// DecodeElectionsPhragmen handles pallet_elections_phragmen events.
// NewTerm carries a vector of (account, balance) pairs; the original source
// indexes every member in the vector under account-id, which the adapter
// surfaces as repeated AccountID-bearing fields rather than a single field.
func DecodeElectionsPhragmen(ev Event) []keys.Attribute {
	var out []keys.Attribute
	acc := func(field string) {
		if v, ok := ev.AccountID(field); ok {
			out = append(out, keys.Bytes32Attr(keys.KindAccountID, v))
		}
	}

	switch ev.VariantName() {
	case "MemberKicked":
		acc("member")
	case "Renounced", "CandidateSlashed":
		acc("candidate")
	case "SeatHolderSlashed":
		acc("seat_holder")
	case "NewTerm":
		for i := 0; ; i++ {
			field := indexedField("new_member", i)
			v, ok := ev.AccountID(field)
			if !ok {
				break
			}
			out = append(out, keys.Bytes32Attr(keys.KindAccountID, v))
		}
	}
	return out
}
