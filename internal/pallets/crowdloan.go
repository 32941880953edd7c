package pallets

import "github.com/idn-labs/substrate-index/internal/keys"

// DecodeCrowdloan handles pallet_crowdloan events. Every variant keys on a
// para id; Contributed/Withdrew/MemoUpdated additionally carry an account.
func DecodeCrowdloan(ev Event) []keys.Attribute {
	var out []keys.Attribute
	acc := func(field string) {
		if v, ok := ev.AccountID(field); ok {
			out = append(out, keys.Bytes32Attr(keys.KindAccountID, v))
		}
	}
	para := func() {
		if v, ok := ev.U32("para_id"); ok {
			out = append(out, keys.U32Attr(keys.KindParaID, v))
		}
	}

	switch ev.VariantName() {
	case "Created", "PartiallyRefunded", "AllRefunded", "Dissolved", "HandleBidResult", "Edited", "AddedToNewRaise":
		para()
	case "Contributed", "Withdrew":
		acc("who")
		para()
	case "MemoUpdated":
		acc("who")
		para()
	}
	return out
}
