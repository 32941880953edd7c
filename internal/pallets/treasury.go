package pallets

import "github.com/idn-labs/substrate-index/internal/keys"

// DecodeTreasury handles pallet_treasury events.
func DecodeTreasury(ev Event) []keys.Attribute {
	var out []keys.Attribute
	acc := func(field string) {
		if v, ok := ev.AccountID(field); ok {
			out = append(out, keys.Bytes32Attr(keys.KindAccountID, v))
		}
	}
	propIdx := func(field string) {
		if v, ok := ev.U32(field); ok {
			out = append(out, keys.U32Attr(keys.KindProposalIndex, v))
		}
	}

	switch ev.VariantName() {
	case "Proposed", "Rejected":
		propIdx("proposal_index")
	case "Awarded":
		propIdx("proposal_index")
		acc("account")
	case "SpendApproved":
		propIdx("proposal_index")
		acc("beneficiary")
	}
	return out
}
