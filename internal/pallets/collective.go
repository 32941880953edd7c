package pallets

import "github.com/idn-labs/substrate-index/internal/keys"

// DecodeCollective handles pallet_collective events. It is registered for
// both the Council and TechnicalCommittee pallet instances (spec.md treats
// attribute kinds, not pallet instances, as the index dimension).
func DecodeCollective(ev Event) []keys.Attribute {
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
	propHash := func(field string) {
		if v, ok := ev.Hash(field); ok {
			out = append(out, keys.Bytes32Attr(keys.KindProposalHash, v))
		}
	}

	switch ev.VariantName() {
	case "Proposed":
		acc("account")
		propIdx("proposal_index")
		propHash("proposal_hash")
	case "Voted":
		acc("account")
		propHash("proposal_hash")
	case "Approved", "Disapproved", "Executed", "MemberExecuted", "Closed":
		propHash("proposal_hash")
	}
	return out
}
