package pallets

import "github.com/idn-labs/substrate-index/internal/keys"

// DecodeDemocracy handles pallet_democracy events, the pallet with the
// widest attribute variety in the original source: proposal/ref indices,
// accounts, and proposal hashes all appear across its variants.
func DecodeDemocracy(ev Event) []keys.Attribute {
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
	refIdx := func(field string) {
		if v, ok := ev.U32(field); ok {
			out = append(out, keys.U32Attr(keys.KindRefIndex, v))
		}
	}
	propHash := func(field string) {
		if v, ok := ev.Hash(field); ok {
			out = append(out, keys.Bytes32Attr(keys.KindProposalHash, v))
		}
	}

	switch ev.VariantName() {
	case "Proposed", "Tabled":
		propIdx("proposal_index")
	case "Started", "Passed", "NotPassed", "Cancelled":
		refIdx("ref_index")
	case "Delegated":
		acc("who")
		acc("target")
	case "Undelegated":
		acc("account")
	case "Vetoed":
		acc("who")
		propHash("proposal_hash")
	case "Voted":
		acc("voter")
		refIdx("ref_index")
	case "Seconded":
		acc("seconder")
		propIdx("prop_index")
	case "ProposalCanceled":
		propIdx("prop_index")
	}
	return out
}
