package pallets

import "github.com/idn-labs/substrate-index/internal/keys"

// DecodeBounties handles pallet_bounties events.
func DecodeBounties(ev Event) []keys.Attribute {
	var out []keys.Attribute
	acc := func(field string) {
		if v, ok := ev.AccountID(field); ok {
			out = append(out, keys.Bytes32Attr(keys.KindAccountID, v))
		}
	}
	idx := func(field string) {
		if v, ok := ev.U32(field); ok {
			out = append(out, keys.U32Attr(keys.KindBountyIndex, v))
		}
	}

	switch ev.VariantName() {
	case "BountyProposed", "BountyRejected", "BountyBecameActive", "BountyCanceled", "BountyExtended":
		idx("index")
	case "BountyAwarded":
		idx("index")
		acc("beneficiary")
	case "BountyClaimed":
		idx("index")
		acc("beneficiary")
	}
	return out
}

// DecodeChildBounties handles pallet_child_bounties events. The source
// indexes both the parent bounty index and the child index under the same
// bounty-index tree, so a child bounty is reachable by either number.
func DecodeChildBounties(ev Event) []keys.Attribute {
	var out []keys.Attribute
	acc := func(field string) {
		if v, ok := ev.AccountID(field); ok {
			out = append(out, keys.Bytes32Attr(keys.KindAccountID, v))
		}
	}
	idx := func(field string) {
		if v, ok := ev.U32(field); ok {
			out = append(out, keys.U32Attr(keys.KindBountyIndex, v))
		}
	}

	switch ev.VariantName() {
	case "Added", "Canceled":
		idx("index")
		idx("child_index")
	case "Awarded":
		idx("index")
		idx("child_index")
		acc("beneficiary")
	case "Claimed":
		idx("index")
		idx("child_index")
		acc("beneficiary")
	}
	return out
}
