package pallets

import "github.com/idn-labs/substrate-index/internal/keys"

// DecodeNominationPools handles pallet_nomination_pools events. Every
// variant in the original source carries both a member/depositor account
// and a pool id.
func DecodeNominationPools(ev Event) []keys.Attribute {
	var out []keys.Attribute
	poolAcc := func(field string) {
		if v, ok := ev.AccountID(field); ok {
			out = append(out, keys.Bytes32Attr(keys.KindAccountID, v))
		}
	}
	poolID := func() {
		if v, ok := ev.U32("pool_id"); ok {
			out = append(out, keys.U32Attr(keys.KindPoolID, v))
		}
	}

	switch ev.VariantName() {
	case "Created":
		poolAcc("depositor")
		poolID()
	case "Bonded", "PaidOut", "Unbonded", "Withdrawn":
		poolAcc("member")
		poolID()
	}
	return out
}
