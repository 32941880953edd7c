package pallets

import "github.com/idn-labs/substrate-index/internal/keys"

// DecodeStaking handles pallet_staking events.
func DecodeStaking(ev Event) []keys.Attribute {
	var out []keys.Attribute
	acc := func(field string) {
		if v, ok := ev.AccountID(field); ok {
			out = append(out, keys.Bytes32Attr(keys.KindAccountID, v))
		}
	}
	era := func(field string) {
		if v, ok := ev.U32(field); ok {
			out = append(out, keys.U32Attr(keys.KindEraIndex, v))
		}
	}
	session := func(field string) {
		if v, ok := ev.U32(field); ok {
			out = append(out, keys.U32Attr(keys.KindSessionIndex, v))
		}
	}

	switch ev.VariantName() {
	case "EraPaid":
		era("era_index")
	case "Slashed":
		acc("staker")
	case "SlashReported":
		acc("validator")
		era("slash_era")
	case "OldSlashingReportDiscarded":
		session("session_index")
	case "Bonded", "Unbonded", "Withdrawn", "Chilled", "ValidatorPrefsSet":
		acc("stash")
	case "Rewarded":
		acc("stash")
	case "Kicked":
		acc("nominator")
		acc("stash")
	case "PayoutStarted":
		era("era_index")
		acc("validator_stash")
	}
	return out
}
