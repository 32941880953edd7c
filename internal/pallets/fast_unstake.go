package pallets

import "github.com/idn-labs/substrate-index/internal/keys"

// DecodeFastUnstake handles pallet_fast_unstake events.
func DecodeFastUnstake(ev Event) []keys.Attribute {
	switch ev.VariantName() {
	case "Unstaked", "Slashed":
		if v, ok := ev.AccountID("stash"); ok {
			return []keys.Attribute{keys.Bytes32Attr(keys.KindAccountID, v)}
		}
	}
	return nil
}
