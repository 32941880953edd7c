package pallets

import "github.com/idn-labs/substrate-index/internal/keys"

// DecodeSystem handles frame_system events. NewAccount/KilledAccount carry
// the one account they concern.
func DecodeSystem(ev Event) []keys.Attribute {
	switch ev.VariantName() {
	case "NewAccount", "KilledAccount":
		if acc, ok := ev.AccountID("account"); ok {
			return []keys.Attribute{keys.Bytes32Attr(keys.KindAccountID, acc)}
		}
	}
	return nil
}
