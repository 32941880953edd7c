package pallets

import "github.com/idn-labs/substrate-index/internal/keys"

// DecodeBalances handles pallet_balances events. Transfer-shaped events
// emit both counterparties; single-account events emit just that account.
func DecodeBalances(ev Event) []keys.Attribute {
	var out []keys.Attribute
	appendAccount := func(field string) {
		if acc, ok := ev.AccountID(field); ok {
			out = append(out, keys.Bytes32Attr(keys.KindAccountID, acc))
		}
	}

	switch ev.VariantName() {
	case "Endowed", "DustLost":
		appendAccount("account")
	case "Transfer", "ReserveRepatriated":
		appendAccount("from")
		appendAccount("to")
	case "BalanceSet", "Reserved", "Unreserved", "Deposit", "Withdraw", "Slashed":
		appendAccount("who")
	}
	return out
}
