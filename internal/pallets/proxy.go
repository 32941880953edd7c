package pallets

import "github.com/idn-labs/substrate-index/internal/keys"

// DecodeProxy handles pallet_proxy events.
func DecodeProxy(ev Event) []keys.Attribute {
	var out []keys.Attribute
	acc := func(field string) {
		if v, ok := ev.AccountID(field); ok {
			out = append(out, keys.Bytes32Attr(keys.KindAccountID, v))
		}
	}

	switch ev.VariantName() {
	case "PureCreated":
		acc("pure")
		acc("who")
	case "Announced":
		acc("real")
		acc("proxy")
	case "ProxyAdded", "ProxyRemoved":
		acc("delegator")
		acc("delegatee")
	}
	return out
}
