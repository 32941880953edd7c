package pallets

import "github.com/idn-labs/substrate-index/internal/keys"

// DecodeParasRegistrar handles pallet_registrar events.
func DecodeParasRegistrar(ev Event) []keys.Attribute {
	var out []keys.Attribute
	acc := func(field string) {
		if v, ok := ev.AccountID(field); ok {
			out = append(out, keys.Bytes32Attr(keys.KindAccountID, v))
		}
	}
	para := func() {
		if v, ok := ev.U32("para_id"); ok {
			out = append(out, keys.U32Attr(keys.KindParaID, v))
		}
	}

	switch ev.VariantName() {
	case "Registered":
		para()
		acc("manager")
	case "Deregistered":
		para()
	case "Reserved":
		para()
		acc("who")
	}
	return out
}
