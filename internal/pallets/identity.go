package pallets

import "github.com/idn-labs/substrate-index/internal/keys"

// DecodeIdentity handles pallet_identity events.
func DecodeIdentity(ev Event) []keys.Attribute {
	var out []keys.Attribute
	acc := func(field string) {
		if v, ok := ev.AccountID(field); ok {
			out = append(out, keys.Bytes32Attr(keys.KindAccountID, v))
		}
	}
	registrar := func(field string) {
		if v, ok := ev.U32(field); ok {
			out = append(out, keys.U32Attr(keys.KindRegistrarIndex, v))
		}
	}

	switch ev.VariantName() {
	case "IdentitySet", "IdentityCleared", "IdentityKilled":
		acc("who")
	case "JudgementRequested", "JudgementUnrequested":
		acc("who")
		registrar("registrar_index")
	case "JudgementGiven":
		acc("target")
		registrar("registrar_index")
	case "RegistrarAdded":
		registrar("registrar_index")
	case "SubIdentityAdded", "SubIdentityRemoved", "SubIdentityRevoked":
		acc("sub")
		acc("main")
	}
	return out
}
