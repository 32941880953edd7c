package pallets

import "github.com/idn-labs/substrate-index/internal/keys"

// DecodeMultisig handles pallet_multisig events. The timepoint field in the
// original source is metadata about when the multisig was opened, not an
// indexable attribute, and is dropped here as it was there.
func DecodeMultisig(ev Event) []keys.Attribute {
	var out []keys.Attribute
	acc := func(field string) {
		if v, ok := ev.AccountID(field); ok {
			out = append(out, keys.Bytes32Attr(keys.KindAccountID, v))
		}
	}

	switch ev.VariantName() {
	case "NewMultisig":
		acc("approving")
		acc("multisig")
	case "MultisigApproval", "MultisigExecuted":
		acc("approving")
		acc("multisig")
	case "MultisigCancelled":
		acc("cancelling")
		acc("multisig")
	}
	return out
}
