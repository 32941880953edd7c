package pallets

import "github.com/idn-labs/substrate-index/internal/keys"

// DecodeParachainsDisputes handles pallet_paras_disputes events. All three
// variants are tuple-shaped in the original source, keying on the disputed
// candidate's hash alone; location/result/timeout are not indexable
// attributes.
func DecodeParachainsDisputes(ev Event) []keys.Attribute {
	switch ev.VariantName() {
	case "DisputeInitiated", "DisputeConcluded", "DisputeTimedOut":
		if v, ok := ev.Hash("candidate_hash"); ok {
			return []keys.Attribute{keys.Bytes32Attr(keys.KindCandidateHash, v)}
		}
	}
	return nil
}
