package pallets

import "github.com/idn-labs/substrate-index/internal/keys"

// DecodeSession handles pallet_session events. Only NewSession is
// attribute-bearing in the original source; every other variant is ignored.
func DecodeSession(ev Event) []keys.Attribute {
	if ev.VariantName() != "NewSession" {
		return nil
	}
	if v, ok := ev.U32("session_index"); ok {
		return []keys.Attribute{keys.U32Attr(keys.KindSessionIndex, v)}
	}
	return nil
}
