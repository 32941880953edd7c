package pallets

import "github.com/idn-labs/substrate-index/internal/keys"

// DecodeAuctions handles pallet_auctions events.
func DecodeAuctions(ev Event) []keys.Attribute {
	var out []keys.Attribute
	acc := func(field string) {
		if v, ok := ev.AccountID(field); ok {
			out = append(out, keys.Bytes32Attr(keys.KindAccountID, v))
		}
	}
	auction := func() {
		if v, ok := ev.U32("auction_index"); ok {
			out = append(out, keys.U32Attr(keys.KindAuctionIndex, v))
		}
	}
	para := func() {
		if v, ok := ev.U32("para_id"); ok {
			out = append(out, keys.U32Attr(keys.KindParaID, v))
		}
	}

	switch ev.VariantName() {
	case "AuctionStarted", "AuctionClosed", "WinningOffset":
		auction()
	case "Reserved":
		acc("bidder")
	case "Unreserved":
		acc("bidder")
	case "ReserveConfiscated":
		para()
		acc("leaser")
	case "BidAccepted":
		acc("bidder")
		para()
	}
	return out
}
