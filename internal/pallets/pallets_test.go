package pallets_test

import (
	"testing"

	"github.com/idn-labs/substrate-index/internal/keys"
	"github.com/idn-labs/substrate-index/internal/nodeclient"
	"github.com/idn-labs/substrate-index/internal/pallets"
)

func hash32(b byte) [32]byte {
	var h [32]byte
	h[0] = b
	return h
}

func TestDefaultRegistryCoversEveryDeclaredPallet(t *testing.T) {
	r := pallets.Default()

	for _, p := range []uint8{
		pallets.PalletSystem, pallets.PalletIndices, pallets.PalletBalances,
		pallets.PalletSession, pallets.PalletStaking, pallets.PalletDemocracy,
		pallets.PalletCouncil, pallets.PalletTechnicalCommittee, pallets.PalletElectionsPhragmen,
		pallets.PalletTreasury, pallets.PalletBounties, pallets.PalletChildBounties,
		pallets.PalletTips, pallets.PalletIdentity, pallets.PalletProxy,
		pallets.PalletMultisig, pallets.PalletPreimage, pallets.PalletFastUnstake,
		pallets.PalletNominationPools, pallets.PalletAuctions, pallets.PalletCrowdloan,
		pallets.PalletParasRegistrar, pallets.PalletParachainsDisputes,
	} {
		ev := nodeclient.Event{PalletIdx: p, VariantIdx: 0, Name: "Unknown"}
		// Must not panic on an unrecognized variant; empty result is fine.
		_ = r.Decode(ev)
	}
}

func TestVariantsCoversEveryDefaultRegistryPallet(t *testing.T) {
	r := pallets.Default()
	infos := pallets.Variants()
	if len(infos) == 0 {
		t.Fatalf("expected a non-empty variants table")
	}

	seen := map[uint8]bool{}
	for _, p := range infos {
		seen[p.Index] = true
		if len(p.Events) == 0 {
			t.Fatalf("pallet %s (%d) has no events listed", p.Name, p.Index)
		}
		ev := nodeclient.Event{PalletIdx: p.Index, VariantIdx: 0, Name: "Unknown"}
		_ = r.Decode(ev) // Must not panic for any listed pallet.
	}

	for _, p := range []uint8{
		pallets.PalletSystem, pallets.PalletIndices, pallets.PalletBalances,
		pallets.PalletSession, pallets.PalletStaking, pallets.PalletDemocracy, pallets.PalletCouncil,
		pallets.PalletTechnicalCommittee, pallets.PalletElectionsPhragmen,
		pallets.PalletTreasury, pallets.PalletBounties, pallets.PalletChildBounties,
		pallets.PalletTips, pallets.PalletIdentity, pallets.PalletProxy,
		pallets.PalletMultisig, pallets.PalletPreimage, pallets.PalletFastUnstake,
		pallets.PalletNominationPools, pallets.PalletAuctions, pallets.PalletCrowdloan,
		pallets.PalletParasRegistrar, pallets.PalletParachainsDisputes,
	} {
		if !seen[p] {
			t.Fatalf("pallet %d missing from Variants()", p)
		}
	}
}

func TestDecodeUnregisteredPalletReturnsNil(t *testing.T) {
	r := pallets.Default()
	ev := nodeclient.Event{PalletIdx: 200, VariantIdx: 0, Name: "Whatever"}
	if got := r.Decode(ev); got != nil {
		t.Fatalf("expected nil for unregistered pallet, got %v", got)
	}
}

func TestDecodeBalancesTransferEmitsBothAccounts(t *testing.T) {
	from, to := hash32(1), hash32(2)
	ev := nodeclient.Event{
		PalletIdx:  pallets.PalletBalances,
		VariantIdx: 2,
		Name:       "Transfer",
		Accounts:   map[string][32]byte{"from": from, "to": to},
	}
	got := pallets.DecodeBalances(ev)
	if len(got) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(got))
	}
	for _, a := range got {
		if a.Kind != keys.KindAccountID {
			t.Fatalf("expected KindAccountID, got %v", a.Kind)
		}
	}
	if got[0].Bytes32 != from || got[1].Bytes32 != to {
		t.Fatalf("unexpected account order: %+v", got)
	}
}

func TestDecodeBalancesEndowedEmitsSingleAccount(t *testing.T) {
	who := hash32(7)
	ev := nodeclient.Event{
		PalletIdx:  pallets.PalletBalances,
		VariantIdx: 0,
		Name:       "Endowed",
		Accounts:   map[string][32]byte{"account": who},
	}
	got := pallets.DecodeBalances(ev)
	if len(got) != 1 || got[0].Bytes32 != who {
		t.Fatalf("expected single account attribute, got %+v", got)
	}
}

func TestDecodeDemocracyVotedEmitsAccountAndRefIndex(t *testing.T) {
	voter := hash32(3)
	ev := nodeclient.Event{
		PalletIdx:  pallets.PalletDemocracy,
		VariantIdx: 9,
		Name:       "Voted",
		Accounts:   map[string][32]byte{"voter": voter},
		U32s:       map[string]uint32{"ref_index": 42},
	}
	got := pallets.DecodeDemocracy(ev)
	if len(got) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(got))
	}
	if got[0].Kind != keys.KindAccountID || got[0].Bytes32 != voter {
		t.Fatalf("expected voter account first, got %+v", got[0])
	}
	if got[1].Kind != keys.KindRefIndex || got[1].U32 != 42 {
		t.Fatalf("expected ref_index=42, got %+v", got[1])
	}
}

func TestDecodeDemocracyMissingFieldIsOmitted(t *testing.T) {
	ev := nodeclient.Event{
		PalletIdx:  pallets.PalletDemocracy,
		VariantIdx: 9,
		Name:       "Voted",
		// voter/ref_index both absent
	}
	got := pallets.DecodeDemocracy(ev)
	if len(got) != 0 {
		t.Fatalf("expected no attributes when fields are absent, got %+v", got)
	}
}

func TestDecodeElectionsPhragmenNewTermStopsAtFirstGap(t *testing.T) {
	ev := nodeclient.Event{
		PalletIdx:  pallets.PalletElectionsPhragmen,
		VariantIdx: 5,
		Name:       "NewTerm",
		Accounts: map[string][32]byte{
			"new_member_0": hash32(10),
			"new_member_1": hash32(11),
			// new_member_2 deliberately absent
			"new_member_3": hash32(13),
		},
	}
	got := pallets.DecodeElectionsPhragmen(ev)
	if len(got) != 2 {
		t.Fatalf("expected to stop scanning at the first gap, got %d attributes", len(got))
	}
	if got[0].Bytes32 != hash32(10) || got[1].Bytes32 != hash32(11) {
		t.Fatalf("unexpected members: %+v", got)
	}
}

func TestDecodeChildBountiesAwardedIndexesBothUnderBountyIndex(t *testing.T) {
	beneficiary := hash32(9)
	ev := nodeclient.Event{
		PalletIdx:  pallets.PalletChildBounties,
		VariantIdx: 2,
		Name:       "Awarded",
		Accounts:   map[string][32]byte{"beneficiary": beneficiary},
		U32s:       map[string]uint32{"index": 1, "child_index": 2},
	}
	got := pallets.DecodeChildBounties(ev)
	var bountyIdxCount int
	for _, a := range got {
		if a.Kind == keys.KindBountyIndex {
			bountyIdxCount++
		}
	}
	if bountyIdxCount != 2 {
		t.Fatalf("expected both index and child_index under KindBountyIndex, got %+v", got)
	}
}

func TestDecodeSessionOnlyHandlesNewSession(t *testing.T) {
	ev := nodeclient.Event{
		PalletIdx:  pallets.PalletSession,
		VariantIdx: 0,
		Name:       "NewSession",
		U32s:       map[string]uint32{"session_index": 5},
	}
	got := pallets.DecodeSession(ev)
	if len(got) != 1 || got[0].Kind != keys.KindSessionIndex || got[0].U32 != 5 {
		t.Fatalf("unexpected result: %+v", got)
	}
}
