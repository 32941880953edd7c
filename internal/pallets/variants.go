package pallets

// EventInfo names one decodable event variant within a pallet, for the
// wsapi "Variants" response (spec.md §6). Index is assigned in the order
// the decoder recognizes the variant, not the runtime's own metadata
// index: without a SCALE-metadata codec (see nodeclient.ErrNoEventDecoder)
// there is no live index to report, so this is a best-effort enumeration
// over the statically compiled decoder tables rather than a decode of the
// node's actual runtime metadata.
type EventInfo struct {
	Index uint8
	Name  string
}

// PalletInfo names one pallet and the event variants its decoder
// recognizes.
type PalletInfo struct {
	Index  uint8
	Name   string
	Events []EventInfo
}

func eventInfos(names ...string) []EventInfo {
	out := make([]EventInfo, len(names))
	for i, n := range names {
		out[i] = EventInfo{Index: uint8(i), Name: n}
	}
	return out
}

// Variants enumerates every pallet this module has a decoder for, along
// with the event variant names that decoder's switch recognizes. It backs
// the wsapi "Variants" response; see EventInfo's doc for what it is not.
func Variants() []PalletInfo {
	return []PalletInfo{
		{Index: PalletSystem, Name: "System", Events: eventInfos(
			"NewAccount", "KilledAccount",
		)},
		{Index: PalletIndices, Name: "Indices", Events: eventInfos(
			"IndexAssigned", "IndexFreed", "IndexFrozen",
		)},
		{Index: PalletBalances, Name: "Balances", Events: eventInfos(
			"Endowed", "DustLost", "Transfer", "ReserveRepatriated",
			"BalanceSet", "Reserved", "Unreserved", "Deposit", "Withdraw", "Slashed",
		)},
		{Index: PalletSession, Name: "Session", Events: eventInfos(
			"NewSession",
		)},
		{Index: PalletStaking, Name: "Staking", Events: eventInfos(
			"EraPaid", "Slashed", "SlashReported", "OldSlashingReportDiscarded",
			"Bonded", "Unbonded", "Withdrawn", "Chilled", "ValidatorPrefsSet",
			"Rewarded", "Kicked", "PayoutStarted",
		)},
		{Index: PalletDemocracy, Name: "Democracy", Events: eventInfos(
			"Proposed", "Tabled", "Started", "Passed", "NotPassed", "Cancelled",
			"Delegated", "Undelegated", "Vetoed", "Voted", "Seconded", "ProposalCanceled",
		)},
		{Index: PalletCouncil, Name: "Council", Events: eventInfos(
			"Proposed", "Voted", "Approved", "Disapproved", "Executed", "MemberExecuted", "Closed",
		)},
		{Index: PalletTechnicalCommittee, Name: "TechnicalCommittee", Events: eventInfos(
			"Proposed", "Voted", "Approved", "Disapproved", "Executed", "MemberExecuted", "Closed",
		)},
		{Index: PalletElectionsPhragmen, Name: "ElectionsPhragmen", Events: eventInfos(
			"MemberKicked", "Renounced", "CandidateSlashed", "SeatHolderSlashed", "NewTerm",
		)},
		{Index: PalletTreasury, Name: "Treasury", Events: eventInfos(
			"Proposed", "Rejected", "Awarded", "SpendApproved",
		)},
		{Index: PalletBounties, Name: "Bounties", Events: eventInfos(
			"BountyProposed", "BountyRejected", "BountyBecameActive", "BountyCanceled", "BountyExtended",
			"BountyAwarded", "BountyClaimed",
		)},
		{Index: PalletChildBounties, Name: "ChildBounties", Events: eventInfos(
			"Added", "Canceled", "Awarded", "Claimed",
		)},
		{Index: PalletTips, Name: "Tips", Events: eventInfos(
			"NewTip", "TipClosing", "TipRetracted", "TipClosed", "TipSlashed",
		)},
		{Index: PalletIdentity, Name: "Identity", Events: eventInfos(
			"IdentitySet", "IdentityCleared", "IdentityKilled",
			"JudgementRequested", "JudgementUnrequested", "JudgementGiven",
			"RegistrarAdded", "SubIdentityAdded", "SubIdentityRemoved", "SubIdentityRevoked",
		)},
		{Index: PalletProxy, Name: "Proxy", Events: eventInfos(
			"PureCreated", "Announced", "ProxyAdded", "ProxyRemoved",
		)},
		{Index: PalletMultisig, Name: "Multisig", Events: eventInfos(
			"NewMultisig", "MultisigApproval", "MultisigExecuted", "MultisigCancelled",
		)},
		{Index: PalletPreimage, Name: "Preimage", Events: eventInfos(
			"Noted", "Requested", "Cleared",
		)},
		{Index: PalletNominationPools, Name: "NominationPools", Events: eventInfos(
			"Created", "Bonded", "PaidOut", "Unbonded", "Withdrawn",
		)},
		{Index: PalletFastUnstake, Name: "FastUnstake", Events: eventInfos(
			"Unstaked", "Slashed",
		)},
		{Index: PalletAuctions, Name: "Auctions", Events: eventInfos(
			"AuctionStarted", "AuctionClosed", "WinningOffset",
			"Reserved", "Unreserved", "ReserveConfiscated", "BidAccepted",
		)},
		{Index: PalletCrowdloan, Name: "Crowdloan", Events: eventInfos(
			"Created", "PartiallyRefunded", "AllRefunded", "Dissolved", "HandleBidResult",
			"Edited", "AddedToNewRaise", "Contributed", "Withdrew", "MemoUpdated",
		)},
		{Index: PalletParasRegistrar, Name: "ParasRegistrar", Events: eventInfos(
			"Registered", "Deregistered", "Reserved",
		)},
		{Index: PalletParachainsDisputes, Name: "ParachainsDisputes", Events: eventInfos(
			"DisputeInitiated", "DisputeConcluded", "DisputeTimedOut",
		)},
	}
}
