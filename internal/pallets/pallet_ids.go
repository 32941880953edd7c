package pallets

// Pallet index constants. These mirror a typical Polkadot-family runtime's
// construct_runtime! ordering closely enough to exercise every decoder in
// tests; a live deployment's metadata adapter (spec.md §6) is the source of
// truth and may assign different indices per chain/spec-version.
const (
	PalletSystem             uint8 = 0
	PalletIndices            uint8 = 2
	PalletBalances           uint8 = 4
	PalletSession            uint8 = 5
	PalletStaking            uint8 = 6
	PalletDemocracy          uint8 = 10
	PalletCouncil            uint8 = 11
	PalletTechnicalCommittee uint8 = 12
	PalletElectionsPhragmen  uint8 = 13
	PalletTreasury           uint8 = 18
	PalletBounties           uint8 = 19
	PalletTips               uint8 = 20
	PalletIdentity           uint8 = 28
	PalletProxy              uint8 = 29
	PalletMultisig           uint8 = 30
	PalletPreimage           uint8 = 32
	PalletNominationPools    uint8 = 37
	PalletChildBounties      uint8 = 38
	PalletFastUnstake        uint8 = 39
	PalletAuctions           uint8 = 60
	PalletCrowdloan          uint8 = 61
	PalletParasRegistrar     uint8 = 62
	PalletParachainsDisputes uint8 = 64
)
