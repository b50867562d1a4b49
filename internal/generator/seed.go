package generator

// 每个种子槽位使用不同的乘法常数，避免不同特征以相同周期同步变化。
// 常数均为大于所有调色板长度和除数的素数。
const (
	primarySeedFactor   uint64 = 12347
	secondarySeedFactor uint64 = 7919
	tertiarySeedFactor  uint64 = 104729
)

// SeedSet 由 token id 派生的一组独立种子
type SeedSet struct {
	Primary   uint64
	Secondary uint64
	Tertiary  uint64
}

// DeriveSeeds maps a token id to its seed slots.
//
// The products are computed in uint64 and wrap modulo 2^64. Selection only
// ever looks at seed % n for small n, so wrapping is well defined; for the
// collection's id range (max supply 10000) no product comes near the wrap.
//
// The factors differ from the legacy endpoint (tokenId*12345), so a given
// token's background, glasses and cap no longer match what it served.
func DeriveSeeds(tokenID int64) SeedSet {
	id := uint64(tokenID)
	return SeedSet{
		Primary:   id * primarySeedFactor,
		Secondary: id * secondarySeedFactor,
		Tertiary:  id * tertiarySeedFactor,
	}
}
