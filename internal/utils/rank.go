package utils

// CreateRankList returns ranks 1..count for results that are already sorted
// best first. Counts beyond the uint16 range saturate at its maximum.
func CreateRankList(count int) []uint16 {
	if count <= 0 {
		return []uint16{}
	}
	ranks := make([]uint16, count)
	for i := range ranks {
		ranks[i] = uint16(min(i+1, 1<<16-1))
	}
	return ranks
}
