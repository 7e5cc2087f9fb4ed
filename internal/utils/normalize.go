package utils

// PositionRanks builds the rank column for a result list that is already
// sorted by relevance: rank 1 for the first result, incrementing from
// there. Wire responses carry this instead of raw scores.
func PositionRanks(count int) []uint16 {
	if count <= 0 {
		return []uint16{}
	}
	ranks := make([]uint16, count)
	for i := 0; i < count; i++ {
		ranks[i] = uint16(i + 1)
	}
	return ranks
}
