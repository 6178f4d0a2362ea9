package algo

// CompetitionRanks assigns ranks to values in descending order. Tied values
// share a rank and the next distinct value's rank skips by the tie count,
// so [50, 50, 50, 10] ranks as [1, 1, 1, 4]. The returned slice is aligned
// with the input.
func CompetitionRanks(values []int) []int {
	ranks := make([]int, len(values))
	for i, v := range values {
		rank := 1
		for _, other := range values {
			if other > v {
				rank++
			}
		}
		ranks[i] = rank
	}
	return ranks
}
