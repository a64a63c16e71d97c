package matching

import "sort"

// RankExact orders exact matches by ascending date average, oldest first:
// combinations of consistently older invoices are more likely intentional.
// The sort is stable and the input slice is left untouched.
func RankExact(matches []Combination) []Combination {
	ranked := make([]Combination, len(matches))
	copy(ranked, matches)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DateAverage().Before(ranked[j].DateAverage())
	})
	return ranked
}

// RankShortPay orders short-pay matches by ascending percent difference
// (closest to exact first), ties broken by ascending date average. Stable,
// input untouched.
func RankShortPay(matches []Combination) []Combination {
	ranked := make([]Combination, len(matches))
	copy(ranked, matches)
	sort.SliceStable(ranked, func(i, j int) bool {
		pi, pj := ranked[i].PercentDifference(), ranked[j].PercentDifference()
		if !pi.Equal(pj) {
			return pi.LessThan(pj)
		}
		return ranked[i].DateAverage().Before(ranked[j].DateAverage())
	})
	return ranked
}

// Rank returns a new result set with both lists fully ordered
func Rank(result MatchResultSet) MatchResultSet {
	return MatchResultSet{
		Matches:         RankExact(result.Matches),
		ShortPayMatches: RankShortPay(result.ShortPayMatches),
	}
}
