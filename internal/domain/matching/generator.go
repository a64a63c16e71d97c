package matching

import "sort"

// GenerateCombinations produces the candidate combinations to evaluate for
// one customer's candidate set. Sets no larger than threshold are enumerated
// exhaustively; larger sets fall back to a bounded strategy that favors the
// oldest invoices.
func GenerateCombinations(candidates []InvoiceCandidate, threshold int) []Combination {
	if len(candidates) == 0 {
		return nil
	}
	if len(candidates) <= threshold {
		return generateAllSubsets(candidates)
	}
	return generateBounded(candidates, threshold)
}

// generateAllSubsets emits every non-empty subset exactly once (2^N - 1
// combinations). Each element extends all previously generated subsets,
// starting from a seeded empty set that is dropped at the end.
func generateAllSubsets(candidates []InvoiceCandidate) []Combination {
	subsets := make([][]InvoiceCandidate, 1, 1<<len(candidates))
	subsets[0] = nil

	for _, candidate := range candidates {
		for _, existing := range subsets[:len(subsets):len(subsets)] {
			extended := make([]InvoiceCandidate, len(existing), len(existing)+1)
			copy(extended, existing)
			subsets = append(subsets, append(extended, candidate))
		}
	}

	combos := make([]Combination, 0, len(subsets)-1)
	for _, s := range subsets[1:] {
		combos = append(combos, NewCombination(s))
	}
	return combos
}

// generateBounded caps enumeration for large candidate sets: the oldest
// threshold invoices are enumerated exhaustively, the full set is kept as a
// "pay everything" combination, and each remaining invoice is kept as a
// singleton. Worst case is 2^threshold + (N - threshold) + 1 combinations.
func generateBounded(candidates []InvoiceCandidate, threshold int) []Combination {
	byDate := make([]InvoiceCandidate, len(candidates))
	copy(byDate, candidates)
	sort.SliceStable(byDate, func(i, j int) bool {
		return byDate[i].Date.Before(byDate[j].Date)
	})

	oldest := byDate[:threshold]
	remainder := byDate[threshold:]

	var combos []Combination
	if len(oldest) > 0 {
		combos = generateAllSubsets(oldest)
	}
	if len(byDate) > 1 {
		combos = append(combos, NewCombination(byDate))
	}
	for _, c := range remainder {
		combos = append(combos, NewCombination([]InvoiceCandidate{c}))
	}
	return combos
}
