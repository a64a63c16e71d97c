package matching

import (
	"math/bits"

	"github.com/finledger/cashmatch/internal/domain/shared"
)

// DefaultCombinationBudget is the global bound on subset enumeration cost,
// shared across every customer competing for search cycles.
const DefaultCombinationBudget = 48000

// CombinationThreshold derives the largest candidate-set size that may be
// exhaustively enumerated: floor(log2(budget / customerCount)), never
// negative. A zero threshold means "skip exhaustive search entirely".
//
// customerCount is the live count of customer records; a zero count is a
// configuration error, not a divide-by-zero.
func CombinationThreshold(budget, customerCount int64) (int, error) {
	if budget <= 0 {
		return 0, shared.NewDomainError("CONFIG_INVALID_BUDGET", "Combination budget must be positive")
	}
	if customerCount <= 0 {
		return 0, shared.NewDomainError("CONFIG_NO_CUSTOMERS", "Customer count must be positive to size the combination threshold")
	}
	perCustomer := budget / customerCount
	if perCustomer <= 1 {
		return 0, nil
	}
	// floor(log2(n)) for n >= 1 is the index of the highest set bit
	return bits.Len64(uint64(perCustomer)) - 1, nil
}
