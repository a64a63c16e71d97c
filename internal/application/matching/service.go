package matching

import (
	"context"
	"fmt"

	"github.com/finledger/cashmatch/internal/domain/matching"
	"github.com/finledger/cashmatch/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service orchestrates one matching run per payment: thresholds, eligibility,
// combination generation, evaluation, ranking, and transactional persistence
// of the winners. One instance is shared by all workers; runs keep no state
// on the service.
//
// Eligibility is not re-validated at persistence time. An invoice can be
// paid, voided or claimed by a concurrent run between query and commit; that
// race is accepted and left to downstream review of low-certainty matches.
type Service struct {
	payments   matching.PaymentRepository
	candidates matching.CandidateSource
	tenants    matching.TenantConfigSource
	uow        matching.UnitOfWork
	tokens     shared.TokenGenerator
	budget     int64
	logger     *zap.Logger
}

// Option is a functional option for configuring the Service
type Option func(*Service)

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithCombinationBudget overrides the global combination budget
func WithCombinationBudget(budget int64) Option {
	return func(s *Service) {
		s.budget = budget
	}
}

// NewService creates a matching service
func NewService(
	payments matching.PaymentRepository,
	candidates matching.CandidateSource,
	tenants matching.TenantConfigSource,
	uow matching.UnitOfWork,
	tokens shared.TokenGenerator,
	opts ...Option,
) *Service {
	s := &Service{
		payments:   payments,
		candidates: candidates,
		tenants:    tenants,
		uow:        uow,
		tokens:     tokens,
		budget:     matching.DefaultCombinationBudget,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunRequest identifies one matching run. Edit re-runs clear the payment's
// prior associations before re-evaluating.
type RunRequest struct {
	PaymentID uuid.UUID
	Edit      bool
}

// RunResult summarizes a completed matching run
type RunResult struct {
	Matched   bool
	Reported  int
	Certainty decimal.Decimal
	Primary   *matching.Combination
}

// Run executes one matching run for a payment. "No qualifying combination"
// is a normal outcome (Matched=false); configuration and persistence errors
// abort the run with nothing written. Retries are the caller's concern.
func (s *Service) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	payment, err := s.payments.FindByID(ctx, req.PaymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}

	if req.Edit && payment.MatchAttempted() {
		if err := payment.ResetMatch(); err != nil {
			return nil, err
		}
	} else if err := payment.CanMatch(); err != nil {
		return nil, err
	}

	policy, err := s.tenants.ShortPayPolicy(ctx, payment.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load short-pay policy: %w", err)
	}

	customerCount, err := s.tenants.CustomerCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	threshold, err := matching.CombinationThreshold(s.budget, customerCount)
	if err != nil {
		return nil, err
	}

	maxAmount := policy.MaxInvoiceAmount(payment.BalanceMoney())
	groups, err := s.candidates.FindEligible(ctx, matching.CandidateQuery{
		TenantID:   payment.TenantID,
		PaymentID:  payment.ID,
		CustomerID: payment.CustomerID,
		Currency:   payment.Currency,
		MaxAmount:  maxAmount.Amount(),
	})
	if err != nil {
		return nil, fmt.Errorf("eligibility query failed: %w", err)
	}

	var result matching.MatchResultSet
	generated := 0
	for _, group := range groups {
		combos := matching.GenerateCombinations(group.Candidates, threshold)
		generated += len(combos)
		result = result.Merge(matching.Evaluate(combos, payment.Balance, policy))
	}
	ranked := matching.Rank(result)

	s.logger.Debug("matching run evaluated",
		zap.String("payment_id", payment.ID.String()),
		zap.Int("threshold", threshold),
		zap.Int("customer_groups", len(groups)),
		zap.Int("combinations_generated", generated),
		zap.Int("exact_matches", len(ranked.Matches)),
		zap.Int("short_pay_matches", len(ranked.ShortPayMatches)),
	)

	runResult, err := s.persist(ctx, payment, ranked, req.Edit)
	if err != nil {
		return nil, err
	}

	s.logger.Info("matching run completed",
		zap.String("payment_id", payment.ID.String()),
		zap.Bool("edit", req.Edit),
		zap.Bool("matched", runResult.Matched),
		zap.Int("reported", runResult.Reported),
	)
	return runResult, nil
}

// persist writes the run outcome inside a single transaction: prior
// associations cleared on edit, the payment's matched flag set, and one
// association row per invoice of every reported combination. The primary
// combination is the head of the exact list, falling back to the head of the
// short-pay list.
func (s *Service) persist(ctx context.Context, payment *matching.Payment, ranked matching.MatchResultSet, edit bool) (*RunResult, error) {
	found := !ranked.IsEmpty()
	certainty := matching.RunCertainty(ranked.Reported())

	result := &RunResult{
		Matched:   found,
		Reported:  ranked.Reported(),
		Certainty: certainty,
	}

	err := s.uow.Do(ctx, func(repos matching.TxRepositories) error {
		if edit {
			if err := repos.Associations().DeleteForPayment(ctx, payment.ID); err != nil {
				return fmt.Errorf("failed to clear prior associations: %w", err)
			}
		}

		payment.MarkMatched(found)
		if err := repos.Payments().Save(ctx, payment); err != nil {
			return fmt.Errorf("failed to save payment: %w", err)
		}
		if !found {
			return nil
		}

		exact := ranked.Matches
		shortPay := ranked.ShortPayMatches
		var primary matching.Combination
		if len(exact) > 0 {
			primary, exact = exact[0], exact[1:]
		} else {
			primary, shortPay = shortPay[0], shortPay[1:]
		}
		result.Primary = &primary

		rows, err := s.associationRows(payment, primary, true, certainty)
		if err != nil {
			return err
		}
		for _, combo := range append(exact, shortPay...) {
			more, err := s.associationRows(payment, combo, false, certainty)
			if err != nil {
				return err
			}
			rows = append(rows, more...)
		}
		return repos.Associations().InsertAll(ctx, rows)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) associationRows(payment *matching.Payment, combo matching.Combination, primary bool, certainty decimal.Decimal) ([]matching.InvoicePaymentAssociation, error) {
	groupID, err := s.tokens.Generate(matching.GroupTokenLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate group token: %w", err)
	}
	return matching.AssociationsForCombination(payment.TenantID, payment.ID, combo, groupID, primary, certainty), nil
}
