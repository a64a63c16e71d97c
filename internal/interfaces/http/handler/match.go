package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/finledger/cashmatch/internal/domain/matching"
	"github.com/finledger/cashmatch/internal/domain/shared"
	"github.com/finledger/cashmatch/internal/infrastructure/queue"
	"github.com/finledger/cashmatch/internal/interfaces/http/dto"
)

// MatchEnqueuer queues matching runs for asynchronous processing
type MatchEnqueuer interface {
	Enqueue(ctx context.Context, job queue.MatchJob) error
}

// EligibilityChecker reports whether any invoice could be matched to a payment
type EligibilityChecker interface {
	HasEligible(ctx context.Context, query matching.CandidateQuery) (bool, error)
}

// MatchHandler exposes the matching trigger endpoint. It validates the
// payment's state and that at least one eligible invoice exists before
// queueing, so obviously futile runs are rejected at the API instead of
// burning a worker slot.
type MatchHandler struct {
	BaseHandler
	payments   matching.PaymentRepository
	tenants    matching.TenantConfigSource
	candidates EligibilityChecker
	jobs       MatchEnqueuer
	logger     *zap.Logger
}

// NewMatchHandler creates a new MatchHandler
func NewMatchHandler(
	payments matching.PaymentRepository,
	tenants matching.TenantConfigSource,
	candidates EligibilityChecker,
	jobs MatchEnqueuer,
	logger *zap.Logger,
) *MatchHandler {
	return &MatchHandler{
		payments:   payments,
		tenants:    tenants,
		candidates: candidates,
		jobs:       jobs,
		logger:     logger,
	}
}

// TriggerMatch handles POST /api/v1/payments/:id/match
func (h *MatchHandler) TriggerMatch(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	var req dto.MatchRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, "Invalid request body")
			return
		}
	}

	ctx := c.Request.Context()
	payment, err := h.payments.FindByID(ctx, paymentID)
	if err != nil {
		h.DomainError(c, err)
		return
	}

	if err := h.checkState(payment, req.Edit); err != nil {
		h.DomainError(c, err)
		return
	}

	if err := h.checkEligibility(ctx, payment); err != nil {
		h.DomainError(c, err)
		return
	}

	job := queue.MatchJob{PaymentID: paymentID, Edit: req.Edit}
	if err := h.jobs.Enqueue(ctx, job); err != nil {
		h.logger.Error("failed to enqueue matching run",
			zap.String("payment_id", paymentID.String()),
			zap.Error(err))
		h.Error(c, http.StatusInternalServerError, "QUEUE_ERROR", "Failed to queue matching run")
		return
	}

	h.logger.Info("matching run queued",
		zap.String("payment_id", paymentID.String()),
		zap.Bool("edit", req.Edit))
	h.Accepted(c, dto.MatchAccepted{
		PaymentID: paymentID.String(),
		Edit:      req.Edit,
		Queued:    true,
	})
}

// checkState validates the payment against the requested run mode without
// mutating the stored payment.
func (h *MatchHandler) checkState(payment *matching.Payment, edit bool) error {
	if !edit {
		return payment.CanMatch()
	}
	scratch := *payment
	return scratch.ResetMatch()
}

// checkEligibility rejects runs for which no invoice can possibly qualify.
func (h *MatchHandler) checkEligibility(ctx context.Context, payment *matching.Payment) error {
	policy, err := h.tenants.ShortPayPolicy(ctx, payment.TenantID)
	if err != nil {
		return err
	}
	maxAmount := policy.MaxInvoiceAmount(payment.BalanceMoney())
	ok, err := h.candidates.HasEligible(ctx, matching.CandidateQuery{
		TenantID:   payment.TenantID,
		PaymentID:  payment.ID,
		CustomerID: payment.CustomerID,
		Currency:   payment.Currency,
		MaxAmount:  maxAmount.Amount(),
	})
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewDomainError("NO_ELIGIBLE_INVOICES",
			"No eligible invoices exist for this payment")
	}
	return nil
}
