package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/finledger/cashmatch/internal/domain/matching"
	"github.com/finledger/cashmatch/internal/domain/shared"
	"github.com/finledger/cashmatch/internal/domain/shared/valueobject"
	"github.com/finledger/cashmatch/internal/infrastructure/queue"
)

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*matching.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*matching.Payment), args.Error(1)
}

func (m *mockPaymentRepo) Save(ctx context.Context, payment *matching.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

type mockTenantConfig struct {
	mock.Mock
}

func (m *mockTenantConfig) ShortPayPolicy(ctx context.Context, tenantID uuid.UUID) (matching.ShortPayPolicy, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(matching.ShortPayPolicy), args.Error(1)
}

func (m *mockTenantConfig) CustomerCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockEligibility struct {
	mock.Mock
}

func (m *mockEligibility) HasEligible(ctx context.Context, query matching.CandidateQuery) (bool, error) {
	args := m.Called(ctx, query)
	return args.Bool(0), args.Error(1)
}

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) Enqueue(ctx context.Context, job queue.MatchJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

type matchFixture struct {
	payments   *mockPaymentRepo
	tenants    *mockTenantConfig
	candidates *mockEligibility
	jobs       *mockEnqueuer
	router     *gin.Engine
}

func newMatchFixture(t *testing.T) *matchFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &matchFixture{
		payments:   new(mockPaymentRepo),
		tenants:    new(mockTenantConfig),
		candidates: new(mockEligibility),
		jobs:       new(mockEnqueuer),
	}
	h := NewMatchHandler(f.payments, f.tenants, f.candidates, f.jobs, zap.NewNop())

	f.router = gin.New()
	f.router.POST("/api/v1/payments/:id/match", h.TriggerMatch)
	return f
}

func (f *matchFixture) trigger(t *testing.T, paymentID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/"+paymentID+"/match", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func unmatchedPayment(t *testing.T) *matching.Payment {
	t.Helper()
	balance, err := valueobject.NewMoneyFromString("250.00", valueobject.USD)
	require.NoError(t, err)
	payment, err := matching.NewPayment(uuid.New(), nil, balance)
	require.NoError(t, err)
	return payment
}

func zeroPercentPolicy(t *testing.T) matching.ShortPayPolicy {
	t.Helper()
	policy, err := matching.NewShortPayPolicy("percent", decimal.Zero)
	require.NoError(t, err)
	return policy
}

func TestTriggerMatchQueuesRun(t *testing.T) {
	f := newMatchFixture(t)
	payment := unmatchedPayment(t)

	f.payments.On("FindByID", mock.Anything, payment.ID).Return(payment, nil)
	f.tenants.On("ShortPayPolicy", mock.Anything, payment.TenantID).Return(zeroPercentPolicy(t), nil)
	f.candidates.On("HasEligible", mock.Anything, mock.Anything).Return(true, nil)
	f.jobs.On("Enqueue", mock.Anything, mock.MatchedBy(func(job queue.MatchJob) bool {
		return job.PaymentID == payment.ID && !job.Edit
	})).Return(nil)

	w := f.trigger(t, payment.ID.String(), nil)

	assert.Equal(t, http.StatusAccepted, w.Code)
	f.jobs.AssertExpectations(t)
}

func TestTriggerMatchEditRequiresPriorAttempt(t *testing.T) {
	f := newMatchFixture(t)
	payment := unmatchedPayment(t)
	f.payments.On("FindByID", mock.Anything, payment.ID).Return(payment, nil)

	w := f.trigger(t, payment.ID.String(), map[string]any{"edit": true})

	assert.Equal(t, http.StatusConflict, w.Code)
	f.jobs.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
}

func TestTriggerMatchEditQueuesRerun(t *testing.T) {
	f := newMatchFixture(t)
	payment := unmatchedPayment(t)
	payment.MarkMatched(false)

	f.payments.On("FindByID", mock.Anything, payment.ID).Return(payment, nil)
	f.tenants.On("ShortPayPolicy", mock.Anything, payment.TenantID).Return(zeroPercentPolicy(t), nil)
	f.candidates.On("HasEligible", mock.Anything, mock.Anything).Return(true, nil)
	f.jobs.On("Enqueue", mock.Anything, mock.MatchedBy(func(job queue.MatchJob) bool {
		return job.PaymentID == payment.ID && job.Edit
	})).Return(nil)

	w := f.trigger(t, payment.ID.String(), map[string]any{"edit": true})

	assert.Equal(t, http.StatusAccepted, w.Code)
	// The stored payment keeps its outcome until the worker resets it.
	assert.NotNil(t, payment.Matched)
	f.jobs.AssertExpectations(t)
}

func TestTriggerMatchRejectsSecondAttempt(t *testing.T) {
	f := newMatchFixture(t)
	payment := unmatchedPayment(t)
	payment.MarkMatched(true)
	f.payments.On("FindByID", mock.Anything, payment.ID).Return(payment, nil)

	w := f.trigger(t, payment.ID.String(), nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTriggerMatchUnknownPayment(t *testing.T) {
	f := newMatchFixture(t)
	id := uuid.New()
	f.payments.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	w := f.trigger(t, id.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTriggerMatchInvalidID(t *testing.T) {
	f := newMatchFixture(t)

	w := f.trigger(t, "not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTriggerMatchNoEligibleInvoices(t *testing.T) {
	f := newMatchFixture(t)
	payment := unmatchedPayment(t)

	f.payments.On("FindByID", mock.Anything, payment.ID).Return(payment, nil)
	f.tenants.On("ShortPayPolicy", mock.Anything, payment.TenantID).Return(zeroPercentPolicy(t), nil)
	f.candidates.On("HasEligible", mock.Anything, mock.Anything).Return(false, nil)

	w := f.trigger(t, payment.ID.String(), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	f.jobs.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
}
