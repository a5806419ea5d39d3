package offer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"propmart/models"
	"propmart/services/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type fakeOfferRepo struct {
	mu     sync.Mutex
	offers map[string]models.Offer
}

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{offers: map[string]models.Offer{}}
}

func (r *fakeOfferRepo) Create(ctx context.Context, o *models.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.CreatedAt = time.Now()
	o.UpdatedAt = time.Now()
	r.offers[o.ID] = *o
	return nil
}

func (r *fakeOfferRepo) GetByID(ctx context.Context, id string) (*models.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.offers[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &o, nil
}

func (r *fakeOfferRepo) DecideIfPending(ctx context.Context, id, status, reviewerID, reason string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.offers[id]
	if !ok || o.Status != models.OfferStatusPending {
		return false, nil
	}
	o.Status = status
	o.ReviewedBy = reviewerID
	o.ReviewedAt = &at
	if reason != "" {
		o.RejectionReason = reason
	}
	r.offers[id] = o
	return true, nil
}

func (r *fakeOfferRepo) MarkPaidIfApproved(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.offers[id]
	if !ok || o.Status != models.OfferStatusApproved {
		return false, nil
	}
	o.Status = models.OfferStatusPaid
	r.offers[id] = o
	return true, nil
}

func (r *fakeOfferRepo) ListByBuyer(ctx context.Context, buyerID string) ([]models.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Offer
	for _, o := range r.offers {
		if o.BuyerID == buyerID {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeIssuer struct {
	issued []*models.Invoice
	err    error
}

func (f *fakeIssuer) IssueFor(ctx context.Context, o *models.Offer) (*models.Invoice, error) {
	if f.err != nil {
		return nil, f.err
	}
	inv := &models.Invoice{
		ID:      "inv-" + o.ID,
		OfferID: o.ID,
		Status:  models.InvoiceStatusUnpaid,
		Total:   o.Price,
	}
	f.issued = append(f.issued, inv)
	return inv, nil
}

func (f *fakeIssuer) LatestForOffer(ctx context.Context, offerID string) (*models.Invoice, error) {
	for i := len(f.issued) - 1; i >= 0; i-- {
		if f.issued[i].OfferID == offerID {
			return f.issued[i], nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

type fakeFanout struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeFanout) Notify(ctx context.Context, event string, evctx notify.EventContext) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, event)
}

func (f *fakeFanout) events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type lifecycleFixture struct {
	repo    *fakeOfferRepo
	issuer  *fakeIssuer
	fanout  *fakeFanout
	service *DefaultLifecycleService
}

func newLifecycleFixture() *lifecycleFixture {
	f := &lifecycleFixture{
		repo:   newFakeOfferRepo(),
		issuer: &fakeIssuer{},
		fanout: &fakeFanout{},
	}
	f.service = &DefaultLifecycleService{
		Offers: f.repo,
		Issuer: f.issuer,
		Fanout: f.fanout,
		Logger: zap.NewNop(),
	}
	return f
}

func cashDraft() Draft {
	return Draft{
		BuyerID:       "buyer-1",
		SellerID:      "seller-1",
		PropertyID:    "prop-9",
		Price:         50000,
		PaymentMethod: models.OfferMethodCash,
	}
}

func (f *lifecycleFixture) submit(t *testing.T) *models.Offer {
	t.Helper()
	o, err := f.service.Submit(context.Background(), cashDraft())
	require.NoError(t, err)
	return o
}

func TestSubmitCreatesPendingOffer(t *testing.T) {
	f := newLifecycleFixture()

	o := f.submit(t)

	assert.Equal(t, models.OfferStatusPending, o.Status)
	assert.NotEmpty(t, o.ID)
	assert.Regexp(t, `^OFF-[0-9A-F]{8}$`, o.ReferenceCode)
	assert.Contains(t, f.fanout.events(), models.EventOfferSubmitted)

	stored, err := f.repo.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusPending, stored.Status)
}

func TestSubmitValidation(t *testing.T) {
	f := newLifecycleFixture()

	cases := []struct {
		name   string
		mutate func(*Draft)
	}{
		{"missing buyer", func(d *Draft) { d.BuyerID = "" }},
		{"missing property", func(d *Draft) { d.PropertyID = "" }},
		{"zero price", func(d *Draft) { d.Price = 0 }},
		{"negative price", func(d *Draft) { d.Price = -100 }},
		{"unknown method", func(d *Draft) { d.PaymentMethod = "barter" }},
		{"installment without deposit", func(d *Draft) {
			d.PaymentMethod = models.OfferMethodInstallment
			d.DepositAmount = 0
		}},
		{"deposit above price", func(d *Draft) {
			d.PaymentMethod = models.OfferMethodInstallment
			d.DepositAmount = 60000
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := cashDraft()
			tc.mutate(&d)
			_, err := f.service.Submit(context.Background(), d)
			var werr *WorkflowError
			require.True(t, errors.As(err, &werr))
			assert.Equal(t, CodeInvalidInput, werr.Code)
		})
	}
}

func TestDecideApproveIssuesInvoice(t *testing.T) {
	f := newLifecycleFixture()
	o := f.submit(t)

	decided, inv, err := f.service.Decide(context.Background(), o.ID, DecisionApprove, "admin-1", "")
	require.NoError(t, err)

	assert.Equal(t, models.OfferStatusApproved, decided.Status)
	assert.Equal(t, "admin-1", decided.ReviewedBy)
	require.NotNil(t, inv)
	assert.Equal(t, o.ID, inv.OfferID)
	assert.Equal(t, models.InvoiceStatusUnpaid, inv.Status)
	assert.Contains(t, f.fanout.events(), models.EventOfferDecided)
}

func TestDecideRejectUsesDefaultReason(t *testing.T) {
	f := newLifecycleFixture()
	o := f.submit(t)

	decided, inv, err := f.service.Decide(context.Background(), o.ID, DecisionReject, "admin-1", "")
	require.NoError(t, err)

	assert.Equal(t, models.OfferStatusRejected, decided.Status)
	assert.Equal(t, defaultRejectionReason, decided.RejectionReason)
	assert.Nil(t, inv, "rejection must not issue an invoice")
	assert.Empty(t, f.issuer.issued)
}

func TestDecideRejectKeepsProvidedReason(t *testing.T) {
	f := newLifecycleFixture()
	o := f.submit(t)

	decided, _, err := f.service.Decide(context.Background(), o.ID, DecisionReject, "admin-1", "price below reserve")
	require.NoError(t, err)
	assert.Equal(t, "price below reserve", decided.RejectionReason)
}

func TestDecideUnknownOffer(t *testing.T) {
	f := newLifecycleFixture()

	_, _, err := f.service.Decide(context.Background(), "no-such-offer", DecisionApprove, "admin-1", "")
	var werr *WorkflowError
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, CodeNotFound, werr.Code)
}

func TestDecideAlreadyDecidedOffer(t *testing.T) {
	f := newLifecycleFixture()
	o := f.submit(t)

	_, _, err := f.service.Decide(context.Background(), o.ID, DecisionApprove, "admin-1", "")
	require.NoError(t, err)

	// A second decision of either kind must bounce.
	for _, decision := range []string{DecisionApprove, DecisionReject} {
		_, _, err = f.service.Decide(context.Background(), o.ID, decision, "admin-2", "")
		var werr *WorkflowError
		require.True(t, errors.As(err, &werr), "decision %q", decision)
		assert.Equal(t, CodeInvalidState, werr.Code)
	}

	stored, err := f.repo.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", stored.ReviewedBy)
}

func TestDecideUnknownDecision(t *testing.T) {
	f := newLifecycleFixture()
	o := f.submit(t)

	_, _, err := f.service.Decide(context.Background(), o.ID, "defer", "admin-1", "")
	var werr *WorkflowError
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, CodeInvalidInput, werr.Code)
}

func TestDecideApproveSurvivesInvoiceFailure(t *testing.T) {
	f := newLifecycleFixture()
	f.issuer.err = errors.New("invoice store unavailable")
	o := f.submit(t)

	decided, inv, err := f.service.Decide(context.Background(), o.ID, DecisionApprove, "admin-1", "")
	require.NoError(t, err, "the committed approval must not be rolled back")
	assert.Equal(t, models.OfferStatusApproved, decided.Status)
	assert.Nil(t, inv)

	stored, gerr := f.repo.GetByID(context.Background(), o.ID)
	require.NoError(t, gerr)
	assert.Equal(t, models.OfferStatusApproved, stored.Status)
}

func TestListForBuyerReturnsOnlyOwnOffers(t *testing.T) {
	f := newLifecycleFixture()
	mine := f.submit(t)
	other := &models.Offer{
		ID:            "offer-other",
		BuyerID:       "buyer-2",
		PropertyID:    "prop-3",
		Price:         1000,
		PaymentMethod: models.OfferMethodCash,
		Status:        models.OfferStatusPending,
	}
	require.NoError(t, f.repo.Create(context.Background(), other))

	offers, err := f.service.ListForBuyer(context.Background(), "buyer-1")
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, mine.ID, offers[0].ID)
}

func TestListForBuyerRequiresBuyerID(t *testing.T) {
	f := newLifecycleFixture()

	_, err := f.service.ListForBuyer(context.Background(), "")
	var werr *WorkflowError
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, CodeInvalidInput, werr.Code)
}

func TestGetUnknownOffer(t *testing.T) {
	f := newLifecycleFixture()

	_, err := f.service.Get(context.Background(), "missing")
	var werr *WorkflowError
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, CodeNotFound, werr.Code)
}
