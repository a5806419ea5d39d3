package payment

import (
	"context"
	"sync"
	"time"

	"propmart/models"
	"propmart/services/notify"

	"go.mongodb.org/mongo-driver/mongo"
)

type fakePaymentRepo struct {
	mu         sync.Mutex
	payments   map[string]models.Payment
	resolveErr error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[string]models.Payment{}}
}

func (r *fakePaymentRepo) Create(ctx context.Context, p *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	r.payments[p.ID] = *p
	return nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &p, nil
}

func (r *fakePaymentRepo) GetByReference(ctx context.Context, reference string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.Reference == reference {
			p := p
			return &p, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakePaymentRepo) ResolveIfPending(ctx context.Context, id, status string, facts map[string]any, completedAt *time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.resolveErr != nil {
		return false, r.resolveErr
	}
	p, ok := r.payments[id]
	if !ok || p.Status != models.PaymentStatusPending {
		return false, nil
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	if p.GatewayResponse == nil {
		p.GatewayResponse = map[string]any{}
	}
	for k, v := range facts {
		p.GatewayResponse[k] = v
	}
	if completedAt != nil {
		p.CompletedAt = completedAt
	}
	r.payments[id] = p
	return true, nil
}

func (r *fakePaymentRepo) ListByOffer(ctx context.Context, offerID string) ([]models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Payment
	for _, p := range r.payments {
		if p.OfferID == offerID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[string]models.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: map[string]models.Invoice{}}
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, inv *models.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv.CreatedAt = time.Now()
	r.invoices[inv.ID] = *inv
	return nil
}

func (r *fakeInvoiceRepo) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &inv, nil
}

func (r *fakeInvoiceRepo) LatestByOffer(ctx context.Context, offerID string) (*models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *models.Invoice
	for _, inv := range r.invoices {
		inv := inv
		if inv.OfferID != offerID {
			continue
		}
		if latest == nil || inv.IssuedAt.After(latest.IssuedAt) {
			latest = &inv
		}
	}
	if latest == nil {
		return nil, mongo.ErrNoDocuments
	}
	return latest, nil
}

func (r *fakeInvoiceRepo) SettleIfUnpaid(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok || inv.Status == models.InvoiceStatusPaid {
		return false, nil
	}
	inv.Status = models.InvoiceStatusPaid
	inv.AmountDue = 0
	r.invoices[id] = inv
	return true, nil
}

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
	return nil, nil
}

type fanoutCall struct {
	Event string
	Ctx   notify.EventContext
}

type fakeFanout struct {
	mu    sync.Mutex
	calls []fanoutCall
}

func (f *fakeFanout) Notify(ctx context.Context, event string, evctx notify.EventContext) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fanoutCall{Event: event, Ctx: evctx})
}

func (f *fakeFanout) events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.Event
	}
	return out
}

type fakeProcessor struct {
	err   error
	calls int
}

func (p *fakeProcessor) Initiate(ctx context.Context, reference, phone string, amount float64, callbackURL string) error {
	p.calls++
	return p.err
}
