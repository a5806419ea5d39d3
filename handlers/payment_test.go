package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"propmart/models"
	"propmart/services/payment"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakePaymentStore struct {
	payments []models.Payment
}

func (f *fakePaymentStore) Create(ctx context.Context, p *models.Payment) error { return nil }

func (f *fakePaymentStore) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	return nil, mongo.ErrNoDocuments
}

func (f *fakePaymentStore) GetByReference(ctx context.Context, reference string) (*models.Payment, error) {
	return nil, mongo.ErrNoDocuments
}

func (f *fakePaymentStore) ResolveIfPending(ctx context.Context, id, status string, facts map[string]any, completedAt *time.Time) (bool, error) {
	return false, nil
}

func (f *fakePaymentStore) ListByOffer(ctx context.Context, offerID string) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range f.payments {
		if p.OfferID == offerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func newPaymentListRouter(store *fakePaymentStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPaymentHandler(&payment.EcoCashAdapter{}, &payment.BankTransferAdapter{}, &fakeEngine{}, store)
	r := gin.New()
	r.GET("/api/offers/:id/payments", h.ListOfferPaymentsHandler)
	return r
}

func TestListOfferPaymentsReturnsOfferHistory(t *testing.T) {
	store := &fakePaymentStore{payments: []models.Payment{
		{ID: "pay-1", OfferID: "offer-1", Method: models.PaymentMethodEcoCash, Status: models.PaymentStatusFailed},
		{ID: "pay-2", OfferID: "offer-1", Method: models.PaymentMethodBankTransfer, Status: models.PaymentStatusCompleted},
		{ID: "pay-3", OfferID: "offer-2", Method: models.PaymentMethodEcoCash, Status: models.PaymentStatusPending},
	}}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/offers/offer-1/payments", nil)
	newPaymentListRouter(store).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pay-1")
	assert.Contains(t, w.Body.String(), "pay-2")
	assert.NotContains(t, w.Body.String(), "pay-3")
}

func TestListOfferPaymentsEmptyIsOK(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/offers/offer-9/payments", nil)
	newPaymentListRouter(&fakePaymentStore{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}
