package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"propmart/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeNotificationStore struct {
	rows []models.Notification
}

func (f *fakeNotificationStore) Create(ctx context.Context, n *models.Notification) error {
	return nil
}

func (f *fakeNotificationStore) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeNotificationStore) ListByBuyer(ctx context.Context, buyerID string) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.rows {
		if n.BuyerID == buyerID {
			out = append(out, n)
		}
	}
	return out, nil
}

func newNotificationRouter(store *fakeNotificationStore, buyerID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewNotificationHandler(store)
	r := gin.New()
	r.GET("/api/notifications", func(c *gin.Context) {
		if buyerID != "" {
			c.Set("buyerID", buyerID)
		}
	}, h.ListMyNotificationsHandler)
	return r
}

func TestListMyNotificationsReturnsOwnRows(t *testing.T) {
	store := &fakeNotificationStore{rows: []models.Notification{
		{ID: "n-1", BuyerID: "buyer-1", Type: models.EventOfferDecided},
		{ID: "n-2", BuyerID: "buyer-2", Type: models.EventPaymentVerified},
	}}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
	newNotificationRouter(store, "buyer-1").ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "n-1")
	assert.NotContains(t, w.Body.String(), "n-2")
}

func TestListMyNotificationsWithoutIdentity(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
	newNotificationRouter(&fakeNotificationStore{}, "").ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
