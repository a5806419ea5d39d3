package handlers

import (
	"errors"
	"net/http"

	"propmart/services/payment"
	"propmart/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookHandler receives asynchronous processor callbacks.
type WebhookHandler struct {
	EcoCash *payment.EcoCashAdapter
	Engine  payment.ReconciliationEngine
	Logger  *zap.Logger
}

func NewWebhookHandler(ecocash *payment.EcoCashAdapter, engine payment.ReconciliationEngine, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{EcoCash: ecocash, Engine: engine, Logger: logger}
}

// EcoCashCallbackHandler normalizes and applies a processor callback.
//
// Status codes drive the processor's redelivery: 404 for an unknown
// reference (dropped, not retried), 503 for storage failures so the event
// is redelivered, 200 for everything applied, including duplicate
// deliveries, which reconcile to a no-op.
func (h *WebhookHandler) EcoCashCallbackHandler(c *gin.Context) {
	var cb payment.EcoCashCallback
	if err := c.ShouldBindJSON(&cb); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid callback payload", err.Error())
		return
	}

	outcome := h.EcoCash.NormalizeCallback(cb)
	err := h.Engine.ApplyOutcome(c.Request.Context(), outcome.Reference, outcome)
	if err != nil {
		var eerr *payment.EngineError
		if errors.As(err, &eerr) && eerr.Code == payment.CodeNotFound {
			utils.JSONError(c, http.StatusNotFound, "unknown payment reference", outcome.Reference)
			return
		}
		h.Logger.Error("webhook: callback processing failed, requesting redelivery",
			zap.String("reference", outcome.Reference), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "retry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
