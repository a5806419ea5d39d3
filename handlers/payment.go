package handlers

import (
	"errors"
	"net/http"

	"propmart/database/repository"
	"propmart/models"
	"propmart/services/payment"
	"propmart/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler exposes payment initiation, the admin verify/reject actions
// and the per-offer payment history over HTTP.
type PaymentHandler struct {
	EcoCash      *payment.EcoCashAdapter
	BankTransfer *payment.BankTransferAdapter
	Engine       payment.ReconciliationEngine
	Payments     repository.PaymentRepository
}

func NewPaymentHandler(ecocash *payment.EcoCashAdapter, bank *payment.BankTransferAdapter, engine payment.ReconciliationEngine, payments repository.PaymentRepository) *PaymentHandler {
	return &PaymentHandler{EcoCash: ecocash, BankTransfer: bank, Engine: engine, Payments: payments}
}

// InitiateEcoCashHandler starts a mobile-money push payment.
func (h *PaymentHandler) InitiateEcoCashHandler(c *gin.Context) {
	var req payment.PushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if buyerID := c.GetString("buyerID"); buyerID != "" {
		req.BuyerID = buyerID
	}

	p, err := h.EcoCash.InitiatePush(c.Request.Context(), req)
	if err != nil {
		renderPaymentError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"payment": p,
		"message": "Check your phone to confirm the payment.",
	})
}

// SubmitBankTransferHandler records proof of a manual bank transfer.
func (h *PaymentHandler) SubmitBankTransferHandler(c *gin.Context) {
	var req payment.ProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if buyerID := c.GetString("buyerID"); buyerID != "" {
		req.BuyerID = buyerID
	}

	p, err := h.BankTransfer.SubmitProof(c.Request.Context(), req)
	if err != nil {
		renderPaymentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"payment": p,
		"message": "Proof of payment received. We will confirm it shortly.",
	})
}

// ListOfferPaymentsHandler returns every payment attempt recorded against an
// offer, newest first. The back-office verification view works from this.
func (h *PaymentHandler) ListOfferPaymentsHandler(c *gin.Context) {
	payments, err := h.Payments.ListByOffer(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load payments", err.Error())
		return
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	c.JSON(http.StatusOK, payments)
}

// VerifyPaymentHandler is the admin confirmation action for any channel.
func (h *PaymentHandler) VerifyPaymentHandler(c *gin.Context) {
	var input struct {
		AdminID string `json:"adminId"`
		Note    string `json:"note,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Engine.Verify(c.Request.Context(), c.Param("id"), input.AdminID, input.Note); err != nil {
		renderPaymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}

// RejectPaymentHandler is the admin rejection action.
func (h *PaymentHandler) RejectPaymentHandler(c *gin.Context) {
	var input struct {
		AdminID string `json:"adminId"`
		Reason  string `json:"reason,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Engine.Reject(c.Request.Context(), c.Param("id"), input.AdminID, input.Reason); err != nil {
		renderPaymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "failed"})
}

func renderPaymentError(c *gin.Context, err error) {
	var eerr *payment.EngineError
	if errors.As(err, &eerr) {
		switch eerr.Code {
		case payment.CodeNotFound:
			utils.JSONError(c, http.StatusNotFound, "payment not found", eerr.Message)
		case payment.CodeInvalidState:
			utils.JSONError(c, http.StatusConflict, "payment already processed", eerr.Message)
		case payment.CodeChannelFailure:
			utils.JSONError(c, http.StatusBadGateway, "Payment could not be initiated, please try again", eerr.Message)
		default:
			utils.JSONError(c, http.StatusBadRequest, "invalid input", eerr.Message)
		}
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "Please try again later", err.Error())
}
