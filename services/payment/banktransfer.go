package payment

import (
	"context"
	"time"

	"propmart/config"
	"propmart/database/repository"
	"propmart/models"
	"propmart/services/notify"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BankTransferAdapter handles the manual bank-transfer channel. Submission
// records the buyer's proof of payment; resolution happens exclusively
// through an admin verify/reject action, never automatically.
type BankTransferAdapter struct {
	Payments repository.PaymentRepository
	Fanout   notify.FanoutService
	Logger   *zap.Logger
}

func (a *BankTransferAdapter) SubmitProof(ctx context.Context, req ProofRequest) (*models.Payment, error) {
	if req.OfferID == "" || req.BuyerID == "" {
		return nil, NewInvalidInputError("offerId and buyerId are required")
	}
	if req.Amount <= 0 {
		return nil, NewInvalidInputError("payment amount must be positive")
	}
	if req.ProofRef == "" {
		return nil, NewInvalidInputError("a proof of payment reference is required")
	}

	p := &models.Payment{
		ID:        uuid.New().String(),
		OfferID:   req.OfferID,
		BuyerID:   req.BuyerID,
		Method:    models.PaymentMethodBankTransfer,
		Amount:    req.Amount,
		Currency:  config.AppConfig.Currency,
		Status:    models.PaymentStatusPending,
		Reference: req.ProofRef,
		GatewayResponse: map[string]any{
			"proof_reference": req.ProofRef,
			"submitted_at":    time.Now(),
		},
	}
	if req.Note != "" {
		p.GatewayResponse["submission_note"] = req.Note
	}

	if err := a.Payments.Create(ctx, p); err != nil {
		return nil, err
	}

	a.Logger.Info("bank transfer proof submitted",
		zap.String("paymentId", p.ID),
		zap.String("offerId", p.OfferID),
		zap.Float64("amount", p.Amount))

	a.Fanout.Notify(ctx, models.EventPaymentSubmitted, notify.EventContext{
		BuyerID:  p.BuyerID,
		OfferID:  p.OfferID,
		Amount:   p.Amount,
		Currency: p.Currency,
		Method:   p.Method,
	})
	return p, nil
}
