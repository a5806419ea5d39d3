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

// initiateTimeout bounds the synchronous call to the processor; the buyer is
// waiting on this request.
const initiateTimeout = 15 * time.Second

// EcoCashCallback is the raw payload the processor posts to the webhook.
type EcoCashCallback struct {
	Reference  string  `json:"reference"`
	Status     string  `json:"status"`
	Amount     float64 `json:"amount"`
	EcoCashRef string  `json:"ecocashReference"`
}

// EcoCashAdapter drives the mobile-money push channel: it initiates push
// requests against the processor and normalizes its callbacks for the
// reconciliation engine.
type EcoCashAdapter struct {
	Payments  repository.PaymentRepository
	Processor Processor
	Fanout    notify.FanoutService
	Logger    *zap.Logger
}

// InitiatePush creates a pending payment and asks the processor to push a
// payment prompt to the buyer's phone. If the processor call fails or times
// out, the payment is moved to failed before the error is returned. The
// record is kept as an audit trail of the attempt, and a late callback for
// it will be ignored as a no-op against the terminal state.
func (a *EcoCashAdapter) InitiatePush(ctx context.Context, req PushRequest) (*models.Payment, error) {
	if req.OfferID == "" || req.BuyerID == "" || req.Phone == "" {
		return nil, NewInvalidInputError("offerId, buyerId and phone are required")
	}
	if req.Amount <= 0 {
		return nil, NewInvalidInputError("payment amount must be positive")
	}

	p := &models.Payment{
		ID:        uuid.New().String(),
		OfferID:   req.OfferID,
		BuyerID:   req.BuyerID,
		Method:    models.PaymentMethodEcoCash,
		Amount:    req.Amount,
		Currency:  config.AppConfig.Currency,
		Status:    models.PaymentStatusPending,
		Reference: uuid.New().String(),
		GatewayResponse: map[string]any{
			"phone": req.Phone,
		},
	}
	if err := a.Payments.Create(ctx, p); err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, initiateTimeout)
	defer cancel()
	if err := a.Processor.Initiate(callCtx, p.Reference, req.Phone, req.Amount, config.AppConfig.EcoCashCallbackURL); err != nil {
		a.Logger.Warn("ecocash: initiate call failed, failing payment",
			zap.String("paymentId", p.ID), zap.Error(err))

		facts := map[string]any{"initiate_error": err.Error()}
		if _, ferr := a.Payments.ResolveIfPending(ctx, p.ID, models.PaymentStatusFailed, facts, nil); ferr != nil {
			a.Logger.Error("ecocash: could not fail payment after initiate error",
				zap.String("paymentId", p.ID), zap.Error(ferr))
		}
		p.Status = models.PaymentStatusFailed
		return p, NewChannelError("mobile money request was not accepted, please try again")
	}

	a.Logger.Info("ecocash push initiated",
		zap.String("paymentId", p.ID),
		zap.String("reference", p.Reference),
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

// NormalizeCallback maps a processor callback onto the canonical outcome.
// Unrecognized processor statuses normalize to pending, which the engine
// treats as a no-op signal.
func (a *EcoCashAdapter) NormalizeCallback(cb EcoCashCallback) models.PaymentOutcome {
	var status string
	switch cb.Status {
	case "success":
		status = models.PaymentStatusCompleted
	case "failed":
		status = models.PaymentStatusFailed
	case "cancelled":
		status = models.PaymentStatusCancelled
	default:
		status = models.PaymentStatusPending
	}

	facts := map[string]any{
		"processor_status": cb.Status,
	}
	if cb.EcoCashRef != "" {
		facts["ecocash_reference"] = cb.EcoCashRef
	}

	return models.PaymentOutcome{
		Reference:    cb.Reference,
		Status:       status,
		Amount:       cb.Amount,
		ChannelFacts: facts,
	}
}
