package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"propmart/database/repository"
	"propmart/models"
	"propmart/services/notify"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const defaultRejectionNote = "Payment could not be verified."

// DefaultReconciliationEngine is the production reconciliation engine.
//
// Correctness rests on two layers: the repository's conditional update only
// matches payments still in pending, and a short redis lock per payment id
// serializes concurrent deliveries of the same event before they reach the
// store. Cache may be nil (tests); the conditional update alone still
// guarantees at most one effective terminal transition.
type DefaultReconciliationEngine struct {
	Payments repository.PaymentRepository
	Invoices repository.InvoiceRepository
	Offers   repository.OfferRepository
	Fanout   notify.FanoutService
	Cache    *redis.Client
	Logger   *zap.Logger
}

func (e *DefaultReconciliationEngine) ApplyOutcome(ctx context.Context, reference string, outcome models.PaymentOutcome) error {
	p, err := e.Payments.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			e.Logger.Warn("reconcile: callback for unknown reference dropped",
				zap.String("reference", reference))
			return NewNotFoundError("no payment with reference " + reference)
		}
		return fmt.Errorf("failed to load payment by reference: %w", err)
	}

	// Duplicate callbacks against a terminal payment are expected from the
	// processor; they must not touch the record again.
	if p.IsTerminal() {
		e.Logger.Info("reconcile: payment already terminal, outcome ignored",
			zap.String("paymentId", p.ID),
			zap.String("status", p.Status))
		return nil
	}

	if outcome.Status == models.PaymentStatusPending {
		// Interim processor signal, nothing to apply.
		return nil
	}
	if !models.IsValidPaymentTransition(p.Status, outcome.Status) {
		return NewInvalidStateError(
			fmt.Sprintf("illegal transition %s -> %s for payment %s", p.Status, outcome.Status, p.ID))
	}

	unlock, err := e.lock(ctx, p.ID)
	if err != nil {
		return err
	}
	defer unlock()

	var completedAt *time.Time
	if outcome.Status == models.PaymentStatusCompleted {
		now := time.Now()
		completedAt = &now
	}

	ok, err := e.Payments.ResolveIfPending(ctx, p.ID, outcome.Status, outcome.ChannelFacts, completedAt)
	if err != nil {
		return err
	}
	if !ok {
		// Lost the race to another delivery; that delivery owns the side effects.
		e.Logger.Info("reconcile: payment resolved concurrently, outcome ignored",
			zap.String("paymentId", p.ID))
		return nil
	}

	e.Logger.Info("payment state transition",
		zap.String("paymentId", p.ID),
		zap.String("from", models.PaymentStatusPending),
		zap.String("to", outcome.Status))

	if outcome.Status == models.PaymentStatusCompleted {
		if err := e.settle(ctx, p); err != nil {
			return err
		}
	}

	switch outcome.Status {
	case models.PaymentStatusCompleted:
		e.notifyTerminal(ctx, p, models.EventPaymentVerified, "")
	case models.PaymentStatusFailed:
		e.notifyTerminal(ctx, p, models.EventPaymentFailed, "The payment was reported as failed.")
	}
	return nil
}

func (e *DefaultReconciliationEngine) Verify(ctx context.Context, paymentID, adminID, note string) error {
	p, err := e.loadForAdmin(ctx, paymentID)
	if err != nil {
		return err
	}

	unlock, err := e.lock(ctx, p.ID)
	if err != nil {
		return err
	}
	defer unlock()

	now := time.Now()
	facts := map[string]any{
		"verified_by": adminID,
		"verified_at": now,
	}
	if note != "" {
		facts["verification_note"] = note
	}

	ok, err := e.Payments.ResolveIfPending(ctx, p.ID, models.PaymentStatusCompleted, facts, &now)
	if err != nil {
		return err
	}
	if !ok {
		return NewInvalidStateError("payment " + p.ID + " already processed")
	}

	e.Logger.Info("payment verified",
		zap.String("paymentId", p.ID),
		zap.String("adminId", adminID))

	if err := e.settle(ctx, p); err != nil {
		return err
	}
	e.notifyTerminal(ctx, p, models.EventPaymentVerified, "")
	return nil
}

func (e *DefaultReconciliationEngine) Reject(ctx context.Context, paymentID, adminID, reason string) error {
	p, err := e.loadForAdmin(ctx, paymentID)
	if err != nil {
		return err
	}
	if reason == "" {
		reason = defaultRejectionNote
	}

	unlock, err := e.lock(ctx, p.ID)
	if err != nil {
		return err
	}
	defer unlock()

	facts := map[string]any{
		"rejected_by":      adminID,
		"rejected_at":      time.Now(),
		"rejection_reason": reason,
	}

	ok, err := e.Payments.ResolveIfPending(ctx, p.ID, models.PaymentStatusFailed, facts, nil)
	if err != nil {
		return err
	}
	if !ok {
		return NewInvalidStateError("payment " + p.ID + " already processed")
	}

	e.Logger.Info("payment rejected",
		zap.String("paymentId", p.ID),
		zap.String("adminId", adminID),
		zap.String("reason", reason))

	e.notifyTerminal(ctx, p, models.EventPaymentFailed, reason)
	return nil
}

// settle closes out the invoice tied to the payment's offer. The join is
// logical, by offer id; there is no foreign key from payment to invoice.
// A completed payment with no invoice is legal and leaves nothing to do.
func (e *DefaultReconciliationEngine) settle(ctx context.Context, p *models.Payment) error {
	inv, err := e.Invoices.LatestByOffer(ctx, p.OfferID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			e.Logger.Warn("settle: completed payment has no invoice",
				zap.String("paymentId", p.ID),
				zap.String("offerId", p.OfferID))
			return nil
		}
		return fmt.Errorf("failed to load invoice for settlement: %w", err)
	}

	settled, err := e.Invoices.SettleIfUnpaid(ctx, inv.ID)
	if err != nil {
		return err
	}
	if !settled {
		// Already paid: the overpayment stays on record in the payments
		// collection, the invoice is not reopened.
		e.Logger.Warn("settle: invoice already paid, recording overpayment",
			zap.String("invoiceId", inv.ID),
			zap.String("paymentId", p.ID))
		return nil
	}

	e.Logger.Info("invoice settled",
		zap.String("invoiceId", inv.ID),
		zap.String("offerId", p.OfferID),
		zap.String("paymentId", p.ID))

	// A payment covering the full cash price completes the offer itself.
	o, err := e.Offers.GetByID(ctx, p.OfferID)
	if err != nil {
		return fmt.Errorf("failed to load offer after settlement: %w", err)
	}
	if o.PaymentMethod == models.OfferMethodCash && p.Amount >= o.Price {
		if _, err := e.Offers.MarkPaidIfApproved(ctx, o.ID); err != nil {
			return err
		}
		e.Logger.Info("offer fully paid", zap.String("offerId", o.ID))
	}
	return nil
}

func (e *DefaultReconciliationEngine) loadForAdmin(ctx context.Context, paymentID string) (*models.Payment, error) {
	p, err := e.Payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NewNotFoundError("payment " + paymentID + " not found")
		}
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	if p.Status != models.PaymentStatusPending {
		return nil, NewInvalidStateError("payment " + paymentID + " already processed")
	}
	return p, nil
}

// lock takes a short per-payment redis lock. The caller must run the unlock
// func. Contention means another worker holds the same payment; the caller
// returns a retryable error so the channel redelivers.
func (e *DefaultReconciliationEngine) lock(ctx context.Context, paymentID string) (func(), error) {
	if e.Cache == nil {
		return func() {}, nil
	}
	key := "payment_lock:" + paymentID
	locked, err := e.Cache.SetNX(ctx, key, "1", 30*time.Second).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire payment lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("payment %s is already being processed", paymentID)
	}
	return func() { e.Cache.Del(ctx, key) }, nil
}

func (e *DefaultReconciliationEngine) notifyTerminal(ctx context.Context, p *models.Payment, event, reason string) {
	e.Fanout.Notify(ctx, event, notify.EventContext{
		BuyerID:        p.BuyerID,
		OfferID:        p.OfferID,
		OfferReference: e.offerReference(ctx, p.OfferID),
		Amount:         p.Amount,
		Currency:       p.Currency,
		Method:         p.Method,
		Reason:         reason,
	})
}

func (e *DefaultReconciliationEngine) offerReference(ctx context.Context, offerID string) string {
	o, err := e.Offers.GetByID(ctx, offerID)
	if err != nil {
		return offerID
	}
	return o.ReferenceCode
}
