package offer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"propmart/database/repository"
	"propmart/models"
	"propmart/services/invoice"
	"propmart/services/notify"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const defaultRejectionReason = "The seller was unable to accept your offer at this time."

// DefaultLifecycleService is the production offer lifecycle controller.
type DefaultLifecycleService struct {
	Offers repository.OfferRepository
	Issuer invoice.Issuer
	Fanout notify.FanoutService
	Logger *zap.Logger
}

func (s *DefaultLifecycleService) Submit(ctx context.Context, draft Draft) (*models.Offer, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	o := &models.Offer{
		ID:            uuid.New().String(),
		ReferenceCode: newReferenceCode(),
		BuyerID:       draft.BuyerID,
		SellerID:      draft.SellerID,
		PropertyID:    draft.PropertyID,
		Price:         draft.Price,
		DepositAmount: draft.DepositAmount,
		PaymentMethod: draft.PaymentMethod,
		Status:        models.OfferStatusPending,
	}

	if err := s.Offers.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to record offer: %w", err)
	}

	s.Logger.Info("offer submitted",
		zap.String("offerId", o.ID),
		zap.String("reference", o.ReferenceCode),
		zap.Float64("price", o.Price))

	s.Fanout.Notify(ctx, models.EventOfferSubmitted, notify.EventContext{
		BuyerID:        o.BuyerID,
		OfferID:        o.ID,
		OfferReference: o.ReferenceCode,
		PropertyID:     o.PropertyID,
		Amount:         o.Price,
	})

	return o, nil
}

func (s *DefaultLifecycleService) Decide(ctx context.Context, offerID, decision, reviewerID, reason string) (*models.Offer, *models.Invoice, error) {
	o, err := s.Offers.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, NewNotFoundError("offer " + offerID + " not found")
		}
		return nil, nil, fmt.Errorf("failed to load offer: %w", err)
	}

	var status string
	switch decision {
	case DecisionApprove:
		status = models.OfferStatusApproved
		reason = ""
	case DecisionReject:
		status = models.OfferStatusRejected
		if reason == "" {
			reason = defaultRejectionReason
		}
	default:
		return nil, nil, NewInvalidInputError("unknown decision: " + decision)
	}

	now := time.Now()
	ok, err := s.Offers.DecideIfPending(ctx, offerID, status, reviewerID, reason, now)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, NewInvalidStateError(
			fmt.Sprintf("offer %s has already been decided (%s)", offerID, o.Status))
	}

	o.Status = status
	o.RejectionReason = reason
	o.ReviewedBy = reviewerID
	o.ReviewedAt = &now

	var inv *models.Invoice
	if status == models.OfferStatusApproved {
		inv, err = s.Issuer.IssueFor(ctx, o)
		if err != nil {
			// The approval itself has committed; surface the invoice problem
			// without undoing the decision.
			s.Logger.Error("offer approved but invoice issue failed",
				zap.String("offerId", o.ID), zap.Error(err))
		}
	}

	s.Logger.Info("offer decided",
		zap.String("offerId", o.ID),
		zap.String("status", status),
		zap.String("reviewerId", reviewerID))

	s.Fanout.Notify(ctx, models.EventOfferDecided, notify.EventContext{
		BuyerID:        o.BuyerID,
		OfferID:        o.ID,
		OfferReference: o.ReferenceCode,
		PropertyID:     o.PropertyID,
		Status:         status,
		Reason:         reason,
	})

	return o, inv, nil
}

func (s *DefaultLifecycleService) Get(ctx context.Context, offerID string) (*models.Offer, error) {
	o, err := s.Offers.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NewNotFoundError("offer " + offerID + " not found")
		}
		return nil, fmt.Errorf("failed to load offer: %w", err)
	}
	return o, nil
}

func (s *DefaultLifecycleService) ListForBuyer(ctx context.Context, buyerID string) ([]models.Offer, error) {
	if buyerID == "" {
		return nil, NewInvalidInputError("buyerId is required")
	}
	offers, err := s.Offers.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	return offers, nil
}

func validateDraft(draft Draft) error {
	if draft.BuyerID == "" || draft.PropertyID == "" {
		return NewInvalidInputError("buyerId and propertyId are required")
	}
	if draft.Price <= 0 {
		return NewInvalidInputError("offer price must be positive")
	}
	switch draft.PaymentMethod {
	case models.OfferMethodCash:
	case models.OfferMethodInstallment:
		if draft.DepositAmount <= 0 {
			return NewInvalidInputError("installment offers require a deposit amount")
		}
		if draft.DepositAmount >= draft.Price {
			return NewInvalidInputError("deposit amount must be below the offer price")
		}
	default:
		return NewInvalidInputError("unsupported payment method: " + draft.PaymentMethod)
	}
	return nil
}

func newReferenceCode() string {
	return "OFF-" + strings.ToUpper(uuid.New().String()[:8])
}
