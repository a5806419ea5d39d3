package invoice

import (
	"context"
	"fmt"
	"time"

	"propmart/config"
	"propmart/database/repository"
	"propmart/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Payment terms: invoices fall due seven working days after issue.
const dueInWorkingDays = 7

// DefaultIssuer is the production invoice issuer.
type DefaultIssuer struct {
	Invoices repository.InvoiceRepository
	Buyers   repository.BuyerRepository
	Logger   *zap.Logger
}

func (s *DefaultIssuer) IssueFor(ctx context.Context, offer *models.Offer) (*models.Invoice, error) {
	if offer == nil {
		return nil, fmt.Errorf("issue invoice: nil offer")
	}
	if offer.Status != models.OfferStatusApproved {
		return nil, fmt.Errorf("issue invoice: offer %s is %s, not approved", offer.ID, offer.Status)
	}

	subtotal := offer.Price
	description := fmt.Sprintf("Full purchase price for property %s", offer.PropertyID)
	if offer.PaymentMethod == models.OfferMethodInstallment {
		subtotal = offer.DepositAmount
		description = fmt.Sprintf("Deposit for property %s", offer.PropertyID)
	}

	now := time.Now()
	inv := &models.Invoice{
		ID:        uuid.New().String(),
		OfferID:   offer.ID,
		Currency:  config.AppConfig.Currency,
		Subtotal:  subtotal,
		Tax:       0,
		Total:     subtotal,
		AmountDue: subtotal,
		Status:    models.InvoiceStatusUnpaid,
		LineItems: []models.InvoiceLineItem{
			{Description: description, Amount: subtotal},
		},
		Snapshot: s.snapshotFacts(ctx, offer),
		IssuedAt: now,
		DueAt:    addWorkingDays(now, dueInWorkingDays),
	}

	if err := s.Invoices.Create(ctx, inv); err != nil {
		// Best-effort durability: the approval must not hard-fail on a missed
		// invoice write. The caller gets the in-memory invoice and an admin
		// can reissue it.
		s.Logger.Error("invoice: store write failed, returning in-memory invoice",
			zap.String("offerId", offer.ID), zap.Error(err))
	}

	s.Logger.Info("invoice issued",
		zap.String("invoiceId", inv.ID),
		zap.String("offerId", offer.ID),
		zap.Float64("total", inv.Total),
		zap.Time("dueAt", inv.DueAt))
	return inv, nil
}

func (s *DefaultIssuer) LatestForOffer(ctx context.Context, offerID string) (*models.Invoice, error) {
	return s.Invoices.LatestByOffer(ctx, offerID)
}

// snapshotFacts freezes buyer/property/offer facts at issue time. The buyer
// name is nice-to-have display data; a failed lookup degrades the snapshot,
// never the invoice.
func (s *DefaultIssuer) snapshotFacts(ctx context.Context, offer *models.Offer) models.InvoiceSnapshot {
	snap := models.InvoiceSnapshot{
		OfferReference: offer.ReferenceCode,
		BuyerID:        offer.BuyerID,
		PropertyID:     offer.PropertyID,
		OfferPrice:     offer.Price,
		PaymentMethod:  offer.PaymentMethod,
	}
	if buyer, err := s.Buyers.GetByID(ctx, offer.BuyerID); err == nil {
		snap.BuyerName = buyer.FullName
	} else {
		s.Logger.Warn("invoice: buyer lookup for snapshot failed",
			zap.String("buyerId", offer.BuyerID), zap.Error(err))
	}
	return snap
}
