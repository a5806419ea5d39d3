package repository

import (
	"context"
	"fmt"
	"time"

	"propmart/database"
	"propmart/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InvoiceRepository defines the interface for invoice data access.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	GetByID(ctx context.Context, id string) (*models.Invoice, error)
	// LatestByOffer returns the most recently issued invoice for an offer.
	// Historical invoices may exist if one was reissued.
	LatestByOffer(ctx context.Context, offerID string) (*models.Invoice, error)
	// SettleIfUnpaid marks an invoice paid with amount_due zero, only if it is
	// not already paid. Returns false when it was paid before the call.
	SettleIfUnpaid(ctx context.Context, id string) (bool, error)
}

type mongoInvoiceRepo struct {
	coll *mongo.Collection
}

// NewMongoInvoiceRepo returns an InvoiceRepository backed by the invoices collection.
func NewMongoInvoiceRepo() InvoiceRepository {
	return &mongoInvoiceRepo{coll: database.Collection("invoices")}
}

func (r *mongoInvoiceRepo) Create(ctx context.Context, invoice *models.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	invoice.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, invoice); err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}
	return nil
}

func (r *mongoInvoiceRepo) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *mongoInvoiceRepo) LatestByOffer(ctx context.Context, offerID string) (*models.Invoice, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "issued_at", Value: -1}})
	var invoice models.Invoice
	if err := r.coll.FindOne(ctx, bson.M{"offer_id": offerID}, opts).Decode(&invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *mongoInvoiceRepo) SettleIfUnpaid(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": bson.M{"$ne": models.InvoiceStatusPaid}},
		bson.M{"$set": bson.M{"status": models.InvoiceStatusPaid, "amount_due": 0.0}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to settle invoice: %w", err)
	}
	return res.MatchedCount > 0, nil
}
