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
)

// OfferRepository defines the interface for offer data access.
type OfferRepository interface {
	Create(ctx context.Context, offer *models.Offer) error
	GetByID(ctx context.Context, id string) (*models.Offer, error)
	// DecideIfPending records an approval or rejection only if the offer is
	// still pending. Returns false when the offer was already decided.
	DecideIfPending(ctx context.Context, id, status, reviewerID, reason string, at time.Time) (bool, error)
	// MarkPaidIfApproved moves an approved offer to paid. Returns false when
	// the offer is not currently approved.
	MarkPaidIfApproved(ctx context.Context, id string) (bool, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]models.Offer, error)
}

type mongoOfferRepo struct {
	coll *mongo.Collection
}

// NewMongoOfferRepo returns an OfferRepository backed by the offers collection.
func NewMongoOfferRepo() OfferRepository {
	return &mongoOfferRepo{coll: database.Collection("offers")}
}

func (r *mongoOfferRepo) Create(ctx context.Context, offer *models.Offer) error {
	if offer.ID == "" {
		offer.ID = uuid.New().String()
	}
	offer.CreatedAt = time.Now()
	offer.UpdatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, offer); err != nil {
		return fmt.Errorf("failed to insert offer: %w", err)
	}
	return nil
}

func (r *mongoOfferRepo) GetByID(ctx context.Context, id string) (*models.Offer, error) {
	var offer models.Offer
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&offer); err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *mongoOfferRepo) DecideIfPending(ctx context.Context, id, status, reviewerID, reason string, at time.Time) (bool, error) {
	set := bson.M{
		"status":      status,
		"reviewed_by": reviewerID,
		"reviewed_at": at,
		"updated_at":  time.Now(),
	}
	if reason != "" {
		set["rejection_reason"] = reason
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": models.OfferStatusPending},
		bson.M{"$set": set},
	)
	if err != nil {
		return false, fmt.Errorf("failed to decide offer: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *mongoOfferRepo) MarkPaidIfApproved(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": models.OfferStatusApproved},
		bson.M{"$set": bson.M{"status": models.OfferStatusPaid, "updated_at": time.Now()}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark offer paid: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *mongoOfferRepo) ListByBuyer(ctx context.Context, buyerID string) ([]models.Offer, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"buyer_id": buyerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var offers []models.Offer
	if err := cursor.All(ctx, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}
