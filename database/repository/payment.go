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

// PaymentRepository defines the interface for payment data access.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	GetByReference(ctx context.Context, reference string) (*models.Payment, error)
	// ResolveIfPending applies a terminal status only if the payment is still
	// pending. This is the single atomic write that enforces terminal immutability.
	// Channel facts are merged into the gateway response blob additively.
	// Returns false when the payment was already terminal.
	ResolveIfPending(ctx context.Context, id, status string, facts map[string]any, completedAt *time.Time) (bool, error)
	ListByOffer(ctx context.Context, offerID string) ([]models.Payment, error)
}

type mongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo returns a PaymentRepository backed by the payments collection.
func NewMongoPaymentRepo() PaymentRepository {
	return &mongoPaymentRepo{coll: database.Collection("payments")}
}

func (r *mongoPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	payment.CreatedAt = time.Now()
	payment.UpdatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, payment); err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

func (r *mongoPaymentRepo) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *mongoPaymentRepo) GetByReference(ctx context.Context, reference string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.coll.FindOne(ctx, bson.M{"reference": reference}).Decode(&payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *mongoPaymentRepo) ResolveIfPending(ctx context.Context, id, status string, facts map[string]any, completedAt *time.Time) (bool, error) {
	set := bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}
	// Dotted paths merge each fact into the blob without clobbering the rest.
	for k, v := range facts {
		set["gateway_response."+k] = v
	}
	if completedAt != nil {
		set["completed_at"] = *completedAt
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": models.PaymentStatusPending},
		bson.M{"$set": set},
	)
	if err != nil {
		return false, fmt.Errorf("failed to resolve payment: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *mongoPaymentRepo) ListByOffer(ctx context.Context, offerID string) ([]models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"offer_id": offerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
