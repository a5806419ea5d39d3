package repository

import (
	"context"

	"propmart/database"
	"propmart/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// BuyerRepository exposes the read-only buyer lookups the workflow needs.
type BuyerRepository interface {
	GetByID(ctx context.Context, id string) (*models.Buyer, error)
}

type mongoBuyerRepo struct {
	coll *mongo.Collection
}

// NewMongoBuyerRepo returns a BuyerRepository backed by the buyers collection.
func NewMongoBuyerRepo() BuyerRepository {
	return &mongoBuyerRepo{coll: database.Collection("buyers")}
}

func (r *mongoBuyerRepo) GetByID(ctx context.Context, id string) (*models.Buyer, error) {
	var buyer models.Buyer
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&buyer); err != nil {
		return nil, err
	}
	return &buyer, nil
}
