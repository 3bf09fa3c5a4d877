package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Ali506108/Chat-Service/internal/apperr"
	"github.com/Ali506108/Chat-Service/internal/models"
)

// DirectRepository is the registry of two-party conversations.
type DirectRepository struct {
	coll *mongo.Collection
}

func NewDirectRepository(db *mongo.Database) *DirectRepository {
	return &DirectRepository{coll: db.Collection(directsCollection)}
}

func (r *DirectRepository) Save(ctx context.Context, d *models.Direct) (*models.Direct, error) {
	if _, err := r.coll.InsertOne(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DirectRepository) FindByID(ctx context.Context, chatID string) (*models.Direct, error) {
	var d models.Direct
	if err := r.coll.FindOne(ctx, bson.M{"_id": chatID}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("find direct chat", chatID)
		}
		return nil, err
	}
	return &d, nil
}
