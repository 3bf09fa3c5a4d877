package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ali506108/Chat-Service/internal/apperr"
	"github.com/Ali506108/Chat-Service/internal/models"
)

// GroupRepository owns the canonical group records. The redis shadow copy
// is maintained by the service layer, never by this repository.
type GroupRepository struct {
	coll *mongo.Collection
}

func NewGroupRepository(db *mongo.Database) *GroupRepository {
	return &GroupRepository{coll: db.Collection(groupsCollection)}
}

// Save writes the full record, inserting or replacing by group id.
func (r *GroupRepository) Save(ctx context.Context, g *models.Group) (*models.Group, error) {
	filter := bson.M{"_id": g.GroupID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, filter, g, opts); err != nil {
		return nil, err
	}
	return g, nil
}

func (r *GroupRepository) FindByID(ctx context.Context, id string) (*models.Group, error) {
	var g models.Group
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("find group", id)
		}
		return nil, err
	}
	return &g, nil
}

// FindAll pages through groups in creation order. An empty page is a
// valid result.
func (r *GroupRepository) FindAll(ctx context.Context, page, size int64) ([]*models.Group, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetSkip(page * size).
		SetLimit(size)
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*models.Group{}
	for cur.Next(ctx) {
		var g models.Group
		if err := cur.Decode(&g); err != nil {
			return nil, err
		}
		out = append(out, &g)
	}
	return out, cur.Err()
}
