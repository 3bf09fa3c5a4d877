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

// MessageRepository is the thin CRUD facade over the partitioned message
// log. Messages are keyed by message id (`_id`) and scanned by chat id;
// message ids are time-sortable, so sorting `_id` descending returns
// newest-first within a partition.
type MessageRepository struct {
	coll *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	coll := db.Collection(messagesCollection)
	ix := mongo.IndexModel{
		Keys:    bson.D{{Key: "chat_id", Value: 1}, {Key: "_id", Value: -1}},
		Options: options.Index().SetName("chat_message_idx"),
	}
	_, _ = coll.Indexes().CreateOne(context.Background(), ix)
	return &MessageRepository{coll: coll}
}

// Save persists the message once. The upsert-on-id form keeps a retried
// send from duplicating a line.
func (r *MessageRepository) Save(ctx context.Context, m *models.Message) (*models.Message, error) {
	filter := bson.M{"_id": m.MessageID}
	update := bson.M{"$setOnInsert": m}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MessageRepository) FindByID(ctx context.Context, id string) (*models.Message, error) {
	var m models.Message
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("find message", id)
		}
		return nil, err
	}
	return &m, nil
}

// FindByChat scans the whole partition, newest first.
func (r *MessageRepository) FindByChat(ctx context.Context, chatID string) ([]*models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	return r.find(ctx, bson.M{"chat_id": chatID}, opts)
}

// FindRecent returns at most limit messages for the chat, descending by
// message id.
func (r *MessageRepository) FindRecent(ctx context.Context, chatID string, limit int64) ([]*models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}).SetLimit(limit)
	return r.find(ctx, bson.M{"chat_id": chatID}, opts)
}

func (r *MessageRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Message, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*models.Message{}
	for cur.Next(ctx) {
		var m models.Message
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, cur.Err()
}
