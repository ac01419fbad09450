package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"formsmith/internal/model"
)

// FormStore persists canonical forms
type FormStore interface {
	// Put inserts the form (assigning an id) or replaces it when it has one
	Put(ctx context.Context, form *model.Form) (string, error)
	// Get returns nil, nil when the form does not exist
	Get(ctx context.Context, id string) (*model.Form, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Form, error)
}

type formRepo struct {
	collection *mongo.Collection
}

// NewFormRepo creates a MongoDB-backed form store
func NewFormRepo(db *mongo.Database) FormStore {
	return &formRepo{
		collection: db.Collection("forms"),
	}
}

func (r *formRepo) Put(ctx context.Context, form *model.Form) (string, error) {
	now := time.Now()
	if form.ID == "" {
		form.ID = "f_" + uuid.New().String()
		form.CreatedAt = now
	}
	form.UpdatedAt = now

	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": form.ID}, form, options.Replace().SetUpsert(true))
	if err != nil {
		return "", err
	}
	return form.ID, nil
}

func (r *formRepo) Get(ctx context.Context, id string) (*model.Form, error) {
	var form model.Form
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&form)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *formRepo) ListByOwner(ctx context.Context, ownerID string) ([]*model.Form, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	forms := []*model.Form{}
	if err := cursor.All(ctx, &forms); err != nil {
		return nil, err
	}
	return forms, nil
}
