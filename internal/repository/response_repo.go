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

// ResponseStore persists submitted form responses
type ResponseStore interface {
	Add(ctx context.Context, resp *model.FormResponse) error
	ListByForm(ctx context.Context, formID string) ([]*model.FormResponse, error)
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a MongoDB-backed response store
func NewResponseRepo(db *mongo.Database) ResponseStore {
	return &responseRepo{
		collection: db.Collection("responses"),
	}
}

func (r *responseRepo) Add(ctx context.Context, resp *model.FormResponse) error {
	prepareResponse(resp)
	_, err := r.collection.InsertOne(ctx, resp)
	return err
}

func (r *responseRepo) ListByForm(ctx context.Context, formID string) ([]*model.FormResponse, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"formId": formID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	responses := []*model.FormResponse{}
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func prepareResponse(resp *model.FormResponse) {
	if resp.ID == "" {
		resp.ID = "r_" + uuid.New().String()
	}
	if resp.SubmittedAt.IsZero() {
		resp.SubmittedAt = time.Now()
	}
}
