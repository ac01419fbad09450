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

// PublicationStore records forms created on external platforms
type PublicationStore interface {
	Save(ctx context.Context, pub *model.Publication) error
	ListByForm(ctx context.Context, formID string) ([]*model.Publication, error)
}

type publicationRepo struct {
	collection *mongo.Collection
}

// NewPublicationRepo creates a MongoDB-backed publication store
func NewPublicationRepo(db *mongo.Database) PublicationStore {
	return &publicationRepo{
		collection: db.Collection("publications"),
	}
}

func (r *publicationRepo) Save(ctx context.Context, pub *model.Publication) error {
	preparePublication(pub)
	_, err := r.collection.InsertOne(ctx, pub)
	return err
}

func (r *publicationRepo) ListByForm(ctx context.Context, formID string) ([]*model.Publication, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"formId": formID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	pubs := []*model.Publication{}
	if err := cursor.All(ctx, &pubs); err != nil {
		return nil, err
	}
	return pubs, nil
}

func preparePublication(pub *model.Publication) {
	if pub.ID == "" {
		pub.ID = "pub_" + uuid.New().String()
	}
	if pub.CreatedAt.IsZero() {
		pub.CreatedAt = time.Now()
	}
}
