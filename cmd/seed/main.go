package main

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"formsmith/internal/config"
	"formsmith/internal/logger"
	"formsmith/internal/model"
	"formsmith/internal/repository"
	"formsmith/internal/service"
)

// seed stores a sample form owned by the configured user
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("failed to connect to MongoDB", "error", err)
	}
	defer client.Disconnect(ctx)

	forms := repository.NewFormRepo(client.Database(cfg.MongoDB))
	ownerID := service.UserIDFor(cfg.UserName)

	form := &model.Form{
		OwnerID:     ownerID,
		Title:       "Smartphone Launch Feedback",
		Description: "Tell us how the new device is working for you.",
		Source:      model.FormSourceManual,
		Questions: []model.Question{
			{ID: "q_name", Text: "Your name", Type: model.QuestionTypeShortAnswer, Required: true},
			{ID: "q_email", Text: "Email address", Type: model.QuestionTypeEmail, Required: true},
			{
				ID:       "q_model",
				Text:     "Which model did you purchase?",
				Type:     model.QuestionTypeMultipleChoice,
				Required: true,
				Options:  []string{"Standard Model", "Pro / Plus Model", "Ultra / Max Model"},
			},
			{
				ID: "q_overall", Text: "How satisfied are you overall?", Type: model.QuestionTypeRating,
				Low: 1, High: 5, LowLabel: "Not at all", HighLabel: "Very",
			},
			{
				ID:      "q_features",
				Text:    "Which features do you use daily?",
				Type:    model.QuestionTypeCheckbox,
				Options: []string{"Display", "Battery", "Camera", "Speed", "Design"},
			},
			{ID: "q_improve", Text: "What is one thing you would change?", Type: model.QuestionTypeParagraph},
		},
	}

	id, err := forms.Put(ctx, form)
	if err != nil {
		log.Fatal("failed to insert form", "error", err)
	}

	fmt.Printf("Successfully created form %q (%s) for user %q\n", form.Title, id, cfg.UserName)
}
