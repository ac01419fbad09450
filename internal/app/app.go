package app

import (
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"formsmith/internal/cache"
	"formsmith/internal/config"
	"formsmith/internal/formgen"
	"formsmith/internal/logger"
	"formsmith/internal/repository"
	"formsmith/internal/service"
	"formsmith/internal/translate"
	"formsmith/internal/translate/google"
	"formsmith/internal/translate/surveymonkey"
	"formsmith/internal/translate/typeform"
)

// Stores groups the persistence backends the services run on
type Stores struct {
	Forms        repository.FormStore
	Responses    repository.ResponseStore
	Publications repository.PublicationStore
	Chat         cache.ChatCache
	Statuses     cache.PublishStatusCache
}

// MongoStores backs forms in MongoDB and chat/status in Redis
func MongoStores(db *mongo.Database, rdb *redis.Client) Stores {
	return Stores{
		Forms:        repository.NewFormRepo(db),
		Responses:    repository.NewResponseRepo(db),
		Publications: repository.NewPublicationRepo(db),
		Chat:         cache.NewChatCache(rdb),
		Statuses:     cache.NewPublishStatusCache(rdb),
	}
}

// MemoryStores keeps everything in process (CLI, tests)
func MemoryStores() Stores {
	return Stores{
		Forms:        repository.NewMemoryFormStore(),
		Responses:    repository.NewMemoryResponseStore(),
		Publications: repository.NewMemoryPublicationStore(),
		Chat:         cache.NewMemoryChatCache(),
		Statuses:     cache.NewMemoryPublishStatusCache(),
	}
}

// App is the wired service graph
type App struct {
	AuthService    *service.AuthService
	FormService    *service.FormService
	ChatService    *service.ChatService
	PublishService *service.PublishService
}

// New wires the services over the given stores
func New(cfg *config.Config, ai *config.AIConfig, stores Stores, log *logger.Logger) *App {
	formSvc := service.NewFormService(formgen.NewGenerator(ai, log), stores.Forms, stores.Responses, stores.Chat, log)
	return &App{
		AuthService:    service.NewAuthService(cfg),
		FormService:    formSvc,
		ChatService:    service.NewChatService(stores.Chat, formSvc),
		PublishService: service.NewPublishService(formSvc, stores.Publications, stores.Statuses, log, Translators(cfg, log)...),
	}
}

// Translators builds one translator per supported platform
func Translators(cfg *config.Config, log *logger.Logger) []translate.Translator {
	p := cfg.Platforms
	timeout := time.Duration(p.TimeoutSeconds) * time.Second
	return []translate.Translator{
		google.NewPublisher(nil, log),
		typeform.NewPublisher(p.TypeformBaseURL, p.TypeformToken, timeout, p.MaxRetries, log),
		surveymonkey.NewPublisher(p.SurveyMonkeyURL, p.SurveyMonkeyToken, timeout, p.MaxRetries, log),
	}
}
