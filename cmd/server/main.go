package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"formsmith/internal/app"
	"formsmith/internal/config"
	"formsmith/internal/logger"
	"formsmith/internal/transport/rest"
	"formsmith/internal/transport/ws"
)

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

	ctx := context.Background()

	aiConfig := config.DefaultAIConfig()
	log.Info("ai config",
		"formGenModel", aiConfig.Models.FormGen,
		"enabled", aiConfig.IsEnabled(),
	)
	if !aiConfig.IsEnabled() {
		log.Warn("GEMINI_API_KEY not set, forms come from the keyword fallback")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("failed to connect to MongoDB", "error", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("failed to ping MongoDB", "error", err)
	}
	log.Info("connected to MongoDB", "db", cfg.MongoDB)

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("failed to ping Redis", "error", err)
	}
	log.Info("connected to Redis", "addr", cfg.RedisAddr)

	a := app.New(cfg, aiConfig, app.MongoStores(db, rdb), log)

	wsHub := ws.NewHub(log)
	defer wsHub.Close()

	// wsHub implements service.Broadcaster
	a.PublishService.SetBroadcaster(wsHub)

	router := rest.NewRouter(&rest.Container{
		Config:         cfg,
		AuthService:    a.AuthService,
		FormService:    a.FormService,
		ChatService:    a.ChatService,
		PublishService: a.PublishService,
		WSHub:          wsHub,
		Logger:         log,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Info("server starting",
			"port", cfg.HTTPPort,
			"user", cfg.UserName,
			"typeform", cfg.Platforms.TypeformToken != "",
			"surveymonkey", cfg.Platforms.SurveyMonkeyToken != "",
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe failed", "error", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}
