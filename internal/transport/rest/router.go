package rest

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"formsmith/internal/config"
	"formsmith/internal/logger"
	"formsmith/internal/service"
	"formsmith/internal/transport/rest/handler"
	"formsmith/internal/transport/rest/middleware"
	"formsmith/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	Config         *config.Config
	AuthService    *service.AuthService
	FormService    *service.FormService
	ChatService    *service.ChatService
	PublishService *service.PublishService
	WSHub          *ws.Hub
	Logger         *logger.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	formHandler := handler.NewFormHandler(c.FormService)
	chatHandler := handler.NewChatHandler(c.ChatService)
	platformHandler := handler.NewPlatformHandler(c.PublishService, c.Config.Platforms.GoogleSheetDefault)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.FormService, c.Logger)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.Config.CORSAllowedOrigins))
	r.Use(requestLogger(c.Logger))

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/forms/{formId}", formHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/forms/{formId}/responses", formHandler.SubmitResponse).Methods("POST", "OPTIONS")

	// Stateless platform creation; Authorization carries the Google token here
	v1.HandleFunc("/platforms/{platform}/forms", platformHandler.CreateForm).Methods("POST", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/forms/{formId}", wsHandler.FormWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Generation works anonymously; a token makes the result persistent
	optional := v1.NewRoute().Subrouter()
	optional.Use(authMW.OptionalUser)
	optional.HandleFunc("/forms/generate", formHandler.Generate).Methods("POST", "OPTIONS")

	// User routes (require auth)
	userRoutes := v1.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireUser)

	userRoutes.HandleFunc("/forms", formHandler.Create).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/forms", formHandler.List).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/forms/{formId}/responses", formHandler.Responses).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/forms/{formId}/publish", platformHandler.Publish).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/forms/{formId}/publications", platformHandler.Publications).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/forms/{formId}/status/{platform}", platformHandler.Status).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/chat-history", chatHandler.History).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/chat-history", chatHandler.Append).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+handler.GoogleTokenHeader)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func requestLogger(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// websocket upgrades need the raw writer for hijacking
			if r.Header.Get("Upgrade") != "" {
				next.ServeHTTP(w, r)
				return
			}
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
			)
		})
	}
}
