package handlers

import (
	"GrandLine/internal/config"
	"GrandLine/internal/middleware"
	"GrandLine/internal/service"
	"GrandLine/internal/storage"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	messageService *service.MessageService,
	files *storage.FileStore,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	// мобильный клиент ходит с другого origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Handlers
	userHandler := NewUserHandler(userService, files, logger, config)
	messageHandler := NewMessageHandler(messageService, files, logger, config)
	mediaHandler := NewMediaHandler(messageService, files, logger)

	// User routes
	r.Post("/register", userHandler.Register)
	r.Post("/login", userHandler.Login)
	r.Get("/users", userHandler.List)
	r.Get("/users/{id}", userHandler.Get)

	// Message routes
	r.Post("/messages", messageHandler.Send)
	r.Get("/messages/{id1}/{id2}", messageHandler.Chat)
	r.Delete("/messages/{id}", messageHandler.Delete)

	// File serving routes
	r.Get("/uploads/*", mediaHandler.ServeUpload)
	r.Get("/media/audio/{messageID}", mediaHandler.GetAudio)
	r.Get("/media/media/{messageID}", mediaHandler.GetMedia)

	return &Handler{Router: r}
}

// writeJSON сериализует payload; ошибки сериализации не доходят до клиента
// в виде стектрейса.
func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError — единый формат ошибок API: {"message": "..."}.
func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"message": message})
}
