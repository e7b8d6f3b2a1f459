package main

import (
	"GrandLine/internal/config"
	"GrandLine/internal/handlers"
	"GrandLine/internal/middleware"
	"GrandLine/internal/repo"
	"GrandLine/internal/service"
	"GrandLine/internal/storage"
	"net/http"
	"os"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := newLogger(cfg.Debug)
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		sugar.Fatalw("failed to create upload dir", "dir", cfg.UploadDir, "error", err)
	}

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	files := storage.NewFileStore(cfg.UploadDir, cfg.StoreFilesInDB, sugar)

	userRepo := repo.NewUserRepository(gormDB)
	messageRepo := repo.NewMessageRepository(gormDB)
	userService := service.NewUserService(userRepo)
	messageService := service.NewMessageService(messageRepo, userRepo, files, cfg.StoreFilesInDB, sugar)

	h := handlers.NewHandler(userService, messageService, files, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
		"store_files_in_db", cfg.StoreFilesInDB,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"DatabaseDSN", cfg.DatabaseDSN,
		"UploadDir", cfg.UploadDir,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
