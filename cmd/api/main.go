package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/smerfmc/gallery/internal/bot"
	"github.com/smerfmc/gallery/internal/category"
	"github.com/smerfmc/gallery/internal/config"
	"github.com/smerfmc/gallery/internal/db"
	"github.com/smerfmc/gallery/internal/image"
	appMiddleware "github.com/smerfmc/gallery/internal/middleware"
	"github.com/smerfmc/gallery/internal/storage"
	"github.com/smerfmc/gallery/internal/web"
)

func main() {
	cfg := config.Load()

	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	store, err := storage.NewMinioStorage(
		cfg.StorageEndpoint,
		cfg.StorageAccessKey,
		cfg.StorageSecretKey,
		cfg.StorageBucket,
		cfg.StorageUseSSL,
	)
	if err != nil {
		log.Fatalf("object storage init failed: %v", err)
	}

	// Wire dependencies: repository → service → surfaces
	categoryRepo := category.NewRepository(pool)
	categorySvc := category.NewService(categoryRepo)

	imageRepo := image.NewRepository(pool)
	imageSvc := image.NewService(imageRepo, store, categorySvc, cfg.URLExpiry)

	webHandler := web.NewHandler(categorySvc, imageSvc)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	webHandler.Routes(r)

	// Discord bot
	var galleryBot *bot.Bot
	if cfg.BotToken == "" {
		log.Println("BOT_TOKEN not set, running web surface only")
	} else {
		galleryBot, err = bot.New(cfg.BotToken, cfg.GuildID, cfg.GalleryURL, categorySvc, imageSvc)
		if err != nil {
			log.Fatalf("bot init failed: %v", err)
		}
		if err := galleryBot.Start(); err != nil {
			log.Fatalf("bot start failed: %v", err)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on :%s (env=%s)", cfg.Port, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down gracefully...")

	if galleryBot != nil {
		if err := galleryBot.Stop(); err != nil {
			log.Printf("bot shutdown: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}
