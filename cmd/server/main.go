package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"ytgrab-server/internal/api"
	"ytgrab-server/internal/config"
	"ytgrab-server/internal/delivery"
	"ytgrab-server/internal/engine"
	"ytgrab-server/internal/jobs"
	"ytgrab-server/internal/search"
	"ytgrab-server/internal/server"
	"ytgrab-server/internal/store"

	"github.com/joho/godotenv"
	"github.com/lrstanley/go-ytdlp"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	// 1. Hazırlık: Dosya sistemi ve yt-dlp binary
	if err := server.PrepareFilesystem(cfg); err != nil {
		log.Fatalf(">>> ❌ Error preparing filesystem: %v", err)
	}
	ytdlp.MustInstall(context.Background(), nil)

	// 2. Servisler
	jobStore := store.New()
	eng := engine.NewClient(cfg.TempDir)
	runner := jobs.NewRunner(jobStore, eng)
	deliverySvc := delivery.NewService(jobStore, cfg.CleanupGrace)
	searchSvc := search.NewService(cfg.YouTubeAPIKey, eng)

	janitor := jobs.NewJanitor(cfg.TempDir, cfg.JanitorMaxAge)
	if err := janitor.Start(cfg.JanitorSweep); err != nil {
		log.Fatalf(">>> ❌ Error starting janitor: %v", err)
	}

	// 3. Router: Middleware dahil edilmiş haliyle
	handler := api.NewHandler(runner, jobStore, deliverySvc, eng, searchSvc)
	router := api.NewRouter(handler, cfg.AllowedOrigins)

	fmt.Println(">>> 🏭 YTGrab Server Started")
	fmt.Printf(">>> ⚡ Port: %s\n", cfg.Port)

	// 4. Start
	log.Fatal(http.ListenAndServe(cfg.Port, router))
}
