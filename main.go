package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"proforma-tool/config"
	httpLayer "proforma-tool/http"
	"proforma-tool/repository"
	"proforma-tool/service"
)

func main() {
	cfg := config.Load()

	var scenarioRepo repository.ScenarioRepository
	if cfg.Offline {
		log.Println("Offline mode: scenarios are kept in memory")
		scenarioRepo = repository.NewScenarioRepositoryMemory()
	} else {
		scenarioRepo = repository.NewScenarioRepositoryHTTP(cfg.APIBase, nil)
	}

	var cache repository.CacheRepository = repository.NewMemoryCache()
	if cfg.RedisAddr != "" {
		redisCache := repository.NewRedisCache(cfg.RedisAddr)
		if err := redisCache.Ping(); err != nil {
			log.Printf("Warning: redis unavailable at %s, keeping exports in memory: %v", cfg.RedisAddr, err)
		} else {
			defer redisCache.Close()
			cache = redisCache
		}
	}

	// cancelled on shutdown; in-flight scenario calls are not waited for
	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	alerts := service.NewAlertQueue()
	session := service.NewProFormaSession(scenarioRepo, service.NewExporter(cfg.ExportFormat), alerts)
	session.StartAsync(appCtx)

	downloads := service.NewDownloadService(cache, cfg.ExportTTL)
	sessionHandler := httpLayer.NewSessionHandler(appCtx, session, alerts, downloads)

	rateLimiter := httpLayer.NewRateLimiter(cfg.ExportRatePerMinute, time.Minute)
	defer rateLimiter.Stop()

	mux := http.NewServeMux()
	sessionHandler.Register(mux, rateLimiter)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Pro forma tool running on http://localhost:%s (scenario store: %s)", cfg.Port, cfg.APIBase)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
		return
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
}
