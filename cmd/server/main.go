package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cradlewatch/cradlewatch/internal/ai"
	"github.com/cradlewatch/cradlewatch/internal/api"
	"github.com/cradlewatch/cradlewatch/internal/auth"
	"github.com/cradlewatch/cradlewatch/internal/cache"
	"github.com/cradlewatch/cradlewatch/internal/config"
	"github.com/cradlewatch/cradlewatch/internal/repository/postgres"
	"github.com/cradlewatch/cradlewatch/internal/service/action"
	"github.com/cradlewatch/cradlewatch/internal/service/event"
	"github.com/cradlewatch/cradlewatch/internal/service/infant"
	"github.com/cradlewatch/cradlewatch/internal/service/notify"
	"github.com/cradlewatch/cradlewatch/internal/service/report"
	"github.com/cradlewatch/cradlewatch/internal/sms"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"
)

// checkPortAvailable verifies that the target port is not already in use.
// This prevents confusion from stale processes occupying the port.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v", port, addr, err)
	}
	ln.Close()
	return nil
}

func extractHost(dsn string) string {
	at := strings.Index(dsn, "@")
	if at < 0 {
		return "(unknown)"
	}
	rest := dsn[at+1:]
	slash := strings.Index(rest, "/")
	if slash >= 0 {
		rest = rest[:slash]
	}
	return rest
}

func main() {
	log.Println("CradleWatch API server starting")

	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("DATABASE_URL") != "" {
		log.Println("[config] DATABASE_URL env override active")
	}

	// Pre-flight check: verify the target port is available
	host := cfg.Server.GetHost()
	port := cfg.Server.Port
	if err := checkPortAvailable(host, port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}

	log.Printf("DB URL host portion: ...@%s/...", extractHost(cfg.Database.URL))
	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Minute)

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		pingCancel()
		log.Fatalf("Database ping failed: %v", err)
	}
	pingCancel()
	log.Println("Database connected")

	// Redis is optional: without it report caching and callback
	// deduplication are disabled, everything else still works.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Printf("Warning: Redis connection failed (%s): %v, caching disabled", cfg.Redis.Addr, err)
			redisClient.Close()
			redisClient = nil
		} else {
			log.Printf("Redis connected: %s", cfg.Redis.Addr)
		}
		pingCancel()
	} else {
		log.Println("Redis not configured, report caching and callback dedup disabled")
	}

	// The AI client is always constructed; without an API key its calls
	// fail and callers fall back to canned Korean text where one exists.
	aiClient := ai.NewClient(cfg.OpenAI)
	if !cfg.OpenAI.Enabled {
		log.Println("Warning: OpenAI not configured, narrated reports unavailable, SMS uses fallback text")
	}

	// Repositories
	guardianRepo := postgres.NewGuardianRepo(db)
	infantRepo := postgres.NewInfantRepo(db)
	eventRepo := postgres.NewEventRepo(db)
	actionRepo := postgres.NewActionRepo(db)
	notificationRepo := postgres.NewNotificationRepo(db)
	reportRepo := postgres.NewReportRepo(db)

	// Services
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	authSvc := auth.NewService(guardianRepo, tokens, cfg.Auth.BcryptCost)
	infantSvc := infant.NewService(infantRepo)
	eventSvc := event.NewService(eventRepo)

	var embedder action.Embedder
	if cfg.OpenAI.Enabled {
		embedder = aiClient
	}
	actionSvc := action.NewService(actionRepo, embedder)

	var reportCache report.Cache
	var dedup *cache.Dedup
	if redisClient != nil {
		reportCache = cache.NewReportCache(redisClient, cfg.Report.CacheTTL())
		dedup = cache.NewDedup(redisClient, 10*time.Minute)
	}
	reportSvc := report.NewService(reportRepo, reportRepo, aiClient, reportCache)

	var sender notify.Sender
	if cfg.SMS.Enabled {
		sender = sms.NewClient(cfg.SMS)
	} else {
		log.Println("Warning: SMS not configured, notifications will be logged but not sent")
	}
	dispatcher := notify.NewDispatcher(guardianRepo, notificationRepo, actionSvc, aiClient, sender, cfg.Suggest.MinTrials)

	health := api.NewHealthChecker(db, redisClient)
	handlers := api.NewHandlers(reportSvc, actionSvc, eventSvc, infantSvc, authSvc, dispatcher, aiClient, dedup, health, cfg.Report.DefaultDays)

	server := api.NewServer(cfg, handlers, tokens)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s:%d", host, port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	if redisClient != nil {
		redisClient.Close()
	}
	db.Close()
	log.Println("Server stopped")
}
