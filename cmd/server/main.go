package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/weatherwidget/backend/internal/delivery/http"
	"github.com/weatherwidget/backend/internal/domain"
	"github.com/weatherwidget/backend/internal/repository/postgres"
	"github.com/weatherwidget/backend/internal/repository/sqlite"
	"github.com/weatherwidget/backend/internal/service"
	"github.com/weatherwidget/backend/internal/widget"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg := loadConfig()

	repo, closeRepo := openRepository(cfg)
	defer closeRepo()

	// Dependency Injection: Services
	var fetcher service.Fetcher
	if cfg.OpenWeatherAPIKey != "" {
		fetcher = service.NewWeatherService(cfg.OpenWeatherAPIKey, cfg.OpenWeatherURL, cfg.LookupTimeout)
	} else {
		log.Println("OPENWEATHER_API_KEY not set, serving mock weather")
		fetcher = service.NewMockWeatherService()
	}
	lookupSvc := service.NewLookupService(fetcher, repo)

	sessions := widget.NewSessions(func(id string) *widget.Controller {
		return widget.NewController(func(ctx context.Context, query string) domain.LookupResult {
			return lookupSvc.LookupFor(ctx, id, query)
		}, widget.TimerScheduler{}, cfg.RevealSettle)
	}, cfg.SessionTTL, cfg.SessionCapacity)

	// Fiber App
	appCfg := http.NewConfig()
	appCfg.AppName = "Weather Widget v1.0"
	appCfg.ReadTimeout = 10 * time.Second
	appCfg.WriteTimeout = 20 * time.Second
	app := fiber.New(appCfg)

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use("/api", cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,PUT,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Static assets
	app.Static("/static", cfg.StaticDir)

	// Routes
	http.SetupRoutes(app, lookupSvc, sessions, widget.Assets{Base: cfg.AssetBase})

	sweepDone := make(chan struct{})
	go sweepSessions(sessions, sweepDone)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s (%s)", cfg.Port, cfg.Env)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	close(sweepDone)
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	lookupSvc.WaitBackground()
	log.Println("Server exited gracefully")
}

type Config struct {
	DatabaseURL       string
	SQLitePath        string
	OpenWeatherAPIKey string
	OpenWeatherURL    string
	StaticDir         string
	AssetBase         string
	CORSOrigins       string
	RevealSettle      time.Duration
	LookupTimeout     time.Duration
	SessionTTL        time.Duration
	SessionCapacity   int
	Port              string
	Env               string
}

func loadConfig() *Config {
	return &Config{
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		SQLitePath:        getEnv("SQLITE_PATH", ""),
		OpenWeatherAPIKey: getEnv("OPENWEATHER_API_KEY", ""),
		OpenWeatherURL:    getEnv("OPENWEATHER_BASE_URL", service.DefaultWeatherURL),
		StaticDir:         getEnv("STATIC_DIR", "./static"),
		AssetBase:         getEnv("ASSET_BASE", "/static/image"),
		CORSOrigins:       getEnv("CORS_ORIGINS", "*"),
		RevealSettle:      time.Duration(getEnvInt("REVEAL_SETTLE_MS", 100)) * time.Millisecond,
		LookupTimeout:     time.Duration(getEnvInt("LOOKUP_TIMEOUT_SEC", 10)) * time.Second,
		SessionTTL:        time.Duration(getEnvInt("SESSION_TTL_MIN", 30)) * time.Minute,
		SessionCapacity:   getEnvInt("SESSION_CAPACITY", widget.DefaultSessionCapacity),
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("GO_ENV", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid %s=%q, using %d", key, value, defaultValue)
	}
	return defaultValue
}

// openRepository prefers Postgres, then SQLite, then the in-memory mock
func openRepository(cfg *Config) (domain.LookupRepository, func()) {
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err == nil {
			err = pool.Ping(ctx)
		}
		if err != nil {
			log.Printf("Warning: Could not connect to database: %v", err)
			if pool != nil {
				pool.Close()
			}
		} else {
			repo := postgres.NewPostgresRepository(pool)
			if err := repo.Migrate(ctx); err != nil {
				log.Printf("Warning: %v", err)
			}
			log.Println("Connected to PostgreSQL")
			return repo, pool.Close
		}
	}

	if cfg.SQLitePath != "" {
		repo, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			log.Printf("Warning: %v", err)
		} else {
			log.Printf("Using SQLite store at %s", cfg.SQLitePath)
			return repo, func() {
				if err := repo.Close(); err != nil {
					log.Printf("Warning: error closing store: %v", err)
				}
			}
		}
	}

	log.Println("Running with in-memory lookup history only")
	return postgres.NewMockRepository(), func() {}
}

func sweepSessions(sessions *widget.Sessions, done <-chan struct{}) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := sessions.Sweep(); n > 0 {
				log.Printf("Expired %d idle widget sessions", n)
			}
		case <-done:
			return
		}
	}
}
