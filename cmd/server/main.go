package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/codebuildervaibhav/film-generator/internal/cleanup"
	"github.com/codebuildervaibhav/film-generator/internal/handlers"
	"github.com/codebuildervaibhav/film-generator/internal/pipeline"
	"github.com/codebuildervaibhav/film-generator/internal/queue"
	"github.com/codebuildervaibhav/film-generator/internal/render"
	"github.com/codebuildervaibhav/film-generator/internal/storage"
	"github.com/codebuildervaibhav/film-generator/internal/types"
	"github.com/codebuildervaibhav/film-generator/internal/voice"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port int    `yaml:"port"`
		Host string `yaml:"host"`
	} `yaml:"server"`

	Workers struct {
		Count int `yaml:"count"`
	} `yaml:"workers"`

	Storage struct {
		Database string `yaml:"database"`
	} `yaml:"storage"`

	Render struct {
		Endpoint       string `yaml:"endpoint"`
		DemoMode       bool   `yaml:"demo_mode"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"render"`

	Voice struct {
		Endpoint       string `yaml:"endpoint"`
		Model          string `yaml:"model"`
		DemoMode       bool   `yaml:"demo_mode"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"voice"`

	Cleanup struct {
		IntervalMinutes int `yaml:"interval_minutes"`
		MaxAgeHours     int `yaml:"max_age_hours"`
	} `yaml:"cleanup"`

	Limits struct {
		MaxScreenplayKB int `yaml:"max_screenplay_kb"`
	} `yaml:"limits"`
}

func main() {
	// Environment overrides (API keys live here, never in the YAML)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found - using process environment")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	config, err := loadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Custom logger setup
	logBuffer := &LogBuffer{
		lines: make([]string, 0, 1000),
	}
	multiWriter := io.MultiWriter(os.Stdout, logBuffer)
	log.SetOutput(multiWriter)

	log.Println("Initializing components...")

	// Job store: SQLite when a database path is configured, otherwise
	// in-memory (jobs are lost on restart).
	var store storage.Store
	if config.Storage.Database != "" {
		if dir := filepath.Dir(config.Storage.Database); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				log.Fatalf("Failed to create database directory: %v", err)
			}
		}
		db, err := storage.NewJobDB(config.Storage.Database)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		store = db
	} else {
		log.Println("No database configured - keeping jobs in memory only")
		store = storage.NewMemoryStore()
	}
	defer store.Close()

	// External service clients
	synthesizer := voice.NewSynthesizer(
		config.Voice.Endpoint,
		os.Getenv("TTS_API_KEY"),
		config.Voice.Model,
		config.Voice.DemoMode,
		time.Duration(config.Voice.TimeoutSeconds)*time.Second,
	)
	engine := render.NewEngine(
		config.Render.Endpoint,
		os.Getenv("RENDER_API_TOKEN"),
		config.Render.DemoMode,
		time.Duration(config.Render.TimeoutSeconds)*time.Second,
	)

	// Pipeline and worker pool
	filmPipeline := pipeline.New(store, synthesizer, engine)
	workerPool := queue.NewWorkerPool(config.Workers.Count, filmPipeline, store)
	workerPool.Start()

	// Cleanup scheduler
	cleanupScheduler := cleanup.NewScheduler(
		store,
		config.Cleanup.IntervalMinutes,
		config.Cleanup.MaxAgeHours,
	)
	cleanupScheduler.Start()
	defer cleanupScheduler.Stop()

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Initialize handlers
	generateHandler := handlers.NewGenerateHandler(workerPool, store, config.Limits.MaxScreenplayKB)
	jobsHandler := handlers.NewJobsHandler(store)
	progressHandler := handlers.NewProgressHandler(store, time.Second)

	// Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	app.Get("/api/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Film Generator API",
			"status":  "operational",
			"features": fiber.Map{
				"demo_mode":        config.Render.DemoMode,
				"quality_settings": types.Qualities,
				"styles":           types.Styles,
			},
		})
	})

	app.Post("/api/generate-film", generateHandler.Handle)
	app.Get("/api/jobs", jobsHandler.List)
	app.Get("/api/job/:id", jobsHandler.Status)
	app.Get("/api/job/:id/scenes", jobsHandler.Scenes)
	app.Get("/api/job/:id/download/:scene_number", jobsHandler.Download)

	// WebSocket progress feed
	app.Get("/api/ws/job/:id", websocket.New(progressHandler.Handle))

	// Get server logs
	app.Get("/logs", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"logs": logBuffer.GetLogs(),
		})
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	log.Printf("Server starting on %s", addr)
	log.Println("Endpoints:")
	log.Println("   POST /api/generate-film             - Submit screenplay")
	log.Println("   GET  /api/jobs                      - List recent jobs")
	log.Println("   GET  /api/job/:id                   - Job status")
	log.Println("   GET  /api/job/:id/scenes            - Job scenes")
	log.Println("   GET  /api/job/:id/download/:scene   - Scene video redirect")
	log.Println("   GET  /api/ws/job/:id                - Progress websocket")
	log.Println("   GET  /logs                          - View server logs")
	log.Println("   GET  /health                        - Health check")

	// Graceful shutdown
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Println("Shutting down gracefully...")
		app.Shutdown()
	}()

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// LogBuffer captures logs in memory
type LogBuffer struct {
	lines []string
	mu    sync.Mutex
}

func (lb *LogBuffer) Write(p []byte) (n int, err error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	lb.lines = append(lb.lines, string(p))

	// Keep last 1000 lines
	if len(lb.lines) > 1000 {
		lb.lines = lb.lines[len(lb.lines)-1000:]
	}

	return len(p), nil
}

func (lb *LogBuffer) GetLogs() []string {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	logs := make([]string, len(lb.lines))
	copy(logs, lb.lines)
	return logs
}

// loadConfig loads configuration from YAML file, falling back to
// defaults when the file is absent.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	file, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("Config file %s not found - using defaults", path)
		return config, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(file, config); err != nil {
		return nil, err
	}
	return config, nil
}

func defaultConfig() *Config {
	config := &Config{}
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Workers.Count = 4
	config.Storage.Database = "data/jobs.db"
	config.Render.DemoMode = true
	config.Render.TimeoutSeconds = 120
	config.Voice.DemoMode = true
	config.Voice.Model = "tts-1"
	config.Voice.TimeoutSeconds = 60
	config.Cleanup.IntervalMinutes = 60
	config.Cleanup.MaxAgeHours = 72
	config.Limits.MaxScreenplayKB = 256
	return config
}
