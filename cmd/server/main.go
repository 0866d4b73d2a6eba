package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/TwentyOOO/audiodub-magic/internal/api"
	"github.com/TwentyOOO/audiodub-magic/internal/config"
	"github.com/TwentyOOO/audiodub-magic/internal/notify"
	"github.com/TwentyOOO/audiodub-magic/internal/pipeline"
	"github.com/TwentyOOO/audiodub-magic/internal/repository"
	"github.com/TwentyOOO/audiodub-magic/internal/storage"
	"github.com/TwentyOOO/audiodub-magic/internal/stt"
	"github.com/TwentyOOO/audiodub-magic/internal/translate"
	"github.com/TwentyOOO/audiodub-magic/internal/tts"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode (default to release mode)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	var repo repository.ProjectRepository
	if cfg.DatabaseURL != "" {
		log.Printf("Connecting to PostgreSQL...")
		repo, err = repository.NewPostgresRepository(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		log.Println("Database repository initialized")
	} else {
		log.Println("DATABASE_URL not set, running with in-memory storage only")
		repo = repository.NewMemoryRepository()
	}

	sttClient := stt.NewAssemblyAIClient(cfg.AssemblyAIKey, cfg.AssemblyAIBaseURL)
	translator := translate.NewOpenAITranslator(cfg.OpenAIKey)
	synthesizer := tts.NewElevenLabsClient(cfg.ElevenLabsKey, cfg.ElevenLabsBaseURL)
	store := storage.NewDiskStore(cfg.DeliverableDir, cfg.DeliverableBaseURL)

	notifier := notify.NewNotifier()
	pipe := pipeline.New(repo, sttClient, translator, synthesizer, store, notifier)

	r := gin.Default()
	r.Use(corsMiddleware())
	r.Static(cfg.DeliverableBaseURL, cfg.DeliverableDir)

	handler := api.NewHandler(repo, pipe, notifier)
	handler.RegisterRoutes(r)

	log.Printf("Dubbing backend running on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// corsMiddleware adds CORS headers for the web client
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
