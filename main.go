package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"internauto/config"
	"internauto/controllers"
	"internauto/database"
	"internauto/middleware"
	"internauto/services"
)

// maxBodySize caps inbound request bodies at 10MB.
const maxBodySize = 10 << 20

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	cfg := config.GetAppConfig()
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := buildAppliedStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize applied store: %v", err)
	}

	generator := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)

	workflow := services.NewApplicationWorkflow(store, generator)
	workflow.MaxListings = cfg.MaxListings
	if s3, err := services.NewS3Service(); err == nil {
		workflow.Screenshots = s3
	} else {
		log.Printf("S3 not configured, confirmation screenshots stay local: %v", err)
	}

	runner := services.NewAutomationRunner(workflow, cfg.Headless)
	controller := controllers.NewApplicationController(runner, cfg.IsDevelopment())

	r := gin.Default()
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.MaxRequestSize(maxBodySize))

	applyLimiter := middleware.NewRateLimiter(5, config.RateLimitWindow)

	r.GET("/", func(c *gin.Context) {
		c.String(200, "internauto is running")
	})
	r.POST("/apply",
		applyLimiter.Limit(),
		middleware.ValidateContentType("application/json", "application/x-www-form-urlencoded"),
		controller.Apply,
	)

	log.Printf("Server running on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// buildAppliedStore picks Postgres when DATABASE_URL is set, otherwise
// the JSON file store.
func buildAppliedStore(cfg config.AppConfig) (services.AppliedStore, error) {
	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		log.Printf("Using database-backed applied store")
		return services.NewPostgresAppliedStore(db)
	}

	log.Printf("Using file-backed applied store: %s", cfg.AppliedFilePath)
	return services.NewFileAppliedStore(cfg.AppliedFilePath), nil
}
