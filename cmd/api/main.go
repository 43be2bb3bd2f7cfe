package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/vaaler2/hirewise-backend/internal/config"
	"github.com/vaaler2/hirewise-backend/internal/handlers"
	"github.com/vaaler2/hirewise-backend/internal/repositories"
	"github.com/vaaler2/hirewise-backend/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize store
	var linkRepo repositories.LinkRepository
	var appRepo repositories.ApplicationRepository

	switch cfg.Database.Driver {
	case "memory":
		store := repositories.NewMemoryStore()
		linkRepo = store
		appRepo = store
		log.Println("✅ In-memory store initialized")
	default:
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}
		linkRepo = repositories.NewLinkRepository(db)
		appRepo = repositories.NewApplicationRepository(db)
		log.Println("✅ Repositories initialized successfully")
	}

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI. A missing credential is fine: evaluation
	// falls back to the local heuristic scorer.
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	if geminiService.Configured() {
		log.Println("✅ Gemini AI initialized successfully")
	} else {
		log.Println("⚠️ Gemini AI not configured, heuristic scoring only")
	}

	// Initialize evaluator
	evaluatorService := services.NewEvaluatorService(
		appRepo,
		geminiService,
		pdfParser,
		cfg.Evaluator.Timeout,
		cfg.Evaluator.MaxRetries,
	)
	log.Println("✅ Evaluator service initialized")

	// Initialize report mailer
	reportService := services.NewReportService(
		linkRepo,
		appRepo,
		cfg.Report.SMTPHost,
		cfg.Report.SMTPPort,
		cfg.Report.SMTPUser,
		cfg.Report.SMTPPassword,
		cfg.Report.FromEmail,
	)

	// Initialize Handlers
	linkHandler := handlers.NewLinkHandler(linkRepo, cfg.Server.BaseURL, cfg.Link.TTL)
	submitHandler := handlers.NewSubmitHandler(
		linkRepo,
		appRepo,
		storageService,
		cfg.Storage.MaxFileSize,
	)
	applicationsHandler := handlers.NewApplicationsHandler(linkRepo, evaluatorService)
	reportHandler := handlers.NewReportHandler(reportService, cfg.Report.CronSecret)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "HireWise API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	// API endpoints
	app.Post("/generate-link", linkHandler.HandleGenerateLink)
	app.Post("/submit-form/:link_id", submitHandler.HandleSubmitForm)
	app.Get("/applications/:link_id", applicationsHandler.HandleGetApplications)
	app.Post("/internal/weekly-report", reportHandler.HandleWeeklyReport)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
