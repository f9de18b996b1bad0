package main

import (
	"context"

	"quotation-backend/config"
	"quotation-backend/middleware"
	"quotation-backend/utils"

	// Repositories
	client_repositories "quotation-backend/clients/repositories"
	quotation_repositories "quotation-backend/quotations/repositories"

	// Services
	client_services "quotation-backend/clients/services"
	quotation_services "quotation-backend/quotations/services"
	"quotation-backend/quotations/tasks"

	// Controllers and routes
	client_controllers "quotation-backend/clients/controllers"
	client_routes "quotation-backend/clients/routes"
	quotation_controllers "quotation-backend/quotations/controllers"
	quotation_routes "quotation-backend/quotations/routes"

	// bleve
	bleveControllers "quotation-backend/bleve/controllers"
	bleveRepositories "quotation-backend/bleve/repositories"
	bleveRoutes "quotation-backend/bleve/routes"
	bleveServices "quotation-backend/bleve/services"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Initialize Zap logger
	config.InitLogger()

	// Load environment variables
	if err := godotenv.Load(".env"); err != nil {
		config.Logger.Warn("No .env file loaded, relying on process environment", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName: "quotation-backend",
	})

	// Apply CORS middleware from middleware package
	middleware.InitCors(app)

	// Initialize database and configs
	db := config.ConfigureDatabase()
	appConfig := config.LoadAppConfig()
	port := config.GetEnvOrDefault("PORT", "8080")
	ctx := context.Background()

	// Redis client for caching plus Asynq for deferred email delivery.
	// Note: asynq.RedisClientOpt uses its own Redis client internally.
	redisAddr := config.GetEnvOrDefault("REDIS_ADDRESS", "localhost:6379")
	redisClient := config.InitRedisServer(ctx)

	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: "",
		DB:       0,
	}
	asynqClient := asynq.NewClient(asynqRedisOpt)
	defer asynqClient.Close()

	indexPath := config.GetEnvOrDefault("BLEVE_INDEX_PATH", "./bleve_data")

	// Initialize the mailer
	utils.InitializeMailer()
	mailer := utils.GetMailer()
	if mailer == nil {
		config.Logger.Fatal("Mailer not initialized")
	}

	// Serve generated documents for download links
	app.Static("/generated", appConfig.OutputDir)

	// Repositories
	bleveIndexingService := bleveServices.NewIndexingService(config.Logger, indexPath)
	bleveServiceRepo, bleveInterfaceRepo := bleveRepositories.NewBleveRepository(bleveIndexingService)
	quotationRepo := quotation_repositories.NewQuotationRepository(db)
	clientRepo := client_repositories.NewClientRepository(db)

	// Services
	auditService := quotation_services.NewAuditService(quotationRepo)
	clientAuditService := client_services.NewClientAuditService(clientRepo)
	templateService := quotation_services.NewTemplateService(appConfig)
	pdfGenerator := quotation_services.NewPdfGenerator(appConfig)
	emailService := quotation_services.NewEmailService(mailer, appConfig)
	exportService := quotation_services.NewExportService(appConfig)

	// Controllers
	quotationController := &quotation_controllers.QuotationController{
		QuotationRepo: quotationRepo,
		ClientRepo:    clientRepo,
		BleveRepo:     bleveInterfaceRepo,
		Audit:         auditService,
		Template:      templateService,
		Pdf:           pdfGenerator,
		Email:         emailService,
		Export:        exportService,
		AsynqClient:   asynqClient,
		Cfg:           appConfig,
	}
	clientController := client_controllers.NewClientController(clientRepo, bleveInterfaceRepo, clientAuditService)

	// Routes
	quotation_routes.InitQuotationRoutes(app, quotationController)
	client_routes.InitClientRoutes(app, clientController)

	// Bleve Routes
	bleveController := bleveControllers.NewSearchController(bleveServiceRepo)
	bleveRoutes.InitBleveRoutes(app, bleveController)

	// Asynq worker for deferred quotation emails
	emailTaskHandler := tasks.NewEmailTaskHandler(quotationRepo, emailService, auditService)
	asynqServer := asynq.NewServer(asynqRedisOpt, asynq.Config{Concurrency: 5})
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeQuotationEmail, emailTaskHandler.HandleQuotationEmail)
	go func() {
		if err := asynqServer.Run(mux); err != nil {
			config.Logger.Error("Asynq worker stopped", zap.Error(err))
		}
	}()

	// Background cleanup of generated artifacts
	utils.RunScheduledCleanup(appConfig, redisClient)

	// Start the application
	config.Logger.Info("Server starting", zap.String("port", port))
	config.Logger.Fatal("Server failed", zap.String("port", port), zap.Error(app.Listen(":"+port)))
}
