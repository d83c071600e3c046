package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"agenthub/internal/handlers"
	"agenthub/internal/middleware"
	"agenthub/internal/repositories"
	"agenthub/internal/secrets"
	"agenthub/internal/services"
)

const version = "1.0.0"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Encryption configuration
	encryptionSecret := os.Getenv("ENCRYPTION_SECRET")
	if encryptionSecret == "" {
		encryptionSecret = secrets.DefaultSecret
		log.Printf("WARNING: ENCRYPTION_SECRET not set, using the development default")
	}
	cipher, err := secrets.NewCipher(encryptionSecret)
	if err != nil {
		log.Fatalf("Failed to initialize credential cipher: %v", err)
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	blobBucket := os.Getenv("DOCUMENTS_BUCKET")
	if blobBucket == "" {
		blobBucket = "documents"
	}

	blobSvc, err := services.NewBlobService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize blob storage service: %v", err)
	}
	if err := blobSvc.EnsureBucket(context.Background(), blobBucket); err != nil {
		log.Printf("WARNING: could not ensure bucket %q exists: %v", blobBucket, err)
	}

	// Create repositories
	tenantRepo := repositories.NewTenantRepository(pool)
	userRepo := repositories.NewUserRepository(pool)
	agentRepo := repositories.NewAgentRepository(pool)
	toolRepo := repositories.NewToolRepository(pool)
	conversationRepo := repositories.NewConversationRepository(pool)
	messageRepo := repositories.NewMessageRepository(pool)
	documentRepo := repositories.NewDocumentRepository(pool)

	// Create services
	tenantSvc := services.NewTenantService(tenantRepo)
	userSvc := services.NewUserService(userRepo)
	agentSvc := services.NewAgentService(agentRepo, conversationRepo)
	toolSvc := services.NewToolService(toolRepo, cipher)
	conversationSvc := services.NewConversationService(conversationRepo, messageRepo, agentRepo)
	documentSvc := services.NewDocumentService(documentRepo, blobSvc)

	// Create handlers
	tenantHandlers := handlers.NewTenantHandlers(tenantSvc)
	userHandlers := handlers.NewUserHandlers(userSvc)
	agentHandlers := handlers.NewAgentHandlers(agentSvc)
	toolHandlers := handlers.NewToolHandlers(toolSvc)
	conversationHandlers := handlers.NewConversationHandlers(conversationSvc)
	documentHandlers := handlers.NewDocumentHandlers(documentSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, blobSvc, blobBucket)

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no tenant header required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)

	// Tenant management routes are not tenant-scoped themselves
	e.POST("/tenants", tenantHandlers.CreateTenant)
	e.GET("/tenants", tenantHandlers.ListTenants)
	e.GET("/tenants/:id", tenantHandlers.GetTenant)
	e.PUT("/tenants/:id", tenantHandlers.UpdateTenant)
	e.DELETE("/tenants/:id", tenantHandlers.DeleteTenant)

	// All remaining routes require a resolved tenant
	scoped := e.Group("", middleware.TenantResolver(tenantRepo))

	scoped.POST("/users", userHandlers.CreateUser)
	scoped.GET("/users", userHandlers.ListUsers)
	scoped.GET("/users/:id", userHandlers.GetUser)
	scoped.PUT("/users/:id", userHandlers.UpdateUser)
	scoped.DELETE("/users/:id", userHandlers.DeleteUser)

	scoped.POST("/agents", agentHandlers.CreateAgent)
	scoped.GET("/agents", agentHandlers.ListAgents)
	scoped.GET("/agents/:id", agentHandlers.GetAgent)
	scoped.PUT("/agents/:id", agentHandlers.UpdateAgent)
	scoped.PATCH("/agents/:id/status", agentHandlers.UpdateAgentStatus)
	scoped.DELETE("/agents/:id", agentHandlers.DeleteAgent)

	scoped.POST("/tools", toolHandlers.CreateTool)
	scoped.GET("/tools", toolHandlers.ListTools)
	scoped.GET("/tools/:id", toolHandlers.GetTool)
	scoped.PUT("/tools/:id", toolHandlers.UpdateTool)
	scoped.DELETE("/tools/:id", toolHandlers.DeleteTool)
	scoped.POST("/tools/:id/test", toolHandlers.TestTool)

	scoped.POST("/conversations", conversationHandlers.CreateConversation)
	scoped.GET("/conversations", conversationHandlers.ListConversations)
	scoped.GET("/conversations/:id", conversationHandlers.GetConversation)
	scoped.PUT("/conversations/:id", conversationHandlers.UpdateConversation)
	scoped.DELETE("/conversations/:id", conversationHandlers.DeleteConversation)
	scoped.POST("/conversations/:id/messages", conversationHandlers.CreateMessage)
	scoped.GET("/conversations/:id/messages", conversationHandlers.ListMessages)

	scoped.POST("/documents", documentHandlers.CreateDocument)
	scoped.GET("/documents", documentHandlers.ListDocuments)
	scoped.GET("/documents/:id", documentHandlers.GetDocument)
	scoped.PUT("/documents/:id", documentHandlers.UpdateDocument)
	scoped.DELETE("/documents/:id", documentHandlers.DeleteDocument)
	scoped.GET("/documents/:id/download", documentHandlers.DownloadDocument)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("AgentHub server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
