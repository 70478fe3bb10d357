package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"crm_manager/internal/auth"
	"crm_manager/internal/blobstore"
	"crm_manager/internal/cache"
	"crm_manager/internal/config"
	"crm_manager/internal/handlers"
	"crm_manager/internal/services"
	"crm_manager/internal/store"
	"crm_manager/pkg/onsend"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize persistence and the connection-state cache
	blobs, stateCache := initStorage(cfg)

	// Initialize entity stores (each loads its snapshot)
	customerStore, err := store.NewCustomerStore(blobs)
	if err != nil {
		log.Fatal("Failed to load customer store:", err)
	}
	productStore, err := store.NewProductStore(blobs)
	if err != nil {
		log.Fatal("Failed to load product store:", err)
	}
	prospectStore, err := store.NewProspectStore(blobs)
	if err != nil {
		log.Fatal("Failed to load prospect store:", err)
	}
	salesStore, err := store.NewSalesStore(blobs)
	if err != nil {
		log.Fatal("Failed to load sales store:", err)
	}
	marketingStore, err := store.NewMarketingStore(blobs)
	if err != nil {
		log.Fatal("Failed to load marketing store:", err)
	}
	blogStore, err := store.NewBlogStore(blobs)
	if err != nil {
		log.Fatal("Failed to load blog store:", err)
	}
	whatsappStore, err := store.NewWhatsAppStore(blobs)
	if err != nil {
		log.Fatal("Failed to load whatsapp store:", err)
	}
	settingsStore, err := store.NewSettingsStore(blobs)
	if err != nil {
		log.Fatal("Failed to load settings store:", err)
	}

	// Initialize vendor client and services
	onsendClient := onsend.NewClient(cfg.OnSendAPIURL, cfg.OnSendAPIKey, cfg.OnSendInstance)
	outreachService := services.NewOutreachService(
		onsendClient,
		customerStore,
		prospectStore,
		whatsappStore,
		settingsStore,
		stateCache,
		time.Duration(cfg.ConnStateTTL)*time.Second,
	)
	importService := services.NewImportService(customerStore, prospectStore)

	// Initialize auth
	authenticator := auth.NewAuthenticator(
		cfg.AdminUsername,
		cfg.AdminPassword,
		cfg.JWTSecret,
		time.Duration(cfg.SessionTimeout)*time.Second,
	)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authenticator)
	crmHandler := handlers.NewCRMHandler(customerStore, productStore, prospectStore)
	salesHandler := handlers.NewSalesHandler(salesStore, customerStore, productStore)
	contentHandler := handlers.NewContentHandler(marketingStore, blogStore)
	whatsappHandler := handlers.NewWhatsAppHandler(whatsappStore, outreachService)
	importHandler := handlers.NewImportHandler(importService)

	// Setup routes
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.POST("/api/auth/login", authHandler.Login)

	// Public blog view
	router.GET("/blog", contentHandler.ListPosts)
	router.GET("/blog/:id", contentHandler.GetPost)
	router.POST("/blog/:id/views", contentHandler.IncrementViews)
	router.POST("/blog/:id/like", contentHandler.LikePost)

	api := router.Group("/api")
	api.Use(auth.Middleware(authenticator))
	{
		api.GET("/customers", crmHandler.ListCustomers)
		api.GET("/customers/by-date", crmHandler.CustomersByDate)
		api.GET("/customers/:id", crmHandler.GetCustomer)
		api.POST("/customers", crmHandler.CreateCustomer)
		api.PUT("/customers/:id", crmHandler.UpdateCustomer)
		api.DELETE("/customers/:id", crmHandler.DeleteCustomer)
		api.POST("/customers/:id/orders", crmHandler.AddOrder)

		api.GET("/products", crmHandler.ListProducts)
		api.GET("/products/:id", crmHandler.GetProduct)
		api.POST("/products", crmHandler.CreateProduct)
		api.PUT("/products/:id", crmHandler.UpdateProduct)
		api.DELETE("/products/:id", crmHandler.DeleteProduct)

		api.GET("/prospects", crmHandler.ListProspects)
		api.POST("/prospects", crmHandler.CreateProspect)
		api.PUT("/prospects/:id", crmHandler.UpdateProspect)
		api.DELETE("/prospects/:id", crmHandler.DeleteProspect)

		api.GET("/sales", salesHandler.GetSales)
		api.PUT("/sales/:year", salesHandler.UpsertYear)
		api.GET("/sales/trend", salesHandler.Trend)
		api.GET("/metrics/daily", salesHandler.DailyMetrics)
		api.GET("/metrics/monthly", salesHandler.MonthlyMetrics)
		api.GET("/metrics/window", salesHandler.WindowMetrics)

		api.GET("/marketing", contentHandler.ListMarketing)
		api.POST("/marketing/:date/contents", contentHandler.AddContent)
		api.PUT("/marketing/:date/contents/:content_id", contentHandler.EditContent)
		api.PUT("/marketing/:date/contents/:content_id/status", contentHandler.SetContentStatus)
		api.DELETE("/marketing/:date/contents/:content_id", contentHandler.DeleteContent)

		api.GET("/blog", contentHandler.ListPosts)
		api.POST("/blog", contentHandler.CreatePost)
		api.PUT("/blog/:id", contentHandler.UpdatePost)
		api.DELETE("/blog/:id", contentHandler.DeletePost)

		api.GET("/whatsapp/messages", whatsappHandler.ListMessages)
		api.POST("/whatsapp/messages", whatsappHandler.CreateMessage)
		api.PUT("/whatsapp/messages/:id", whatsappHandler.UpdateMessage)
		api.DELETE("/whatsapp/messages/:id", whatsappHandler.DeleteMessage)

		api.GET("/whatsapp/campaigns", whatsappHandler.ListCampaigns)
		api.POST("/whatsapp/campaigns", whatsappHandler.CreateCampaign)
		api.PUT("/whatsapp/campaigns/:id", whatsappHandler.UpdateCampaign)
		api.DELETE("/whatsapp/campaigns/:id", whatsappHandler.DeleteCampaign)

		api.GET("/whatsapp/flows", whatsappHandler.ListFlows)
		api.POST("/whatsapp/flows", whatsappHandler.CreateFlow)
		api.PUT("/whatsapp/flows/:id", whatsappHandler.UpdateFlow)
		api.DELETE("/whatsapp/flows/:id", whatsappHandler.DeleteFlow)

		api.GET("/whatsapp/status", whatsappHandler.ConnectionStatus)
		api.POST("/whatsapp/test-connection", whatsappHandler.TestConnection)
		api.GET("/whatsapp/credentials", whatsappHandler.GetCredentials)
		api.PUT("/whatsapp/credentials", whatsappHandler.UpdateCredentials)
		api.GET("/whatsapp/recipients", whatsappHandler.ListRecipients)
		api.POST("/whatsapp/blast", whatsappHandler.Blast)
		api.POST("/whatsapp/sequences", whatsappHandler.CreateSequence)

		api.POST("/import/customers", importHandler.ImportCustomers)
		api.POST("/import/prospects", importHandler.ImportProspects)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func initStorage(cfg *config.Config) (blobstore.Store, services.StateCache) {
	switch cfg.StorageBackend {
	case "redis":
		redisStore, err := blobstore.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		return redisStore, cache.NewRedisStateCache(redisStore.Redis())
	case "postgres":
		pgStore, err := blobstore.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		return pgStore, services.NewMemoryStateCache()
	case "memory":
		log.Println("Warning: using in-memory storage, data will not survive restarts")
		return blobstore.NewMemoryStore(), services.NewMemoryStateCache()
	default:
		log.Fatalf("Unknown storage backend %q", cfg.StorageBackend)
		return nil, nil
	}
}
