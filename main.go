package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/shikinora2/VietQR-HDSAISON-sub000/client"
	"github.com/shikinora2/VietQR-HDSAISON-sub000/config"
	"github.com/shikinora2/VietQR-HDSAISON-sub000/handler"
	"github.com/shikinora2/VietQR-HDSAISON-sub000/service"
	"github.com/shikinora2/VietQR-HDSAISON-sub000/utils"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// Initialize configuration
	cfg := config.LoadConfig()

	httpClient := &http.Client{Timeout: cfg.FetchTimeout}

	builder := utils.QRBuilder{
		BankCode:      cfg.BankCode,
		AccountNumber: cfg.AccountNumber,
		AccountName:   cfg.AccountName,
	}

	// Initialize clients
	vietQRClient := client.NewVietQRClient(httpClient, builder, cfg.QRTemplates)
	assetClient := client.NewAssetClient(httpClient, cfg.FontURL, cfg.TemplateURLs, cfg.DefaultPOSID)

	// Initialize service layer
	pdfProcessor := service.NewPDFProcessor()
	assembler := service.NewAssembler()
	pdkRenderer := service.NewPdkRenderer(assetClient)
	store := service.NewFileSetStore()
	contractService := service.NewContractService(
		pdfProcessor,
		assembler,
		pdkRenderer,
		vietQRClient,
		store,
		cfg.MaxFileSize,
		cfg.DefaultPOSID,
	)

	// Initialize handler layer
	contractHandler := handler.NewContractHandler(contractService)
	qrHandler := handler.NewQRHandler(builder, cfg.QRTemplates)

	// Setup Gin router
	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxFileSize

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "VietQR Contract Processing",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		contracts := api.Group("/contracts")
		{
			contracts.POST("/process", contractHandler.Process)
			contracts.GET("/:id", contractHandler.Get)
			contracts.GET("/:id/files/:key", contractHandler.DownloadFile)
			contracts.POST("/:id/print", contractHandler.Print)
			contracts.POST("/:id/pdk", contractHandler.RegeneratePdk)
		}
		qr := api.Group("/qr")
		{
			qr.GET("/url", qrHandler.BuildURL)
		}
	}

	// Configure CORS for the browser front-end
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
	})

	// Start server
	log.Printf("Starting VietQR Contract Processing Service on port %s", cfg.ServerPort)
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: c.Handler(router),
	}
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
