package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"event-crm/internal/config"
	"event-crm/internal/handler"
	"event-crm/internal/repository"
	"event-crm/internal/services"
	"event-crm/internal/utils"
)

func main() {
	baseCtx := context.Background()
	ctx, shutdownManager := utils.NewShutdownManager(baseCtx)
	shutdownManager.StartListening()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// MongoDB
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	db := mongoClient.Database(cfg.Mongo.Database)

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Closing MongoDB connection...")
		return mongoClient.Disconnect(ctx)
	})

	if err := repository.EnsureInquiryIndexes(ctx, db); err != nil {
		log.Fatal("Failed to create inquiry indexes:", err)
	}
	if err := repository.EnsureUserIndexes(ctx, db); err != nil {
		log.Fatal("Failed to create user indexes:", err)
	}

	// Redis
	redisClient, err := utils.NewRedisClient(cfg.Redis.URL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Closing Redis connection...")
		return redisClient.Close()
	})

	// MinIO
	minioClient, err := utils.NewMinioClient(
		cfg.Minio.Endpoint,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.Bucket,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		log.Fatal("Failed to connect to MinIO:", err)
	}

	mailer := services.NewSMTPMailer(cfg.SMTP)
	if !mailer.Enabled() {
		log.Println("SMTP is not configured; email notifications are disabled")
	}

	// Repositories
	inquiryRepo := repository.NewInquiryRepository(db)
	clientRepo := repository.NewClientRepository(db)
	eventRepo := repository.NewEventRepository(db)
	userRepo := repository.NewUserRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	galleryRepo := repository.NewGalleryRepository(db)
	aboutRepo := repository.NewAboutItemRepository(db)
	testimonialRepo := repository.NewTestimonialRepository(db)

	// Services
	jwtUtil := utils.NewJWTUtil(cfg.Auth.JWTSecret, cfg.Auth.JWTRefreshSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	authService := services.NewAuthService(userRepo, jwtUtil, redisClient, cfg.Auth)
	userService := services.NewUserService(userRepo, mailer)
	inquiryService := services.NewInquiryService(inquiryRepo, redisClient, mailer)
	conversionService := services.NewConversionService(inquiryRepo, clientRepo, eventRepo)
	dashboardService := services.NewDashboardService(inquiryRepo, redisClient)
	catalogService := services.NewCatalogService(serviceRepo, redisClient)
	galleryService := services.NewGalleryService(galleryRepo, redisClient)
	aboutService := services.NewAboutService(aboutRepo, redisClient)
	testimonialService := services.NewTestimonialService(testimonialRepo, redisClient)
	mediaService := services.NewMediaService(minioClient, cfg.Minio.Bucket, cfg.Minio.PublicURL)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	inquiryHandler := handler.NewInquiryHandler(inquiryService, conversionService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	serviceHandler := handler.NewServiceHandler(catalogService)
	galleryHandler := handler.NewGalleryHandler(galleryService)
	aboutHandler := handler.NewAboutHandler(aboutService)
	testimonialHandler := handler.NewTestimonialHandler(testimonialService)
	mediaHandler := handler.NewMediaHandler(mediaService)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := utils.RequireAuth(jwtUtil, authService, redisClient)
	optionalAuth := utils.OptionalAuth(jwtUtil, authService, redisClient)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", authHandler.Logout)

			me := auth.Group("/")
			me.Use(requireAuth)
			{
				me.GET("/profile", authHandler.Profile)
				me.PUT("/profile", authHandler.UpdateProfile)
				me.PUT("/change-password", authHandler.ChangePassword)
			}
		}

		// Public site surface: active content and the intake form. The
		// list routes resolve a principal when a token is present so
		// authenticated staff can request inactive entries too.
		api.GET("/services", optionalAuth, serviceHandler.List)
		api.GET("/services/categories", serviceHandler.Categories)
		api.GET("/gallery", optionalAuth, galleryHandler.List)
		api.GET("/about", optionalAuth, aboutHandler.List)
		api.GET("/about/categories", aboutHandler.Categories)
		api.GET("/testimonials", optionalAuth, testimonialHandler.List)
		api.POST("/inquiries", optionalAuth, inquiryHandler.Create)

		protected := api.Group("/")
		protected.Use(requireAuth)
		{
			inquiries := protected.Group("/inquiries")
			{
				inquiries.GET("", inquiryHandler.List)
				inquiries.GET("/stats", inquiryHandler.Stats)
				inquiries.GET("/:id", inquiryHandler.Get)
				inquiries.PUT("/:id", inquiryHandler.Update)
				inquiries.DELETE("/:id", inquiryHandler.Delete)
				inquiries.POST("/:id/communications", inquiryHandler.AddCommunication)
				inquiries.PUT("/:id/lost", inquiryHandler.MarkAsLost)
				inquiries.POST("/:id/convert", inquiryHandler.Convert)
			}

			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("/stats", dashboardHandler.Stats)
				dashboard.GET("/recent", dashboardHandler.Recent)
			}

			servicesGroup := protected.Group("/services")
			{
				servicesGroup.POST("", serviceHandler.Create)
				servicesGroup.PUT("/reorder", serviceHandler.Reorder)
				servicesGroup.GET("/:id", serviceHandler.Get)
				servicesGroup.PUT("/:id", serviceHandler.Update)
				servicesGroup.DELETE("/:id", serviceHandler.Delete)
			}

			gallery := protected.Group("/gallery")
			{
				gallery.POST("", galleryHandler.Create)
				gallery.PUT("/reorder", galleryHandler.Reorder)
				gallery.GET("/:id", galleryHandler.Get)
				gallery.PUT("/:id", galleryHandler.Update)
				gallery.DELETE("/:id", galleryHandler.Delete)
			}

			about := protected.Group("/about")
			{
				about.POST("", aboutHandler.Create)
				about.PUT("/reorder", aboutHandler.Reorder)
				about.GET("/:id", aboutHandler.Get)
				about.PUT("/:id", aboutHandler.Update)
				about.DELETE("/:id", aboutHandler.Delete)
			}

			testimonials := protected.Group("/testimonials")
			{
				testimonials.POST("", testimonialHandler.Create)
				testimonials.PUT("/reorder", testimonialHandler.Reorder)
				testimonials.GET("/:id", testimonialHandler.Get)
				testimonials.PUT("/:id", testimonialHandler.Update)
				testimonials.DELETE("/:id", testimonialHandler.Delete)
			}

			media := protected.Group("/media")
			{
				media.POST("/upload", mediaHandler.Upload)
				media.DELETE("", mediaHandler.Delete)
			}

			users := protected.Group("/users")
			users.Use(utils.AdminOnly())
			{
				users.GET("", userHandler.List)
				users.POST("", userHandler.Create)
				users.PUT("/:id", userHandler.Update)
				users.DELETE("/:id", userHandler.Deactivate)
			}
		}
	}

	server := &http.Server{
		Addr:    "0.0.0.0:" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Println("Server running on :" + cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Shutting down HTTP server...")
		return server.Shutdown(ctx)
	})

	select {}
}
