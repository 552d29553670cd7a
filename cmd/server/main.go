package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"
	config "github.com/telvana/streampanel/configs"
	"github.com/telvana/streampanel/internal/api/handlers"
	"github.com/telvana/streampanel/internal/api/middleware"
	"github.com/telvana/streampanel/internal/cache"
	"github.com/telvana/streampanel/internal/filestore"
	job "github.com/telvana/streampanel/internal/jobs"
	"github.com/telvana/streampanel/internal/queue"
	"github.com/telvana/streampanel/internal/repository"
	"github.com/telvana/streampanel/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	// The storage backend is chosen once here. The JSON file store is the
	// local/dev implementation of the same repository interfaces; it is
	// never used as a runtime fallback for Postgres.
	var (
		db               *sql.DB
		userRepo         repository.UserRepository
		channelRepo      repository.ChannelRepository
		catalogRepo      repository.CatalogRepository
		subscriptionRepo repository.SubscriptionRepository
		giftCardRepo     repository.GiftCardRepository
		apiKeyRepo       repository.ApiKeyRepository
	)

	switch cfg.StorageBackend {
	case "file":
		fs, err := filestore.Open(cfg.FileStorePath)
		if err != nil {
			log.Fatalf("Failed to open file store: %v", err)
		}
		userRepo = fs.Users()
		channelRepo = fs.Channels()
		catalogRepo = fs.Catalog()
		subscriptionRepo = fs.Subscriptions()
		giftCardRepo = fs.GiftCards()
		apiKeyRepo = fs.ApiKeys()
		log.Printf("Using file storage backend at %s", cfg.FileStorePath)
	case "postgres":
		var err error
		db, err = sql.Open("postgres", cfg.PostgresURI)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer closeDB(db)

		if err := db.Ping(); err != nil {
			log.Fatalf("Database is unreachable: %v", err)
		}

		if err := repository.RunMigrations(cfg.PostgresURI, cfg.MigrationsPath); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}

		userRepo = repository.NewUserRepository(db)
		channelRepo = repository.NewChannelRepository(db)
		catalogRepo = repository.NewCatalogRepository(db)
		subscriptionRepo = repository.NewSubscriptionRepository(db)
		giftCardRepo = repository.NewGiftCardRepository(db)
		apiKeyRepo = repository.NewApiKeyRepository(db)
	default:
		log.Fatalf("Unknown storage backend %q", cfg.StorageBackend)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	listingCache := cache.New(cfg.RedisURI)
	defer listingCache.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
		BodyLimit:    25 * 1024 * 1024, // 25 MB, base64 image uploads
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return origin == cfg.FrontendURL
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	channelService := service.NewChannelService(channelRepo, listingCache)
	catalogService := service.NewCatalogService(catalogRepo, listingCache)
	subscriptionService := service.NewSubscriptionService(userRepo, channelRepo, subscriptionRepo)
	giftCardService := service.NewGiftCardService(giftCardRepo, userRepo)
	cdnService := service.NewCDNService(*cfg)
	apiKeyService := service.NewApiKeyService(apiKeyRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, apiKeyService)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Post("/auth/register", auth.Register)
	app.Post("/auth/login", auth.Login)
	app.Post("/auth/logout", auth.Logout)

	// storefront routes
	channel := handlers.NewChannelHandler(channelService)
	catalog := handlers.NewCatalogHandler(catalogService)
	giftCard := handlers.NewGiftCardHandler(giftCardService)
	app.Get("/store/channels", channel.ListChannels)
	app.Get("/store/catalog", catalog.ListCatalog)

	store := app.Group("/store")
	store.Use(authMiddleware.AuthMiddleware())
	store.Post("/giftcards/redeem", giftCard.RedeemGiftCard)

	user := handlers.NewUserHandler(userService)
	me := app.Group("/me")
	me.Use(authMiddleware.AuthMiddleware())
	me.Get("/", user.GetUserInfo)

	// admin routes
	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())
	api.Use(authMiddleware.RequireAdmin())

	subscription := handlers.NewSubscriptionHandler(subscriptionService)
	api.Post("/subscriptions", subscription.CreateSubscription)
	api.Get("/subscriptions", subscription.ListSubscriptions)
	api.Put("/subscriptions", subscription.UpdateSubscription)
	api.Delete("/subscriptions", subscription.DeleteSubscription)

	api.Post("/channels", channel.CreateChannel)
	api.Get("/channels", channel.ListChannels)
	api.Put("/channels", channel.UpdateChannel)
	api.Delete("/channels", channel.DeleteChannel)

	api.Post("/catalog", catalog.CreateCatalogItem)
	api.Get("/catalog", catalog.ListCatalog)
	api.Put("/catalog", catalog.UpdateCatalogItem)
	api.Delete("/catalog", catalog.DeleteCatalogItem)

	api.Post("/giftcards", giftCard.CreateGiftCards)
	api.Get("/giftcards", giftCard.ListGiftCards)
	api.Delete("/giftcards", giftCard.DeleteGiftCard)

	api.Get("/users", user.ListUsers)
	api.Post("/users/credits", user.AddCredits)
	api.Delete("/users", user.RemoveUser)

	upload := handlers.NewUploadHandler(cdnService, client)
	api.Post("/uploads", upload.Upload)
	api.Delete("/uploads", upload.DeleteUpload)

	apiKeys := handlers.NewApiKeyHandler(apiKeyService)
	api.Post("/api_key/new", apiKeys.CreateApiKey)
	api.Get("/api_key/list", apiKeys.ListKeys)
	api.Post("/api_key/remove", apiKeys.RemoveAPIKey)

	// cron jobs
	expiryJob := job.NewGiftCardExpiryJob(giftCardService)

	// queue
	queueW := queue.NewQueue(cdnService)

	c := cron.New()
	c.AddFunc("@every 01h00m00s", expiryJob.ExpireGiftCards)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeDeleteAsset, queueW.HandleDeleteAssetTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(cfg.ListenAddr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on %s", cfg.ListenAddr)

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	if db != nil {
		closeDB(db)
	}
	log.Println("Server shutdown complete.")
}
