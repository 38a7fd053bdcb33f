package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"catalogo/internal/handlers"
	"catalogo/internal/middleware"
	"catalogo/internal/models"
	"catalogo/internal/repositories"
	"catalogo/internal/services"
	"catalogo/pkg/imagestore"
	"catalogo/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	// Viper reads everything from the environment; values are passed into
	// constructors explicitly instead of being looked up at call sites.
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_URL", "catalogo.db")
	viper.SetDefault("JWT_SECRET", "change-me")
	viper.SetDefault("JWT_EXPIRES_HOURS", 24)
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("UPLOAD_BASE_URL", "/uploads")
	viper.SetDefault("MAX_UPLOAD_BYTES", 5*1024*1024)
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	jwtSecret := viper.GetString("JWT_SECRET")
	tokenTTL := time.Duration(viper.GetInt("JWT_EXPIRES_HOURS")) * time.Hour
	maxUploadBytes := viper.GetInt64("MAX_UPLOAD_BYTES")
	uploadDir := viper.GetString("UPLOAD_DIR")
	uploadBaseURL := viper.GetString("UPLOAD_BASE_URL")

	// --- Database ---
	db, err := openDatabase(viper.GetString("DATABASE_DRIVER"), viper.GetString("DATABASE_URL"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Store{}, &models.Category{}, &models.Product{})
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Image hosting ---
	images, err := imagestore.NewLocalStore(imagestore.Config{
		Dir:     uploadDir,
		BaseURL: uploadBaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize image store: %v", err)
	}

	// --- RabbitMQ (optional) ---
	// Catalog events are best-effort; the API runs fine without a broker.
	var mqClient *rabbitmq.Client
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, catalog events disabled: %v", err)
			mqClient = nil
		} else {
			defer mqClient.Close()
		}
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	storeRepo := repositories.NewGORMStoreRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, jwtSecret, tokenTTL)
	storeService := services.NewStoreService(storeRepo, images, mqClient)
	categoryService := services.NewCategoryService(categoryRepo, storeRepo)
	productService := services.NewProductService(productRepo, categoryRepo, storeRepo, images, mqClient)
	publicService := services.NewPublicService(storeRepo, categoryRepo, productRepo, mqClient)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	storeHandler := handlers.NewStoreHandler(storeService, maxUploadBytes)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService, maxUploadBytes)
	publicHandler := handlers.NewPublicHandler(publicService)

	// --- Fiber app ---
	app := fiber.New(fiber.Config{
		BodyLimit: int(maxUploadBytes) + 1024*1024, // form overhead on top of the image cap
	})
	app.Use(logger.New())
	app.Static(uploadBaseURL, uploadDir)

	api := app.Group("/api")
	authHandler.RegisterRoutes(api)
	publicHandler.RegisterRoutes(api)

	protected := api.Group("", middleware.AuthRequired(authService))
	authHandler.RegisterProtectedRoutes(protected)
	storeHandler.RegisterRoutes(protected)
	categoryHandler.RegisterRoutes(protected)
	productHandler.RegisterRoutes(protected)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Catalog event consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting catalog event consumer...")
			err := mqClient.Consume(func(msg amqp.Delivery) error {
				log.Printf("Catalog event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			})
			if err != nil {
				log.Printf("Failed to start catalog event consumer: %v", err)
			}
		}()
	}

	// --- Start HTTP server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// openDatabase opens the configured database. TranslateError lets the
// repositories detect unique-index violations as gorm.ErrDuplicatedKey on
// both drivers; the slug unique index backs the probe loop.
func openDatabase(driver, url string) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}
	if driver == "postgres" {
		return gorm.Open(postgres.Open(url), cfg)
	}
	return gorm.Open(sqlite.Open(url), cfg)
}
