package config

import (
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pantryfit-backend/internal/api/handlers"
	"pantryfit-backend/internal/api/routes"
	appconfig "pantryfit-backend/internal/config"
	"pantryfit-backend/internal/detector"
	"pantryfit-backend/internal/middleware"
	"pantryfit-backend/internal/utils"
	"pantryfit-backend/internal/utils/mailing"
	"pantryfit-backend/internal/utils/storage"
	"pantryfit-backend/internal/worker"
	"pantryfit-backend/pkg/consumption"
	"pantryfit-backend/pkg/inventory"
	"pantryfit-backend/pkg/jwt"
	"pantryfit-backend/pkg/recipe"
	"pantryfit-backend/pkg/upload"
	"pantryfit-backend/pkg/user"
)

// newFiberConfig raises the body limit above the upload cap; Fiber's 4 MiB
// default would reject valid images before the handler runs. The extra MiB
// covers multipart framing.
func newFiberConfig() fiber.Config {
	return fiber.Config{
		EnablePrintRoutes: true,
		BodyLimit:         upload.MaxUploadSize + 1024*1024,
	}
}

func NewApp(cfg *appconfig.Config, db *gorm.DB, pool *worker.Pool, log *zap.Logger) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(newFiberConfig())
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, fmt.Errorf("creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("opening request log: %w", err)
	}
	app.Use(fiberlogger.New(fiberlogger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        30,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3, err := storage.NewAwsS3(cfg.S3)
	if err != nil {
		return nil, err
	}
	mailer := mailing.NewMailer(cfg.SMTP)
	modelDetector := detector.NewModelServiceDetector(cfg.Detector)

	// Repository
	userRepository := user.NewUserRepository(db)
	uploadRepository := upload.NewUploadRepository(db)
	inventoryRepository := inventory.NewInventoryRepository(db)
	consumptionRepository := consumption.NewConsumptionRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)

	// Service
	jwtService := jwt.NewJWTService(cfg.JWT)
	userService := user.NewUserService(userRepository, jwtService, mailer, cfg.Server.AppURL, log)
	uploadService := upload.NewUploadService(uploadRepository, userRepository, inventoryRepository, s3, modelDetector, pool, log)
	inventoryService := inventory.NewInventoryService(inventoryRepository)
	consumptionService := consumption.NewConsumptionService(consumptionRepository, inventoryRepository)
	recipeService := recipe.NewRecipeService(recipeRepository, inventoryRepository, cfg.Gemini)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	uploadHandler := handlers.NewUploadHandler(uploadService, validator)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, validator)
	consumptionHandler := handlers.NewConsumptionHandler(consumptionService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService)

	// routes
	routesConfig := routes.Config{
		App:                app,
		UserHandler:        userHandler,
		InventoryHandler:   inventoryHandler,
		UploadHandler:      uploadHandler,
		ConsumptionHandler: consumptionHandler,
		RecipeHandler:      recipeHandler,
		Middleware:         middlewares,
		JWTService:         jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
