package routes

import (
	"github.com/gofiber/fiber/v2"

	"pantryfit-backend/internal/api/handlers"
	"pantryfit-backend/internal/middleware"
	"pantryfit-backend/pkg/jwt"
)

type Config struct {
	App                *fiber.App
	UserHandler        handlers.UserHandler
	InventoryHandler   handlers.InventoryHandler
	UploadHandler      handlers.UploadHandler
	ConsumptionHandler handlers.ConsumptionHandler
	RecipeHandler      handlers.RecipeHandler
	Middleware         middleware.Middleware
	JWTService         jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Inventory()
	c.Consumption()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/send_verify", c.UserHandler.SendVerificationEmail)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
	}
}

func (c *Config) Inventory() {
	inventory := c.App.Group("/api/v1/inventory", c.Middleware.AuthMiddleware(c.JWTService))

	// Image detection pipeline
	inventory.Post("/upload-image", c.UploadHandler.UploadImage)
	inventory.Get("/image-status/:id", c.UploadHandler.GetImageStatus)
	inventory.Post("/review-detections/:id", c.UploadHandler.ReviewDetections)
	inventory.Post("/create-from-detections/:id", c.UploadHandler.CreateFromDetections)

	// Basic CRUD operations
	inventory.Post("", c.InventoryHandler.AddInventoryItem)
	inventory.Get("", c.InventoryHandler.GetInventoryItems)
	inventory.Get("/:id", c.InventoryHandler.GetInventoryItemByID)
	inventory.Put("/:id", c.InventoryHandler.UpdateInventoryItem)
	inventory.Delete("/:id", c.InventoryHandler.DeleteInventoryItem)
}

func (c *Config) Consumption() {
	consumption := c.App.Group("/api/v1/consumption", c.Middleware.AuthMiddleware(c.JWTService))
	consumption.Post("", c.ConsumptionHandler.LogConsumption)
	consumption.Get("", c.ConsumptionHandler.GetConsumptionLogs)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))
	recipes.Post("/generate", c.RecipeHandler.GenerateRecipe)
	recipes.Get("", c.RecipeHandler.GetUserRecipes)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
