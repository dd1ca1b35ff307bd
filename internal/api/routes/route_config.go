package routes

import (
	"pantrypal/domain"
	"pantrypal/internal/api/handlers"
	"pantrypal/internal/metrics"
	"pantrypal/internal/middleware"
	"pantrypal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App             *fiber.App
	FoodHandler     handlers.FoodHandler
	ReminderHandler handlers.ReminderHandler
	ProductHandler  handlers.ProductHandler
	RecipeHandler   handlers.RecipeHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
	Metrics         *metrics.Collector
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.App.Use(c.Middleware.MetricsMiddleware())
	c.GuestRoute()
	c.FoodItems()
	c.Reminders()
	c.Products()
	c.Recipes()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": domain.MessageSuccessPing})
	})
	if c.Metrics != nil {
		c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(c.Metrics.Registry, promhttp.HandlerOpts{})))
	}
}

func (c *Config) FoodItems() {
	foodItems := c.App.Group("/api/v1/food-items", c.Middleware.AuthMiddleware(c.JWTService))
	foodItems.Get("/dashboard", c.FoodHandler.GetDashboardStats)

	foodItems.Post("", c.FoodHandler.AddFoodItem)
	foodItems.Get("", c.FoodHandler.GetFoodItems)
	foodItems.Get("/:id", c.FoodHandler.GetFoodItemDetails)
	foodItems.Put("/:id", c.FoodHandler.UpdateFoodItem)
	foodItems.Delete("/:id", c.FoodHandler.DeleteFoodItem)

	foodItems.Post("/image", c.FoodHandler.UploadFoodImage)
}

func (c *Config) Reminders() {
	reminders := c.App.Group("/api/v1/reminders", c.Middleware.AuthMiddleware(c.JWTService))
	reminders.Get("", c.ReminderHandler.GetReminders)
	reminders.Post("/sweep", c.ReminderHandler.RunSweep)
	reminders.Delete("", c.ReminderHandler.ClearReminders)
}

func (c *Config) Products() {
	products := c.App.Group("/api/v1/products", c.Middleware.AuthMiddleware(c.JWTService))
	products.Get("/:barcode", c.ProductHandler.LookupProduct)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))
	recipes.Post("/search", c.RecipeHandler.SearchRecipes)
}
