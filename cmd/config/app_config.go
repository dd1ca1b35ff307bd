package config

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"pantrypal/internal/api/handlers"
	"pantrypal/internal/api/routes"
	"pantrypal/internal/metrics"
	"pantrypal/internal/middleware"
	"pantrypal/internal/utils"
	"pantrypal/internal/utils/mailing"
	"pantrypal/internal/utils/storage"
	"pantrypal/pkg/food"
	"pantrypal/pkg/jwt"
	"pantrypal/pkg/notification"
	"pantrypal/pkg/product"
	"pantrypal/pkg/recipe"
	"pantrypal/pkg/reminder"
	"pantrypal/pkg/sweep"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const outboundTimeout = 10 * time.Second

// App is everything the serve and sweep commands need from one wiring pass.
type App struct {
	Fiber      *fiber.App
	Sweeper    *sweep.Driver
	Dispatcher *reminder.Dispatcher
	JWTService jwt.JWTService
	logFile    *os.File
}

func (a *App) Close() error {
	if a.logFile == nil {
		return nil
	}
	return a.logFile.Close()
}

func NewApp(db *gorm.DB, log *zap.Logger) (*App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	validator := utils.Validate
	loc := utils.Location()
	collector := metrics.NewCollector("pantrypal")
	middlewares := middleware.NewMiddleware(collector)

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("open access log: %w", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   loc.String(),
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3, err := storage.NewAwsS3(context.Background(), storage.LoadS3Config())
	if err != nil {
		if !errors.Is(err, storage.ErrNotConfigured) {
			return nil, err
		}
		log.Info("photo upload disabled, no S3 bucket configured")
	}
	httpClient := &http.Client{Timeout: outboundTimeout}

	// Repository
	foodRepository := food.NewFoodRepository(db)
	reminderRepository := reminder.NewReminderRepository(db, utils.NotificationsEnabled())
	recipeRepository := recipe.NewRecipeRepository(
		utils.GetConfig("RECIPE_API_URL"),
		utils.GetConfig("RECIPE_API_KEY"),
		httpClient,
		log,
	)

	// Service
	jwtService := NewJWTService()
	sweeper := sweep.NewDriver(foodRepository, reminderRepository, loc, log, collector)
	foodService := food.NewFoodService(foodRepository, sweeper, s3, loc, log)
	productService := product.NewProductService(utils.GetConfig("PRODUCT_API_URL"), httpClient, log)
	recipeService := recipe.NewRecipeService(recipeRepository, foodRepository)
	notificationService := notification.NewNotificationService(reminderRepository, sweeper, loc, log)

	dispatcher := reminder.NewDispatcher(
		reminderRepository,
		newNotifier(log),
		func(ctx context.Context, now time.Time) error {
			_, err := sweeper.RunSweep(ctx, now.In(loc))
			return err
		},
		loc,
		utils.DispatchInterval(),
		log,
		collector,
	)

	// Handler
	foodHandler := handlers.NewFoodHandler(foodService, validator)
	reminderHandler := handlers.NewReminderHandler(notificationService)
	productHandler := handlers.NewProductHandler(productService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)

	// routes
	routesConfig := routes.Config{
		App:             app,
		FoodHandler:     foodHandler,
		ReminderHandler: reminderHandler,
		ProductHandler:  productHandler,
		RecipeHandler:   recipeHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
		Metrics:         collector,
	}
	routesConfig.Setup()

	return &App{
		Fiber:      app,
		Sweeper:    sweeper,
		Dispatcher: dispatcher,
		JWTService: jwtService,
		logFile:    file,
	}, nil
}

func NewJWTService() jwt.JWTService {
	return jwt.NewJWTService(utils.GetConfig("JWT_SECRET"))
}

// newNotifier mails reminders when SMTP and a recipient are configured and
// logs them otherwise.
func newNotifier(log *zap.Logger) reminder.Notifier {
	mailConfig := mailing.LoadMailConfig()
	to := utils.GetConfig("NOTIFY_EMAIL")
	if mailConfig.Configured() && to != "" {
		return reminder.NewMailNotifier(mailing.NewMailer(mailConfig), to)
	}
	log.Info("no mail recipient configured, reminders will be logged")
	return reminder.NewLogNotifier(log)
}
