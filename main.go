package main

import (
	"log"
	"time"

	"ledgerline/config"
	authController "ledgerline/controllers/auth"
	documentController "ledgerline/controllers/document"
	itrController "ledgerline/controllers/itr"
	paymentController "ledgerline/controllers/payment"
	planController "ledgerline/controllers/plan"
	"ledgerline/database"
	"ledgerline/gateway"
	"ledgerline/middleware"
	"ledgerline/routers/authRoutes"
	"ledgerline/routers/documentRoutes"
	"ledgerline/routers/itrRoutes"
	"ledgerline/routers/paymentRoutes"
	"ledgerline/routers/planRoutes"
	"ledgerline/storage"
	"ledgerline/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database startup failed: %v", err)
	}

	// External collaborators
	mailer := utils.NewSendGridMailer(cfg)
	sms := utils.NewFast2SMSSender(cfg)
	paymentGateway := gateway.NewStripeGateway(cfg)
	blobStore := storage.NewGCSBlobStore(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Blanket request window across every route
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: time.Duration(cfg.RateLimitWindow) * time.Minute,
	}))

	api := app.Group("/api/v1")

	authRoutes.SetupAuthRoutes(api, authController.NewAuthController(db, mailer, sms), db)
	planRoutes.SetupPlanRoutes(api, planController.NewPlanController(db), db)
	paymentRoutes.SetupPaymentRoutes(api, paymentController.NewPaymentController(db, paymentGateway, mailer), db)
	documentRoutes.SetupDocumentRoutes(api, documentController.NewDocumentController(db, blobStore), db)
	itrRoutes.SetupITRRoutes(api, itrController.NewITRController(db, mailer), db)

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "OK",
			"message": "Server is running",
		})
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("API is running...")
	})

	utils.InitializeOTPJanitor(db)

	log.Printf("Server running in %s mode on port %s", cfg.Env, cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
