package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/DurgaPydahSoft/server-sub001/app/config"
	"github.com/DurgaPydahSoft/server-sub001/app/database"
	"github.com/DurgaPydahSoft/server-sub001/app/routes/academic"
	"github.com/DurgaPydahSoft/server-sub001/app/routes/auth"
	"github.com/DurgaPydahSoft/server-sub001/app/routes/fees"
	"github.com/DurgaPydahSoft/server-sub001/app/routes/notifications"
	"github.com/DurgaPydahSoft/server-sub001/app/routes/payments"
	"github.com/DurgaPydahSoft/server-sub001/app/routes/students"
	"github.com/DurgaPydahSoft/server-sub001/app/services"
)

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

// buildSenders picks real notification transports where configured and falls
// back to console logging otherwise, so development setups run without SMTP
// or gateway credentials.
func buildSenders(cfg *config.Config) (services.EmailSender, services.SMSSender, services.PushSender) {
	console := services.ConsoleSender{}

	var email services.EmailSender = console
	if cfg.SMTP.Host != "" && cfg.SMTP.Username != "" {
		email = &services.SMTPEmailSender{Config: cfg.SMTP}
	}

	var sms services.SMSSender = console
	if cfg.SMS.GatewayURL != "" {
		sms = &services.GatewaySMSSender{Config: cfg.SMS}
	}

	var push services.PushSender = console
	if cfg.Push.GatewayURL != "" {
		push = &services.GatewayPushSender{Config: cfg.Push}
	}

	return email, sms, push
}

func main() {
	// Set global time zone to Indian Standard Time
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		log.Printf("Warning: Failed to load Asia/Kolkata location, falling back to UTC+5:30: %v", err)
		time.Local = time.FixedZone("IST", 5*60*60+30*60)
	} else {
		time.Local = loc
	}
	log.Printf("Application time zone set to: %s", time.Local.String())

	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Wire the fee compliance services against the SQL store
	store := database.NewStore(config.GetDB())
	email, sms, push := buildSenders(config.AppConfig)
	svc := services.New(store, email, sms, push)

	// Start background scheduler
	svc.Scheduler.Start()
	defer svc.Scheduler.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Setup auth routes
	auth.SetupAuthRoutes(app)

	// Setup students routes
	students.SetupStudentsRoutes(app, svc)

	// Setup academic calendar routes
	academic.RegisterRoutes(app, config.GetDB())

	// Setup fees routes
	fees.SetupFeesRoutes(app, svc)

	// Setup payments routes
	payments.SetupPaymentsRoutes(app, svc)

	// Setup notifications routes
	notifications.SetupNotificationsRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	// Shut the scheduler down cleanly on SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down...")
		svc.Scheduler.Stop()
		_ = app.Shutdown()
	}()

	// Start server
	addr := ":" + config.AppConfig.Port
	log.Println("Server starting on", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatal(err)
	}
}
