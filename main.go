package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"schoolhub_backend/internals/configs"
	"schoolhub_backend/internals/databases"
	"schoolhub_backend/internals/identity"
	"schoolhub_backend/internals/identity/dummy"
	"schoolhub_backend/internals/middlewares"
	"schoolhub_backend/internals/route"
	"schoolhub_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	databases.ConnectDB()
	databases.TunePool()
	if configs.GetEnv("RUN_MIGRATIONS", "false") == "true" {
		if err := databases.AutoMigrate(databases.DB); err != nil {
			log.Fatalf("[FATAL] migration failed: %v", err)
		}
	}
	if configs.GetEnv("RUN_SEEDS", "false") == "true" {
		if err := seeds.Run(databases.DB); err != nil {
			log.Fatalf("[FATAL] seeding failed: %v", err)
		}
	}

	var idp identity.Service
	switch configs.IdentityProvider {
	case "local":
		idp = dummy.NewService()
	default:
		idp = identity.NewClient(configs.IdentityBaseURL, configs.IdentityAPIKey)
	}

	var snapClient *snap.Client
	if configs.MidtransServerKey != "" {
		snapClient = &snap.Client{}
		snapClient.New(configs.MidtransServerKey, midtrans.Sandbox)
	}

	app := fiber.New(fiber.Config{
		AppName:     "schoolhub",
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
	})

	app.Use(requestid.New())
	app.Use(compress.New())
	app.Use(etag.New())
	middlewares.SetupMiddlewares(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := databases.Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	route.SetupRoutes(app, databases.DB, idp, snapClient)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("[INFO] shutting down")
		_ = app.Shutdown()
	}()

	port := configs.GetEnv("PORT", "3000")
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("[FATAL] server stopped: %v", err)
	}
}
