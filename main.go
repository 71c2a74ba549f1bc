package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"quizcourse_backend/internals/configs"
	database "quizcourse_backend/internals/databases"
	scheduler "quizcourse_backend/internals/features/users/auth/scheduler"
	helper "quizcourse_backend/internals/helpers"
	middlewares "quizcourse_backend/internals/middlewares"
	routes "quizcourse_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.ErrorHandler,
		BodyLimit:               helper.MaxImageUploadSize + 1024*1024,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	middlewares.SetupMiddlewares(app)

	// DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()
	if configs.DBAutoMigrate {
		if err := database.AutoMigrate(database.DB); err != nil {
			log.Fatalf("❌ auto-migrate failed: %v", err)
		}
	}

	// scheduler after the DB is ready
	cleanup, err := scheduler.StartBlacklistCleanupScheduler(database.DB, configs.BlacklistCleanupCron, configs.TokenBlacklistTTLDays)
	if err != nil {
		log.Printf("[WARN] blacklist cleanup not scheduled: %v", err)
	}

	app.Static(helper.UploadsPublicPath, configs.UploadDir, fiber.Static{MaxAge: 3600})

	routes.SetupRoutes(app, database.DB)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: stop HTTP, then cron, then the pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("[WARN] fiber shutdown: %v", err)
	}
	if cleanup != nil {
		<-cleanup.Stop().Done()
	}
	database.Close()
}
