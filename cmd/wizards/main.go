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
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/wizardsmarket/wizards/internal/api"
	"github.com/wizardsmarket/wizards/internal/config"
	"github.com/wizardsmarket/wizards/internal/db"
	"github.com/wizardsmarket/wizards/internal/services"
	"github.com/wizardsmarket/wizards/internal/storage"
)

func main() {
	cfg := config.Load()

	database, err := db.OpenSQLite(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mailer := services.NewMailerService(services.ConsoleMailSender{})
	mailer.Start(ctx)

	uploads := storage.NewLocalStore(cfg.StorageRoot, cfg.StoragePublicURL)

	app := fiber.New(fiber.Config{
		AppName:     "wizards",
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AppBaseURL,
		AllowCredentials: true,
	}))
	app.Static("/uploads", cfg.StorageRoot)

	handler := api.NewHandler(database, api.Config{
		SecretKey:          cfg.SecretKey,
		CookieSecure:       cfg.CookieSecure,
		AppBaseURL:         cfg.AppBaseURL,
		GoogleClientID:     cfg.GoogleClientID,
		GoogleClientSecret: cfg.GoogleClientSecret,
		GoogleRedirectURL:  cfg.GoogleRedirectURL,
		Uploads:            uploads,
		Mailer:             mailer,
	})
	api.RegisterRoutes(app, handler)

	go func() {
		<-ctx.Done()
		log.Println("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("listen: %v", err)
	}

	stop()
	mailer.Wait()
}
