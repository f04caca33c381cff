package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storage-kit/core/loader"
	"storage-kit/core/logger"
	"storage-kit/core/middleware/auth"
	"storage-kit/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "storage-kit/docs/swagger"
)

// @title Storage Kit API
// @version 1.0
// @description Blob and queue access over a storage account.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the storage kit server",
	Long:  `Starts the HTTP server exposing the blob and queue features.`,
	Run: func(cmd *cobra.Command, args []string) {
		svcs, err := newServices(cmd.Context())
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		logg := svcs.logger
		cfg := svcs.cfg
		zap.ReplaceGlobals(logg)

		app := fiber.New(cfg.Server.FiberConfig())

		mgr := loader.NewManager()
		mgr.Register(svcs.blobs)
		mgr.Register(svcs.queues)

		// RayID must be first so every log line below carries it
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Public
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		svcs.Close(ctx)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
