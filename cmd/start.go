package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"game-tracker/core/loader"
	"game-tracker/core/logger"
	"game-tracker/core/metrics"
	"game-tracker/core/middleware/auth"
	"game-tracker/core/middleware/rayid"

	"game-tracker/feature/integrity"
	"game-tracker/feature/library"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "game-tracker/docs/swagger"
)

// @title Game Tracker API
// @version 1.0
// @description API for tracking personal game libraries across Steam, PlayStation and Xbox.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the game tracker server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		logg := a.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if err := a.connect(cmd.Context()); err != nil {
			return err
		}
		if err := a.store.Migrate(); err != nil {
			return err
		}
		logg.Info("Connected to library database", zap.String("driver", a.cfg.Database.Driver))

		srv := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           a.cfg.Server.ReadTimeout(),
		})

		mgr := loader.NewManager()
		mgr.Register(library.NewFeature(a.service))
		if a.storage != nil {
			mgr.Register(integrity.NewFeature(a.storage, a.cfg.Storage.Bucket, a.cfg.Snapshot.Prefix, a.db, logg))
		}

		// RayID must be first to trace everything
		srv.Use(rayid.New())

		srv.Use(func(c *fiber.Ctx) error {
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
		srv.Get("/swagger/*", swagger.HandlerDefault)
		srv.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

		srv.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey, Skip: []string{"/swagger", "/metrics"}}))

		loaded, err := mgr.LoadAll(srv)
		if err != nil {
			return err
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		go func() {
			logg.Info("Starting server", zap.String("port", a.cfg.Server.Port))
			if err := srv.Listen(a.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return srv.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
