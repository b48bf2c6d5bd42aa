package cmd

import (
	"context"
	"errors"
	"fmt"
	"inventory/internal/core/config"
	"inventory/internal/core/container"
	"inventory/internal/core/logger"
	"inventory/internal/core/routes"
	"inventory/internal/database"
	"inventory/internal/middleware"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time with -ldflags "-X inventory/cmd.Version=...".
var Version = "dev"

var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run migrations manually.",
	Long:  `Applies the migrations from --dir, or the set embedded in the binary when no directory is given.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		migrationDir, _ := cmd.Flags().GetString("dir")
		if migrationDir == "" {
			migrationDir = cfg.MigrationsDir
		}

		log := logger.NewLogger(cfg.LogLevel)
		defer func() { _ = log.Sync() }()

		if err := database.RunMigrations(cfg.DatabaseURL, migrationDir, log); err != nil {
			log.Error("Migration failed", zap.Error(err))
			return fmt.Errorf("migrate database: %w", err)
		}

		return nil
	},
}

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the checkout API.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		migrate, _ := cmd.Flags().GetBool("migrate")

		log := logger.NewLogger(cfg.LogLevel)
		defer func() { _ = log.Sync() }()

		return serve(cmd.Context(), cfg, migrate, log)
	},
}

func serve(ctx context.Context, cfg *config.Config, migrate bool, log *zap.Logger) error {
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL environment variable is not set")
	}
	if migrate {
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir, log); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
	}

	db, err := database.NewPostgresConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("Connected to the database")

	app, err := container.NewAppContainer(db, cfg, Version, log)
	if err != nil {
		return err
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		middleware.RecoveryMiddleware(log),
		middleware.RequestLogger(log),
		middleware.TimeoutMiddleware(cfg.RequestTimeout),
	)
	routes.RegisterUtilityRoutes(router, app)
	routes.RegisterPublicRoutes(router, app)
	routes.RegisterProtectedRoutes(router, app)

	go app.Sessions.Run(ctx, time.Minute, cfg.CartIdleTTL)
	go app.LoginLimiter.Run(ctx, time.Minute)

	server := &http.Server{
		Addr:              cfg.AppHost,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("addr", cfg.AppHost), zap.String("version", Version))
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func Execute(ctx context.Context) {
	rootCmd := &cobra.Command{
		Use:   "inventory",
		Short: "Equipment checkout service",
	}
	MigrateCmd.Flags().String("dir", "", "Directory containing the migration files")
	ServeCmd.Flags().Bool("migrate", false, "Apply pending migrations before serving")
	rootCmd.AddCommand(MigrateCmd, ServeCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
