package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"collegeaccounts_backend/internals/configs"
	database "collegeaccounts_backend/internals/databases"
	helper "collegeaccounts_backend/internals/helpers"
	"collegeaccounts_backend/internals/helpers/cache"
	middlewares "collegeaccounts_backend/internals/middlewares"
	routes "collegeaccounts_backend/internals/route"
)

// logger dibuat di PersistentPreRunE, dipakai semua subcommand.
var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:           "collegeaccounts",
	Short:         "College accounts backend (exam fees, employees)",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configs.LoadEnv()
		l, err := configs.NewLogger(configs.AppEnv, configs.LogLevel)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		logger = l
		return nil
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

func init() {
	// angka uang dikirim sebagai number JSON, bukan string
	decimal.MarshalJSONWithoutQuotes = true

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, createUserCmd, pruneTokensCmd, calcCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	_ = logger.Sync()
}

func runServe(cmd *cobra.Command, args []string) error {
	if configs.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	// 🔌 DB connect + pool + warm-up
	if err := database.ConnectDB(logger); err != nil {
		return err
	}
	defer database.Close(database.DB)
	database.TunePool(logger)
	database.WarmUpQueries(logger)

	store, closeStore, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.FromFiberError,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          configs.GetEnvList("TRUSTED_PROXIES", "0.0.0.0/0"),
		ReadTimeout:             15 * time.Second,
		WriteTimeout:            30 * time.Second,
		IdleTimeout:             90 * time.Second,
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	middlewares.SetupMiddlewares(app, logger, store)
	routes.SetupRoutes(app, database.DB, logger, store)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("✅ listening", zap.String("port", configs.Port), zap.String("env", configs.AppEnv))
		errCh <- app.Listen("0.0.0.0:" + configs.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return app.ShutdownWithContext(ctx)
}

// openStore: redis bila REDIS_ADDR diset, selain itu cache.Nop.
func openStore(ctx context.Context) (cache.Store, func(), error) {
	client, err := database.ConnectRedis(ctx, logger)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		return cache.Nop{}, func() {}, nil
	}
	store := cache.NewRedisStore(client)
	return store, func() { _ = store.Close() }, nil
}
