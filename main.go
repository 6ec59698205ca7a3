package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"nuriqa/internal/api"
	"nuriqa/internal/config"
	"nuriqa/internal/llm"
	"nuriqa/internal/logging"
	"nuriqa/internal/redis"
	"nuriqa/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgPath  string
	dbDriver string
	dbDSN    string
)

func main() {
	root := &cobra.Command{
		Use:           "nuriqa",
		Short:         "NURI Q&A backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", os.Getenv("NURIQA_CONFIG"), "path to a JSON or YAML config file")
	root.PersistentFlags().StringVar(&dbDriver, "driver", "postgres", "database driver (postgres or sqlite3)")
	root.PersistentFlags().StringVar(&dbDSN, "dsn", "", "database DSN; built from the postgres config when empty")
	root.AddCommand(serveCmd(), checkCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Basic.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()
			ctx := cmd.Context()

			db, err := storage.Open(ctx, dbDriver, cfg, dbDSN)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()
			logger.Info("database connected", zap.String("driver", dbDriver))

			rdb, err := redis.NewRedisClient(ctx, cfg)
			if err != nil {
				return fmt.Errorf("create redis client: %w", err)
			}
			defer rdb.Close()
			logger.Info("redis connected", zap.String("addr", redis.Options(cfg.Redis).Addr))

			handler := api.NewHandler(logger)
			handler.AddCheck("database", func(ctx context.Context) error { return storage.Ping(ctx, db) })
			handler.AddCheck("redis", rdb.Ping)

			gin.SetMode(gin.ReleaseMode)
			router := gin.New()
			router.Use(gin.Recovery())
			handler.RegisterRoutes(router)

			errCh := make(chan error, 1)
			go func() { errCh <- router.Run(cfg.Basic.ServerAddress) }()
			logger.Info("server listening", zap.String("addr", cfg.Basic.ServerAddress))

			select {
			case <-ctx.Done():
				logger.Info("shutting down")
				return nil
			case err := <-errCh:
				return fmt.Errorf("server stopped: %w", err)
			}
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify database, redis and OpenAI settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			failed := 0
			report := func(name string, err error) {
				if err != nil {
					failed++
					fmt.Fprintf(out, "%-9s FAIL %v\n", name, err)
					return
				}
				fmt.Fprintf(out, "%-9s ok\n", name)
			}

			var db *sql.DB
			db, err = storage.Open(ctx, dbDriver, cfg, dbDSN)
			report("database", err)
			if db != nil {
				db.Close()
			}

			rdb, err := redis.NewRedisClient(ctx, cfg)
			report("redis", err)
			rdb.Close()

			_, err = llm.NewChatModel(ctx, cfg.OpenAI)
			report("openai", err)

			if failed > 0 {
				return fmt.Errorf("%d check(s) failed", failed)
			}
			return nil
		},
	}
}
