package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"zikalyze-engine/config"
	"zikalyze-engine/internal/api"
	"zikalyze-engine/internal/engine"
	"zikalyze-engine/internal/logging"
	"zikalyze-engine/internal/market"
	"zikalyze-engine/internal/metrics"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "zikalyze",
		Short: "Market decision engine",
		Long:  "Deterministic multi-layer market decision engine: snapshot in, trade verdict out.",
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config (defaults apply when omitted)")

	root.AddCommand(analyzeCmd(), serveCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <snapshot.json>",
		Short: "Analyze a market snapshot file and print the verdict",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read snapshot: %w", err)
			}

			var snap market.MarketSnapshot
			if err := json.Unmarshal(data, &snap); err != nil {
				return fmt.Errorf("parse snapshot: %w", err)
			}

			logger := logging.New(cfg.Logging)
			eng := engine.New(cfg, engine.WithLogger(logger))
			result := eng.Analyze(&snap)

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))

			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP analysis API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			logger := logging.New(cfg.Logging)
			eng := engine.New(cfg, engine.WithLogger(logger))
			server := api.NewServer(cfg.Server, eng, metrics.New(), logger)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.Start(ctx)
		},
	}
}
