// Command pricer is the standalone entry point for the pickup-and-delivery
// pricing subproblem solver (§6).
//
// Unlike the reference microservices, which front an algorithm with a gRPC
// transport, pricer has no network-facing boundary: the master <->
// pricing contract (§6) is the plain internal/pricing.PricingService Go
// interface, meant to be called in-process by an outer column-generation
// driver or grafted onto a real RPC contract at a later build step. This CLI
// exists to run that contract from the command line, against on-disk
// problem instances, for manual driving and benchmarking.
//
// # Configuration
//
// Configuration is loaded with the following priority (highest to lowest):
//  1. Environment variables (prefix: PRICER_)
//  2. Config files (config.yaml, config/config.yaml, /etc/pricer/config.yaml)
//  3. Default values
//
// See pkg/config for the full set of recognised keys.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pricer/pkg/config"
	"pricer/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "pricer",
		Short: "Pickup-and-delivery pricing subproblem solver",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml")

	root.AddCommand(newPriceCmd(&configPath))
	root.AddCommand(newBenchmarkCmd(&configPath))
	return root
}

func loadConfig(configPath string) (*config.Config, error) {
	var opts []config.LoaderOption
	if configPath != "" {
		opts = append(opts, config.WithConfigPaths(configPath))
	}
	return config.NewLoader(opts...).Load()
}

func initLogger(cfg *config.Config) {
	logger.InitWithConfig(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})
}
