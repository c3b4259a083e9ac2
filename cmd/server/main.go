package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/saascontratos/contratos/internal/config"
	"github.com/saascontratos/contratos/internal/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "contratos",
	Short: "Service contract generator",
	Long: `Generates service contracts in Portuguese with the amount written out
in words, stores them per user and renders them as PDF.

Without a subcommand the HTTP server is started.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = "config.yaml"
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultPath, "path to the YAML config file")

	rootCmd.AddCommand(serveCmd, extensoCmd, renderCmd)
}

// loadConfig reads the configuration and installs the default logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
