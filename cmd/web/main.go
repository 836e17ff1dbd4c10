package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/fin-tools/credit-atlas/pkg/server"
	"github.com/fin-tools/credit-atlas/pkg/services/underwriting"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var settingsPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Credit Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&settingsPath, "settings", "s", "",
		"Path to an analysis settings file (defaults apply when omitted)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	settings := underwriting.DefaultSettings()
	if settingsPath != "" {
		loaded, err := underwriting.LoadSettings(settingsPath)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		settings = *loaded
		logger.Info().Msgf("Settings loaded from `%s`.", settingsPath)
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(host, port),
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Underwriting: underwriting.NewController(settings),
		},
	})

	return webAPI.Start()
}
