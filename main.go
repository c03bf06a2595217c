package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"outings-api/core/config"
	"outings-api/core/logger"
	"outings-api/core/server"
	"outings-api/modules/generation"
	generationService "outings-api/modules/generation/service"

	"github.com/spf13/cobra"
)

// @title Outings API
// @version 1.0
// @description Group activities: catalogue, join requests, organizer decisions and reviews.
// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey UserID
// @in header
// @name X-User-ID

var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logger.Error("Main:Execute", "error", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "outings-api",
		Short:         "Group activities API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.Run(configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.Run(configPath)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "generate <idea>",
		Short: "Generate an activity title and description from an idea",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Init(configPath)
			if err != nil {
				return err
			}
			if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
				return err
			}
			defer logger.Sync()

			drafts := generationService.NewDraftService(generation.NewGenerator(cfg.Generation), nil,
				generationService.WithGenerationTimeout(cfg.Generation.Timeout))
			defer drafts.Close()

			resp, appErr := drafts.Generate(cmd.Context(), strings.Join(args, " "))
			if appErr != nil {
				return appErr
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	})

	return root
}
