package main

import (
	"os"

	"github.com/spf13/cobra"

	"formsmith/internal/app"
	"formsmith/internal/config"
	"formsmith/internal/logger"
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "formctl",
	Short: "formctl - generate forms and publish them to external platforms",
	Long: `formctl drives the form pipeline without the HTTP server.

Commands:
  generate    Turn a description into a canonical form
  payload     Print the request a platform would receive for a form
  publish     Create a form on Google Forms, Typeform or SurveyMonkey

Quick Start:
  1. formctl generate "event signup with name and email" -o yaml > form.yaml
  2. formctl payload typeform form.yaml
  3. TYPEFORM_ACCESS_TOKEN=... formctl publish typeform form.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log to stderr")
}

// newApp wires the services over in-memory stores
func newApp() (*app.App, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.Nop()
	if verboseFlag {
		if log, err = logger.New(cfg.LogMode); err != nil {
			return nil, nil, err
		}
	}
	return app.New(cfg, config.DefaultAIConfig(), app.MemoryStores(), log), log, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
