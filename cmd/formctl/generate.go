package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

var generateOutputFlag string

var generateCmd = &cobra.Command{
	Use:   "generate <description>",
	Short: "Generate a form from a description",
	Long: `Generate a canonical form from a natural-language description.

Uses Gemini when GEMINI_API_KEY is set, otherwise the keyword fallback.

Examples:
  formctl generate "customer feedback with rating"
  formctl generate "event signup" -o yaml > form.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutputFlag, "output", "o", "json", "Output format (json, yaml)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	a, log, err := newApp()
	if err != nil {
		return err
	}
	defer log.Sync()

	form, err := a.FormService.Generate(context.Background(), "", strings.Join(args, " "))
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), generateOutputFlag, form)
}
