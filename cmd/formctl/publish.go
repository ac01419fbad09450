package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"formsmith/internal/model"
	"formsmith/internal/translate"
)

var (
	publishGoogleTokenFlag string
	publishSheetFlag       bool
	publishOutputFlag      string
)

var publishCmd = &cobra.Command{
	Use:   "publish <platform> <form-file>",
	Short: "Create a form on an external platform",
	Long: `Create a form on Google Forms, Typeform or SurveyMonkey.

Typeform and SurveyMonkey use TYPEFORM_ACCESS_TOKEN and
SURVEYMONKEY_ACCESS_TOKEN. Google needs a delegated OAuth token.

Examples:
  formctl publish typeform form.json
  formctl publish google form.yaml --google-token "$TOKEN" --sheet`,
	Args: cobra.ExactArgs(2),
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringVar(&publishGoogleTokenFlag, "google-token", "", "Google OAuth access token")
	publishCmd.Flags().BoolVar(&publishSheetFlag, "sheet", false, "Also create a linked response spreadsheet (google)")
	publishCmd.Flags().StringVarP(&publishOutputFlag, "output", "o", "json", "Output format (json, yaml)")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	platform, ok := model.ParsePlatform(args[0])
	if !ok {
		return fmt.Errorf("unknown platform %q", args[0])
	}
	form, err := readForm(args[1])
	if err != nil {
		return err
	}

	a, log, err := newApp()
	if err != nil {
		return err
	}
	defer log.Sync()

	creds := translate.Credentials{AccessToken: publishGoogleTokenFlag, CreateSpreadsheet: publishSheetFlag}
	res, err := a.PublishService.PublishDirect(context.Background(), platform, form, creds)
	if err != nil {
		return err
	}
	if n := res.Failed(); n > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d of %d questions were not created\n", n, len(res.Items))
	}
	return writeOutput(cmd.OutOrStdout(), publishOutputFlag, res)
}
