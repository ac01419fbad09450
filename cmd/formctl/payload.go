package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"formsmith/internal/model"
	"formsmith/internal/translate/google"
	"formsmith/internal/translate/surveymonkey"
	"formsmith/internal/translate/typeform"
)

var payloadOutputFlag string

var payloadCmd = &cobra.Command{
	Use:   "payload <platform> <form-file>",
	Short: "Print the platform request for a form",
	Long: `Print what a platform would receive for a form, without calling it.

Platforms: google, typeform, surveymonkey

Examples:
  formctl payload typeform form.json
  formctl generate "quiz" | formctl payload google -`,
	Args: cobra.ExactArgs(2),
	RunE: runPayload,
}

func init() {
	payloadCmd.Flags().StringVarP(&payloadOutputFlag, "output", "o", "json", "Output format (json, yaml)")
	rootCmd.AddCommand(payloadCmd)
}

func runPayload(cmd *cobra.Command, args []string) error {
	platform, ok := model.ParsePlatform(args[0])
	if !ok {
		return fmt.Errorf("unknown platform %q", args[0])
	}
	form, err := readForm(args[1])
	if err != nil {
		return err
	}
	payload, err := buildPayload(platform, form)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), payloadOutputFlag, payload)
}

func buildPayload(platform model.Platform, form *model.Form) (interface{}, error) {
	for i := range form.Questions {
		form.Questions[i].Type = model.CoerceQuestionType(string(form.Questions[i].Type))
	}
	switch platform {
	case model.PlatformGoogle:
		return google.BuildItems(form), nil
	case model.PlatformTypeform:
		return typeform.BuildRequest(form), nil
	case model.PlatformSurveyMonkey:
		return map[string]interface{}{
			"survey":    surveymonkey.SurveyCreateRequest{Title: form.Title, Language: "en"},
			"questions": surveymonkey.BuildQuestions(form),
		}, nil
	}
	return nil, fmt.Errorf("unknown platform %q", platform)
}
