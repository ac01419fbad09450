// Package google publishes forms to Google Forms and optionally links a
// response spreadsheet in Google Sheets.
package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"formsmith/internal/logger"
	"formsmith/internal/model"
	"formsmith/internal/translate"
)

const headerRange = "A1:ZZ1"

// Publisher creates Google Forms with the caller's delegated token
type Publisher struct {
	newAPI APIFactory
	log    *logger.Logger
}

// NewPublisher creates a publisher; a nil factory uses the real services
func NewPublisher(factory APIFactory, log *logger.Logger) *Publisher {
	if factory == nil {
		factory = DefaultAPIFactory
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Publisher{newAPI: factory, log: log.With("component", "google")}
}

func (p *Publisher) Platform() model.Platform { return model.PlatformGoogle }

// FormURL is the responder link for a form id
func FormURL(formID string) string {
	return fmt.Sprintf("https://docs.google.com/forms/d/%s/viewform", formID)
}

// SpreadsheetURL is the editor link for a spreadsheet id
func SpreadsheetURL(spreadsheetID string) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s", spreadsheetID)
}

// Publish creates the form shell, inserts questions one at a time and
// optionally provisions the response sheet. A failed question is recorded
// in Result.Items and does not fail the publish; only the shell and an
// explicitly requested sheet are fatal.
func (p *Publisher) Publish(ctx context.Context, form *model.Form, creds translate.Credentials) (*translate.Result, error) {
	if creds.AccessToken == "" {
		return nil, &translate.PlatformError{
			Platform: model.PlatformGoogle,
			Status:   http.StatusUnauthorized,
			Message:  "missing Google access token",
		}
	}

	api, err := p.newAPI(ctx, creds.AccessToken)
	if err != nil {
		return nil, platformError("failed to create API client", err)
	}

	shell, err := api.CreateForm(ctx, form.Title)
	if err != nil {
		p.log.Error("failed to create form shell", "title", form.Title, "error", err)
		return nil, platformError("failed to create form", err)
	}
	formID := shell.FormId

	result := &translate.Result{
		ID:    formID,
		URL:   FormURL(formID),
		Items: p.insertItems(ctx, api, formID, form),
	}
	if failed := result.Failed(); failed > 0 {
		p.log.Warn("form created with missing questions", "formId", formID, "failed", failed, "total", len(result.Items))
	}

	if creds.CreateSpreadsheet {
		sheetID, err := p.provisionSheet(ctx, api, formID, form.Title)
		if err != nil {
			return nil, err
		}
		result.SpreadsheetID = sheetID
		result.SpreadsheetURL = SpreadsheetURL(sheetID)
	}

	p.log.Info("google form published", "formId", formID, "questions", len(result.Items)-result.Failed())
	return result, nil
}

// insertItems issues one createItem per question. The target index is the
// count of items accepted so far, so order is kept when one fails.
func (p *Publisher) insertItems(ctx context.Context, api API, formID string, form *model.Form) []model.ItemOutcome {
	items := BuildItems(form)
	outcomes := make([]model.ItemOutcome, 0, len(items))
	accepted := 0

	for i, item := range items {
		outcome := model.ItemOutcome{Index: i, Title: item.Title}
		if err := api.CreateItem(ctx, formID, item, accepted); err != nil {
			p.log.Warn("failed to add question", "formId", formID, "index", i, "title", item.Title, "error", err)
			outcome.Error = err.Error()
		} else {
			outcome.OK = true
			accepted++
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// provisionSheet creates the response spreadsheet and writes its header row
// from the titles the form actually ended up with.
func (p *Publisher) provisionSheet(ctx context.Context, api API, formID, title string) (string, error) {
	sheet, err := api.CreateSpreadsheet(ctx, title+" (Responses)")
	if err != nil {
		p.log.Error("failed to create spreadsheet", "formId", formID, "error", err)
		return "", platformError("failed to create spreadsheet", err)
	}

	created, err := api.GetForm(ctx, formID)
	if err != nil {
		return "", platformError("failed to read form items", err)
	}

	header := []interface{}{"Timestamp", "Email"}
	for _, item := range created.Items {
		if item == nil {
			continue
		}
		header = append(header, item.Title)
	}

	if err := api.WriteRow(ctx, sheet.SpreadsheetId, headerRange, header); err != nil {
		p.log.Error("failed to write sheet header", "spreadsheetId", sheet.SpreadsheetId, "error", err)
		return "", platformError("failed to write spreadsheet header", err)
	}
	return sheet.SpreadsheetId, nil
}

// platformError keeps the Google status code when the API reported one
func platformError(msg string, err error) *translate.PlatformError {
	perr := &translate.PlatformError{Platform: model.PlatformGoogle, Message: msg, Err: err}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		perr.Status = gerr.Code
		perr.Detail = gerr.Message
	}
	return perr
}
