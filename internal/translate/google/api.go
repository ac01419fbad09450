package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/forms/v1"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// API is the subset of the Forms and Sheets APIs the publisher uses
type API interface {
	CreateForm(ctx context.Context, title string) (*forms.Form, error)
	CreateItem(ctx context.Context, formID string, item *forms.Item, index int) error
	GetForm(ctx context.Context, formID string) (*forms.Form, error)
	CreateSpreadsheet(ctx context.Context, title string) (*sheets.Spreadsheet, error)
	WriteRow(ctx context.Context, spreadsheetID, rng string, row []interface{}) error
}

// APIFactory builds an API client acting with the caller's access token
type APIFactory func(ctx context.Context, accessToken string) (API, error)

type serviceAPI struct {
	forms  *forms.Service
	sheets *sheets.Service
}

// NewAPI creates Forms and Sheets services authorized with a delegated
// OAuth access token. Extra options are appended (endpoints in tests).
func NewAPI(ctx context.Context, accessToken string, opts ...option.ClientOption) (API, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	all := append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)

	formsSvc, err := forms.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("forms service: %w", err)
	}
	sheetsSvc, err := sheets.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &serviceAPI{forms: formsSvc, sheets: sheetsSvc}, nil
}

// DefaultAPIFactory is NewAPI with no extra options
func DefaultAPIFactory(ctx context.Context, accessToken string) (API, error) {
	return NewAPI(ctx, accessToken)
}

func (s *serviceAPI) CreateForm(ctx context.Context, title string) (*forms.Form, error) {
	// Forms rejects items on create; only the info block is accepted here.
	return s.forms.Forms.Create(&forms.Form{
		Info: &forms.Info{Title: title, DocumentTitle: title},
	}).Context(ctx).Do()
}

func (s *serviceAPI) CreateItem(ctx context.Context, formID string, item *forms.Item, index int) error {
	req := &forms.BatchUpdateFormRequest{
		Requests: []*forms.Request{{
			CreateItem: &forms.CreateItemRequest{
				Item: item,
				Location: &forms.Location{
					Index:           int64(index),
					ForceSendFields: []string{"Index"},
				},
			},
		}},
	}
	_, err := s.forms.Forms.BatchUpdate(formID, req).Context(ctx).Do()
	return err
}

func (s *serviceAPI) GetForm(ctx context.Context, formID string) (*forms.Form, error) {
	return s.forms.Forms.Get(formID).Context(ctx).Do()
}

func (s *serviceAPI) CreateSpreadsheet(ctx context.Context, title string) (*sheets.Spreadsheet, error) {
	return s.sheets.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}).Context(ctx).Do()
}

func (s *serviceAPI) WriteRow(ctx context.Context, spreadsheetID, rng string, row []interface{}) error {
	_, err := s.sheets.Spreadsheets.Values.Update(spreadsheetID, rng, &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("RAW").Context(ctx).Do()
	return err
}
