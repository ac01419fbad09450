package typeform

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"formsmith/internal/logger"
	"formsmith/internal/model"
	"formsmith/internal/translate"
)

func TestFieldTypeMapping(t *testing.T) {
	want := map[model.QuestionType]string{
		model.QuestionTypeShortAnswer:    "short_text",
		model.QuestionTypeParagraph:      "long_text",
		model.QuestionTypeEmail:          "email",
		model.QuestionTypeMultipleChoice: "multiple_choice",
		model.QuestionTypeCheckbox:       "short_text",
		model.QuestionTypeDropdown:       "short_text",
		model.QuestionTypeDate:           "date",
		model.QuestionTypeTime:           "time",
		model.QuestionTypeRating:         "rating",
		model.QuestionTypeFileUpload:     "short_text",
		model.QuestionTypeGrid:           "short_text",
		model.QuestionTypeCheckboxGrid:   "short_text",
	}
	for _, qt := range model.QuestionTypes {
		f := BuildField(model.Question{Text: "q", Type: qt})
		if f.Type != want[qt] {
			t.Fatalf("%s: want=%q got=%q", qt, want[qt], f.Type)
		}
	}
}

func TestBuildFieldPlaceholderChoices(t *testing.T) {
	f := BuildField(model.Question{Text: "Pick", Type: model.QuestionTypeMultipleChoice, Options: []string{}})
	if f.Properties == nil || len(f.Properties.Choices) != 2 {
		t.Fatalf("want 2 placeholder choices, got=%+v", f.Properties)
	}
	if f.Properties.Choices[0].Label != "Option 1" || f.Properties.Choices[1].Label != "Option 2" {
		t.Fatalf("placeholder labels: got=%+v", f.Properties.Choices)
	}
}

func TestBuildFieldCheckboxDropsChoices(t *testing.T) {
	f := BuildField(model.Question{Text: "Pick", Type: model.QuestionTypeCheckbox, Options: []string{"A", "B"}})
	if f.Properties != nil {
		t.Fatalf("short_text fallback must not carry choices: %+v", f.Properties)
	}
}

func TestPublishSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/forms" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tf-token" {
			t.Errorf("missing bearer token")
		}
		var req CreateFormRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.Title != "Survey" || len(req.Fields) != 2 || !req.Fields[0].Validations.Required {
			t.Errorf("unexpected body: %+v", req)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"tf1","_links":{"display":"https://example.typeform.com/to/tf1"}}`))
	}))
	defer srv.Close()

	p := NewPublisher(srv.URL, "tf-token", 0, 0, logger.Nop())
	res, err := p.Publish(context.Background(), &model.Form{
		Title: "Survey",
		Questions: []model.Question{
			{Text: "Name", Type: model.QuestionTypeShortAnswer, Required: true},
			{Text: "Rate", Type: model.QuestionTypeRating},
		},
	}, translate.Credentials{})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if res.ID != "tf1" || res.URL != "https://example.typeform.com/to/tf1" {
		t.Fatalf("result: got=%+v", res)
	}
}

func TestPublishSurfacesDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"VALIDATION_ERROR","description":"title is required"}`))
	}))
	defer srv.Close()

	p := NewPublisher(srv.URL, "tf-token", 0, 0, logger.Nop())
	_, err := p.Publish(context.Background(), &model.Form{Title: "x"}, translate.Credentials{})
	var perr *translate.PlatformError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *PlatformError, got=%T", err)
	}
	if perr.HTTPStatus() != http.StatusBadRequest || perr.Detail != "title is required" {
		t.Fatalf("unexpected error: %+v", perr)
	}
}

func TestPublishNotConfigured(t *testing.T) {
	p := NewPublisher("http://unused", "", 0, 0, logger.Nop())
	_, err := p.Publish(context.Background(), &model.Form{Title: "x"}, translate.Credentials{})
	var perr *translate.PlatformError
	if !errors.As(err, &perr) || perr.Platform != model.PlatformTypeform {
		t.Fatalf("expected typeform PlatformError, got=%v", err)
	}
}
