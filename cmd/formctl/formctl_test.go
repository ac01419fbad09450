package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"formsmith/internal/model"
	"formsmith/internal/translate/typeform"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestReadFormYAMLUsesJSONFieldNames(t *testing.T) {
	path := writeFile(t, "form.yaml", `
title: Offsite
questions:
  - text: How was it?
    type: rating
    low: 1
    high: 10
    lowLabel: Bad
  - text: Pick one
    type: multiple_choice
    options: [A, B]
`)
	form, err := readForm(path)
	if err != nil {
		t.Fatalf("readForm: %v", err)
	}
	if form.Title != "Offsite" || len(form.Questions) != 2 {
		t.Fatalf("unexpected form: %+v", form)
	}
	if q := form.Questions[0]; q.High != 10 || q.LowLabel != "Bad" {
		t.Fatalf("rating fields lost: %+v", q)
	}
	if got := form.Questions[1].Options; len(got) != 2 {
		t.Fatalf("options: %v", got)
	}
}

func TestReadFormJSON(t *testing.T) {
	path := writeFile(t, "form.json", `{"title":"T","questions":[{"text":"Email","type":"email"}]}`)
	form, err := readForm(path)
	if err != nil {
		t.Fatalf("readForm: %v", err)
	}
	if form.Questions[0].Type != model.QuestionTypeEmail {
		t.Fatalf("type: %q", form.Questions[0].Type)
	}
}

func TestReadFormRejectsBadJSON(t *testing.T) {
	if _, err := readForm(writeFile(t, "form.json", `{`)); err == nil {
		t.Fatalf("expected error")
	}
}

func TestBuildPayloadCoercesAliases(t *testing.T) {
	form := &model.Form{Title: "T", Questions: []model.Question{{Text: "Pick", Type: "multiple_choice", Options: []string{"A"}}}}
	payload, err := buildPayload(model.PlatformTypeform, form)
	if err != nil {
		t.Fatalf("buildPayload: %v", err)
	}
	req, ok := payload.(typeform.CreateFormRequest)
	if !ok || len(req.Fields) != 1 || req.Fields[0].Type != "multiple_choice" {
		t.Fatalf("payload: %+v", payload)
	}
}

func TestWriteOutputYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := writeOutput(&buf, "yaml", &model.Form{Title: "T"}); err != nil {
		t.Fatalf("writeOutput: %v", err)
	}
	if !strings.Contains(buf.String(), "title: T") {
		t.Fatalf("yaml output: %s", buf.String())
	}
	if err := writeOutput(&buf, "xml", nil); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
