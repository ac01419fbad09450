package app

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"formsmith/internal/config"
	"formsmith/internal/logger"
	"formsmith/internal/model"
	"formsmith/internal/translate"
)

func TestTranslatorsCoverEveryPlatform(t *testing.T) {
	got := map[model.Platform]bool{}
	for _, tr := range Translators(&config.Config{}, logger.Nop()) {
		got[tr.Platform()] = true
	}
	for _, p := range model.Platforms {
		if !got[p] {
			t.Errorf("no translator for %s", p)
		}
	}
}

func TestUnconfiguredPlatformsReportServiceUnavailable(t *testing.T) {
	a := New(&config.Config{JWTSecret: "s"}, &config.AIConfig{}, MemoryStores(), logger.Nop())
	form := &model.Form{Title: "T", Questions: []model.Question{{Text: "Q", Type: model.QuestionTypeShortAnswer}}}

	for _, p := range []model.Platform{model.PlatformTypeform, model.PlatformSurveyMonkey} {
		_, err := a.PublishService.PublishDirect(context.Background(), p, form, translate.Credentials{})
		var perr *translate.PlatformError
		if !errors.As(err, &perr) || perr.HTTPStatus() != http.StatusServiceUnavailable {
			t.Fatalf("%s: want 503 platform error, got=%v", p, err)
		}
	}
}

func TestGenerateWithoutAIKeyUsesFallback(t *testing.T) {
	a := New(&config.Config{JWTSecret: "s"}, &config.AIConfig{}, MemoryStores(), logger.Nop())
	form, err := a.FormService.Generate(context.Background(), "", "Contact form with name and email")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if form.Source != model.FormSourceFallback || len(form.Questions) == 0 {
		t.Fatalf("unexpected form: %+v", form)
	}
}
