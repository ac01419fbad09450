package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"formsmith/internal/cache"
	"formsmith/internal/config"
	"formsmith/internal/logger"
	"formsmith/internal/model"
	"formsmith/internal/repository"
	"formsmith/internal/translate"
)

type stubGenerator struct {
	form *model.Form
	err  error
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (*model.Form, error) {
	if g.err != nil {
		return nil, g.err
	}
	f := *g.form
	f.Questions = append([]model.Question(nil), g.form.Questions...)
	return &f, nil
}

type fakeTranslator struct {
	platform model.Platform
	err      error

	mu    sync.Mutex
	calls int
	creds translate.Credentials
}

func (f *fakeTranslator) Platform() model.Platform { return f.platform }

func (f *fakeTranslator) Publish(ctx context.Context, form *model.Form, creds translate.Credentials) (*translate.Result, error) {
	f.mu.Lock()
	f.calls++
	f.creds = creds
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &translate.Result{ID: string(f.platform) + "-id", URL: "https://example.com/" + string(f.platform)}, nil
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	states []model.PublishState
}

func (b *recordingBroadcaster) BroadcastToForm(formID, msgType string, payload interface{}) {
	if msgType != MsgPublishStatus {
		return
	}
	b.mu.Lock()
	b.states = append(b.states, payload.(*model.PublishStatus).State)
	b.mu.Unlock()
}

type fixture struct {
	forms    *FormService
	publish  *PublishService
	chat     *ChatService
	statuses cache.PublishStatusCache
}

var sampleForm = &model.Form{
	Title:  "Feedback",
	Source: model.FormSourceAI,
	Questions: []model.Question{
		{Text: "Name", Type: model.QuestionTypeShortAnswer, Required: true},
		{Text: "Email", Type: model.QuestionTypeEmail},
	},
}

func newFixture(translators ...translate.Translator) *fixture {
	log := logger.Nop()
	chatCache := cache.NewMemoryChatCache()
	statuses := cache.NewMemoryPublishStatusCache()
	forms := NewFormService(&stubGenerator{form: sampleForm}, repository.NewMemoryFormStore(), repository.NewMemoryResponseStore(), chatCache, log)
	return &fixture{
		forms:    forms,
		publish:  NewPublishService(forms, repository.NewMemoryPublicationStore(), statuses, log, translators...),
		chat:     NewChatService(chatCache, forms),
		statuses: statuses,
	}
}

func TestAuthLoginAndValidate(t *testing.T) {
	auth := NewAuthService(&config.Config{UserName: "admin", UserPassword: "pw", JWTSecret: "secret"})

	if _, err := auth.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got=%v", err)
	}

	resp, err := auth.Login("admin", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := auth.ValidateUserToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateUserToken: %v", err)
	}
	if claims.UserID != resp.UserID {
		t.Fatalf("user id: want=%q got=%q", resp.UserID, claims.UserID)
	}

	again, _ := auth.Login("admin", "pw")
	if again.UserID != resp.UserID {
		t.Fatalf("user id must be stable across logins")
	}

	other := NewAuthService(&config.Config{UserName: "admin", UserPassword: "pw", JWTSecret: "different"})
	if _, err := other.ValidateUserToken(resp.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("token signed with another secret must be rejected, got=%v", err)
	}
}

func TestGenerateAnonymousIsNotStored(t *testing.T) {
	fx := newFixture()
	form, err := fx.forms.Generate(context.Background(), "", "a feedback form")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if form.ID != "" {
		t.Fatalf("anonymous generation must not persist, got id=%q", form.ID)
	}
	for _, q := range form.Questions {
		if q.ID == "" {
			t.Fatalf("questions must carry ids")
		}
	}
}

func TestGenerateStoresAndRecordsChat(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()

	form, err := fx.forms.Generate(ctx, "u1", "a feedback form")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if form.ID == "" || form.OwnerID != "u1" {
		t.Fatalf("form must be stored for its owner: %+v", form)
	}

	history, err := fx.chat.History(ctx, "u1", form.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 || history[0].Role != model.ChatRoleUser || history[0].Content != "a feedback form" {
		t.Fatalf("unexpected history: %+v", history)
	}

	if _, err := fx.chat.History(ctx, "u2", form.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("want ErrForbidden for another user, got=%v", err)
	}
}

func TestGenerateRejectsEmptyPrompt(t *testing.T) {
	_, err := newFixture().forms.Generate(context.Background(), "u1", "   ")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want *ValidationError, got=%v", err)
	}
}

func TestSubmitResponse(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()
	form, _ := fx.forms.Generate(ctx, "u1", "feedback")
	nameID, emailID := form.Questions[0].ID, form.Questions[1].ID

	if _, err := fx.forms.SubmitResponse(ctx, form.ID, map[string]string{emailID: "bad"}); err == nil {
		t.Fatalf("missing required answer and bad email must be rejected")
	}

	resp, err := fx.forms.SubmitResponse(ctx, form.ID, map[string]string{nameID: "Ada", emailID: "ada@example.com"})
	if err != nil {
		t.Fatalf("SubmitResponse: %v", err)
	}
	if resp.ID == "" {
		t.Fatalf("response must get an id")
	}

	list, err := fx.forms.Responses(ctx, form.ID, "u1")
	if err != nil || len(list) != 1 {
		t.Fatalf("Responses: got=%d err=%v", len(list), err)
	}

	if _, err := fx.forms.SubmitResponse(ctx, "missing", nil); !errors.Is(err, ErrFormNotFound) {
		t.Fatalf("want ErrFormNotFound, got=%v", err)
	}
}

func TestSaveRequiresTitleAndQuestions(t *testing.T) {
	fx := newFixture()
	_, err := fx.forms.Save(context.Background(), "u1", &model.Form{Title: "x"})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "questions" {
		t.Fatalf("want questions ValidationError, got=%v", err)
	}
}

func TestValidateFormRejectsBlankTitle(t *testing.T) {
	form := &model.Form{Title: "   ", Questions: []model.Question{{Text: "Q", Type: model.QuestionTypeShortAnswer}}}
	var verr *ValidationError
	if err := ValidateForm(form); !errors.As(err, &verr) || verr.Field != "title" {
		t.Fatalf("want title ValidationError, got=%v", err)
	}
}

func TestPublishSuccessTransitions(t *testing.T) {
	ctx := context.Background()
	tr := &fakeTranslator{platform: model.PlatformTypeform}
	fx := newFixture(tr)
	b := &recordingBroadcaster{}
	fx.publish.SetBroadcaster(b)

	form, _ := fx.forms.Generate(ctx, "u1", "feedback")
	pub, err := fx.publish.Publish(ctx, form.ID, "u1", model.PlatformTypeform, translate.Credentials{})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if pub.ExternalID != "typeform-id" || pub.URL != "https://example.com/typeform" {
		t.Fatalf("publication: %+v", pub)
	}

	want := []model.PublishState{model.PublishSubmitting, model.PublishSuccess}
	if len(b.states) != 2 || b.states[0] != want[0] || b.states[1] != want[1] {
		t.Fatalf("transitions: want=%v got=%v", want, b.states)
	}

	status, _ := fx.publish.Status(ctx, form.ID, "u1", model.PlatformTypeform)
	if status.State != model.PublishSuccess || status.URL != pub.URL {
		t.Fatalf("status: %+v", status)
	}

	pubs, _ := fx.publish.Publications(ctx, form.ID, "u1")
	if len(pubs) != 1 {
		t.Fatalf("publications: want=1 got=%d", len(pubs))
	}
}

func TestPublishFailureRecordsDetail(t *testing.T) {
	ctx := context.Background()
	tr := &fakeTranslator{
		platform: model.PlatformSurveyMonkey,
		err:      &translate.PlatformError{Platform: model.PlatformSurveyMonkey, Status: http.StatusBadRequest, Message: "rejected", Detail: "Collector limit reached"},
	}
	fx := newFixture(tr)

	form, _ := fx.forms.Generate(ctx, "u1", "feedback")
	_, err := fx.publish.Publish(ctx, form.ID, "u1", model.PlatformSurveyMonkey, translate.Credentials{})
	var perr *translate.PlatformError
	if !errors.As(err, &perr) {
		t.Fatalf("want *PlatformError, got=%v", err)
	}

	status, _ := fx.publish.Status(ctx, form.ID, "u1", model.PlatformSurveyMonkey)
	if status.State != model.PublishFailed || status.Error != "Collector limit reached" {
		t.Fatalf("status: %+v", status)
	}
}

func TestStatusIdleBeforePublish(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(&fakeTranslator{platform: model.PlatformGoogle})
	form, _ := fx.forms.Generate(ctx, "u1", "feedback")

	status, err := fx.publish.Status(ctx, form.ID, "u1", model.PlatformGoogle)
	if err != nil || status.State != model.PublishIdle {
		t.Fatalf("want idle, got=%+v err=%v", status, err)
	}
}

func TestPublishManyIndependentOutcomes(t *testing.T) {
	ctx := context.Background()
	google := &fakeTranslator{platform: model.PlatformGoogle}
	typeform := &fakeTranslator{platform: model.PlatformTypeform, err: &translate.PlatformError{Platform: model.PlatformTypeform, Message: "request failed", Err: errors.New("timeout")}}
	sm := &fakeTranslator{platform: model.PlatformSurveyMonkey}
	fx := newFixture(google, typeform, sm)

	form, _ := fx.forms.Generate(ctx, "u1", "feedback")
	creds := translate.Credentials{AccessToken: "g-token", CreateSpreadsheet: true}
	outcomes, err := fx.publish.PublishMany(ctx, form.ID, "u1", []model.Platform{model.PlatformGoogle, model.PlatformTypeform, model.PlatformSurveyMonkey}, creds)
	if err != nil {
		t.Fatalf("PublishMany: %v", err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("outcomes: want=3 got=%d", len(outcomes))
	}
	if outcomes[0].Publication == nil || outcomes[2].Publication == nil {
		t.Fatalf("google and surveymonkey must succeed: %+v", outcomes)
	}
	if outcomes[1].Publication != nil || outcomes[1].Status != http.StatusInternalServerError || outcomes[1].Details != "timeout" {
		t.Fatalf("typeform outcome: %+v", outcomes[1])
	}
	if google.creds.AccessToken != "g-token" || !google.creds.CreateSpreadsheet {
		t.Fatalf("credentials not forwarded: %+v", google.creds)
	}
}

func TestPublishManyRejectsUnknownAndDuplicatePlatforms(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(&fakeTranslator{platform: model.PlatformGoogle})
	form, _ := fx.forms.Generate(ctx, "u1", "feedback")

	for _, platforms := range [][]model.Platform{
		nil,
		{model.PlatformTypeform},
		{model.PlatformGoogle, model.PlatformGoogle},
	} {
		_, err := fx.publish.PublishMany(ctx, form.ID, "u1", platforms, translate.Credentials{})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("PublishMany(%v): want *ValidationError, got=%v", platforms, err)
		}
	}
}

func TestPublishDirectValidatesForm(t *testing.T) {
	tr := &fakeTranslator{platform: model.PlatformTypeform}
	fx := newFixture(tr)

	_, err := fx.publish.PublishDirect(context.Background(), model.PlatformTypeform, &model.Form{Title: "x"}, translate.Credentials{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want *ValidationError, got=%v", err)
	}
	if tr.calls != 0 {
		t.Fatalf("translator must not run for an invalid form")
	}

	form := &model.Form{Title: "x", Questions: []model.Question{{Text: "q", Type: "banana"}}}
	res, err := fx.publish.PublishDirect(context.Background(), model.PlatformTypeform, form, translate.Credentials{})
	if err != nil || res.ID != "typeform-id" {
		t.Fatalf("PublishDirect: res=%+v err=%v", res, err)
	}
	if form.Questions[0].Type != model.QuestionTypeShortAnswer {
		t.Fatalf("types must be coerced before translating")
	}
}
