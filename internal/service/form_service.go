package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"formsmith/internal/cache"
	"formsmith/internal/logger"
	"formsmith/internal/model"
	"formsmith/internal/repository"
)

// FormGenerator turns a description into a form
type FormGenerator interface {
	Generate(ctx context.Context, prompt string) (*model.Form, error)
}

// FormService orchestrates generation, storage and hosted responses
type FormService struct {
	generator FormGenerator
	forms     repository.FormStore
	responses repository.ResponseStore
	chat      cache.ChatCache
	log       *logger.Logger
}

// NewFormService creates a new form service
func NewFormService(
	generator FormGenerator,
	forms repository.FormStore,
	responses repository.ResponseStore,
	chat cache.ChatCache,
	log *logger.Logger,
) *FormService {
	return &FormService{
		generator: generator,
		forms:     forms,
		responses: responses,
		chat:      chat,
		log:       log.With("component", "forms"),
	}
}

// Generate builds a form from a prompt. Anonymous callers get the form back
// without persistence; a signed-in owner gets it stored along with the
// prompt/response turn of the chat history.
func (s *FormService) Generate(ctx context.Context, ownerID, prompt string) (*model.Form, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, &ValidationError{Field: "prompt", Message: "is required"}
	}

	form, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	assignQuestionIDs(form)

	if ownerID == "" {
		return form, nil
	}

	form.OwnerID = ownerID
	if _, err := s.forms.Put(ctx, form); err != nil {
		return nil, fmt.Errorf("store form: %w", err)
	}

	now := time.Now().UnixMilli()
	err = s.chat.Append(ctx, form.ID,
		model.ChatMessage{Role: model.ChatRoleUser, Content: prompt, Timestamp: now},
		model.ChatMessage{Role: model.ChatRoleAssistant, Content: summarize(form), Timestamp: now},
	)
	if err != nil {
		// history is best effort; the form itself is stored
		s.log.Warn("failed to record chat history", "formId", form.ID, "error", err)
	}

	s.log.Info("form generated", "formId", form.ID, "ownerId", ownerID, "source", form.Source)
	return form, nil
}

// Save stores a hand-edited form. Updating an existing form requires
// ownership.
func (s *FormService) Save(ctx context.Context, ownerID string, form *model.Form) (*model.Form, error) {
	if err := ValidateForm(form); err != nil {
		return nil, err
	}

	if form.ID != "" {
		existing, err := s.GetOwned(ctx, form.ID, ownerID)
		if err != nil {
			return nil, err
		}
		form.CreatedAt = existing.CreatedAt
	}
	if form.Source == "" {
		form.Source = model.FormSourceManual
	}
	for i := range form.Questions {
		form.Questions[i].Type = model.CoerceQuestionType(string(form.Questions[i].Type))
	}
	assignQuestionIDs(form)
	form.OwnerID = ownerID

	if _, err := s.forms.Put(ctx, form); err != nil {
		return nil, fmt.Errorf("store form: %w", err)
	}
	return form, nil
}

// Get returns a form by id
func (s *FormService) Get(ctx context.Context, id string) (*model.Form, error) {
	form, err := s.forms.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrFormNotFound
	}
	return form, nil
}

// GetOwned returns a form only if ownerID owns it
func (s *FormService) GetOwned(ctx context.Context, id, ownerID string) (*model.Form, error) {
	form, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if form.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return form, nil
}

// ListByOwner returns every form of a user
func (s *FormService) ListByOwner(ctx context.Context, ownerID string) ([]*model.Form, error) {
	return s.forms.ListByOwner(ctx, ownerID)
}

// SubmitResponse validates and stores a respondent's answers
func (s *FormService) SubmitResponse(ctx context.Context, formID string, answers map[string]string) (*model.FormResponse, error) {
	form, err := s.Get(ctx, formID)
	if err != nil {
		return nil, err
	}
	if err := ValidateAnswers(form, answers); err != nil {
		return nil, err
	}

	resp := &model.FormResponse{FormID: formID, Answers: answers}
	if err := s.responses.Add(ctx, resp); err != nil {
		return nil, fmt.Errorf("store response: %w", err)
	}

	s.log.Debug("response stored", "formId", formID, "responseId", resp.ID)
	return resp, nil
}

// Responses lists the answers collected for an owned form
func (s *FormService) Responses(ctx context.Context, formID, ownerID string) ([]*model.FormResponse, error) {
	if _, err := s.GetOwned(ctx, formID, ownerID); err != nil {
		return nil, err
	}
	return s.responses.ListByForm(ctx, formID)
}

// assignQuestionIDs gives every question a stable id used to key answers
func assignQuestionIDs(form *model.Form) {
	seen := make(map[string]bool, len(form.Questions))
	for i := range form.Questions {
		id := form.Questions[i].ID
		if id == "" || seen[id] {
			id = "q_" + uuid.New().String()[:8]
			form.Questions[i].ID = id
		}
		seen[id] = true
	}
}

func summarize(form *model.Form) string {
	return fmt.Sprintf("Created %q with %d questions.", form.Title, len(form.Questions))
}
