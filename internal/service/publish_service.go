package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"formsmith/internal/cache"
	"formsmith/internal/logger"
	"formsmith/internal/model"
	"formsmith/internal/repository"
	"formsmith/internal/translate"
)

// MsgPublishStatus is the WebSocket message type for state transitions
const MsgPublishStatus = "publish_status"

const maxConcurrentPublishes = 3

// PlatformOutcome is one platform's result within a multi-platform publish
type PlatformOutcome struct {
	Platform    model.Platform     `json:"platform"`
	Publication *model.Publication `json:"publication,omitempty"`
	Error       string             `json:"error,omitempty"`
	Details     string             `json:"details,omitempty"`
	Status      int                `json:"status,omitempty"`
}

// PublishService runs translators and tracks the publish state machine
type PublishService struct {
	translators  map[model.Platform]translate.Translator
	forms        *FormService
	publications repository.PublicationStore
	statuses     cache.PublishStatusCache
	broadcaster  Broadcaster
	log          *logger.Logger
}

// NewPublishService creates a new publish service
func NewPublishService(
	forms *FormService,
	publications repository.PublicationStore,
	statuses cache.PublishStatusCache,
	log *logger.Logger,
	translators ...translate.Translator,
) *PublishService {
	byPlatform := make(map[model.Platform]translate.Translator, len(translators))
	for _, t := range translators {
		byPlatform[t.Platform()] = t
	}
	return &PublishService{
		translators:  byPlatform,
		forms:        forms,
		publications: publications,
		statuses:     statuses,
		broadcaster:  nopBroadcaster{},
		log:          log.With("component", "publish"),
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *PublishService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

func (s *PublishService) translator(p model.Platform) (translate.Translator, error) {
	t, ok := s.translators[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlatform, p)
	}
	return t, nil
}

// Publish sends a stored form to one platform, moving its status through
// submitting to success or failed and recording the publication.
func (s *PublishService) Publish(ctx context.Context, formID, ownerID string, platform model.Platform, creds translate.Credentials) (*model.Publication, error) {
	t, err := s.translator(platform)
	if err != nil {
		return nil, err
	}
	form, err := s.forms.GetOwned(ctx, formID, ownerID)
	if err != nil {
		return nil, err
	}
	if err := ValidateForm(form); err != nil {
		return nil, err
	}

	s.setStatus(ctx, &model.PublishStatus{FormID: formID, Platform: platform, State: model.PublishSubmitting})

	res, err := t.Publish(ctx, form, creds)
	if err != nil {
		s.log.Error("publish failed", "formId", formID, "platform", platform, "error", err)
		s.setStatus(ctx, &model.PublishStatus{FormID: formID, Platform: platform, State: model.PublishFailed, Error: errorDetail(err)})
		return nil, err
	}

	pub := &model.Publication{
		FormID:         formID,
		Platform:       platform,
		ExternalID:     res.ID,
		URL:            res.URL,
		SpreadsheetID:  res.SpreadsheetID,
		SpreadsheetURL: res.SpreadsheetURL,
		Items:          res.Items,
	}
	if err := s.publications.Save(ctx, pub); err != nil {
		// the platform form exists; losing the record must not report failure
		s.log.Warn("failed to record publication", "formId", formID, "platform", platform, "error", err)
	}

	s.setStatus(ctx, &model.PublishStatus{FormID: formID, Platform: platform, State: model.PublishSuccess, ID: res.ID, URL: res.URL})
	s.log.Info("form published", "formId", formID, "platform", platform, "externalId", res.ID)
	return pub, nil
}

// PublishMany publishes to several platforms concurrently. Every platform
// gets its own outcome; one failing does not cancel the others.
func (s *PublishService) PublishMany(ctx context.Context, formID, ownerID string, platforms []model.Platform, creds translate.Credentials) ([]PlatformOutcome, error) {
	if len(platforms) == 0 {
		return nil, &ValidationError{Field: "platforms", Message: "at least one platform is required"}
	}
	seen := make(map[model.Platform]bool, len(platforms))
	for _, p := range platforms {
		if _, err := s.translator(p); err != nil {
			return nil, &ValidationError{Field: "platforms", Message: err.Error()}
		}
		if seen[p] {
			return nil, &ValidationError{Field: "platforms", Message: fmt.Sprintf("duplicate platform %s", p)}
		}
		seen[p] = true
	}

	form, err := s.forms.GetOwned(ctx, formID, ownerID)
	if err != nil {
		return nil, err
	}
	if err := ValidateForm(form); err != nil {
		return nil, err
	}

	outcomes := make([]PlatformOutcome, len(platforms))
	var g errgroup.Group
	g.SetLimit(maxConcurrentPublishes)
	for i, p := range platforms {
		i, p := i, p
		g.Go(func() error {
			out := PlatformOutcome{Platform: p}
			pub, err := s.Publish(ctx, formID, ownerID, p, creds)
			if err != nil {
				out.Error = err.Error()
				var perr *translate.PlatformError
				if errors.As(err, &perr) {
					out.Error = perr.Message
					out.Details = perr.Details()
					out.Status = perr.HTTPStatus()
				}
			} else {
				out.Publication = pub
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// PublishDirect runs a translator on an unsaved form (stateless endpoints)
func (s *PublishService) PublishDirect(ctx context.Context, platform model.Platform, form *model.Form, creds translate.Credentials) (*translate.Result, error) {
	t, err := s.translator(platform)
	if err != nil {
		return nil, err
	}
	if err := ValidateForm(form); err != nil {
		return nil, err
	}
	for i := range form.Questions {
		form.Questions[i].Type = model.CoerceQuestionType(string(form.Questions[i].Type))
	}

	res, err := t.Publish(ctx, form, creds)
	if err != nil {
		s.log.Error("direct publish failed", "platform", platform, "error", err)
		return nil, err
	}
	return res, nil
}

// Status returns the latest publish state, idle when never published
func (s *PublishService) Status(ctx context.Context, formID, ownerID string, platform model.Platform) (*model.PublishStatus, error) {
	if _, err := s.translator(platform); err != nil {
		return nil, err
	}
	if _, err := s.forms.GetOwned(ctx, formID, ownerID); err != nil {
		return nil, err
	}
	status, err := s.statuses.Get(ctx, formID, platform)
	if err != nil {
		return nil, err
	}
	if status == nil {
		status = &model.PublishStatus{FormID: formID, Platform: platform, State: model.PublishIdle}
	}
	return status, nil
}

// Publications lists where an owned form has been published
func (s *PublishService) Publications(ctx context.Context, formID, ownerID string) ([]*model.Publication, error) {
	if _, err := s.forms.GetOwned(ctx, formID, ownerID); err != nil {
		return nil, err
	}
	return s.publications.ListByForm(ctx, formID)
}

func (s *PublishService) setStatus(ctx context.Context, status *model.PublishStatus) {
	status.UpdatedAt = time.Now()
	if err := s.statuses.Set(ctx, status); err != nil {
		s.log.Warn("failed to cache publish status", "formId", status.FormID, "platform", status.Platform, "error", err)
	}
	s.broadcaster.BroadcastToForm(status.FormID, MsgPublishStatus, status)
}

func errorDetail(err error) string {
	var perr *translate.PlatformError
	if errors.As(err, &perr) && perr.Detail != "" {
		return perr.Detail
	}
	return err.Error()
}
