package service

import (
	"errors"
	"fmt"
	"strings"

	"formsmith/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrFormNotFound       = errors.New("form not found")
	ErrForbidden          = errors.New("form belongs to another user")
	ErrUnknownPlatform    = errors.New("unknown platform")
)

// ValidationError is a malformed inbound request
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AnswersError lists every rejected answer of a submission
type AnswersError struct {
	Errors []model.AnswerError
}

func (e *AnswersError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("invalid answer for %s: %s", e.Errors[0].QuestionID, e.Errors[0].Message)
	}
	return fmt.Sprintf("%d answers are invalid", len(e.Errors))
}

// ValidateForm checks the minimum a platform needs: a title and at least
// one question.
func ValidateForm(form *model.Form) error {
	if form == nil {
		return &ValidationError{Message: "form is required"}
	}
	if strings.TrimSpace(form.Title) == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if len(form.Questions) == 0 {
		return &ValidationError{Field: "questions", Message: "at least one question is required"}
	}
	return nil
}
