package service

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"formsmith/internal/model"
)

var (
	ErrAnswerRequired = errors.New("This field is required.")
	ErrInvalidEmail   = errors.New("Please enter a valid email address.")
	ErrInvalidDate    = errors.New("Please enter a date as YYYY-MM-DD.")
	ErrInvalidTime    = errors.New("Please enter a time as HH:MM.")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateAnswer checks one answer against its question. Empty answers to
// optional questions are always valid.
func ValidateAnswer(answer string, q model.Question) error {
	if strings.TrimSpace(answer) == "" {
		if q.Required {
			return ErrAnswerRequired
		}
		return nil
	}

	switch q.Type {
	case model.QuestionTypeEmail:
		if !emailPattern.MatchString(answer) {
			return ErrInvalidEmail
		}
	case model.QuestionTypeMultipleChoice, model.QuestionTypeDropdown:
		if len(q.Options) > 0 && !contains(q.Options, answer) {
			return optionsError(q.Options)
		}
	case model.QuestionTypeCheckbox:
		if len(q.Options) == 0 {
			return nil
		}
		for _, part := range strings.Split(answer, ",") {
			if !contains(q.Options, strings.TrimSpace(part)) {
				return optionsError(q.Options)
			}
		}
	case model.QuestionTypeRating:
		low, high := q.ScaleBounds()
		n, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil || n < low || n > high {
			return fmt.Errorf("Please choose a number from %d to %d.", low, high)
		}
	case model.QuestionTypeDate:
		if _, err := time.Parse("2006-01-02", strings.TrimSpace(answer)); err != nil {
			return ErrInvalidDate
		}
	case model.QuestionTypeTime:
		if _, err := time.Parse("15:04", strings.TrimSpace(answer)); err != nil {
			return ErrInvalidTime
		}
	}
	return nil
}

// ValidateAnswers checks a whole submission, keyed by question id
func ValidateAnswers(form *model.Form, answers map[string]string) error {
	var errs []model.AnswerError
	known := make(map[string]bool, len(form.Questions))
	for i, q := range form.Questions {
		key := questionKey(q, i)
		known[key] = true
		if err := ValidateAnswer(answers[key], q); err != nil {
			errs = append(errs, model.AnswerError{QuestionID: key, Message: err.Error()})
		}
	}

	var unknown []string
	for key := range answers {
		if !known[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		errs = append(errs, model.AnswerError{QuestionID: key, Message: "Unknown question."})
	}
	if len(errs) > 0 {
		return &AnswersError{Errors: errs}
	}
	return nil
}

func optionsError(options []string) error {
	return fmt.Errorf("Please select one of the following options: %s", strings.Join(options, ", "))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func questionKey(q model.Question, i int) string {
	if q.ID != "" {
		return q.ID
	}
	return fmt.Sprintf("q%d", i+1)
}
