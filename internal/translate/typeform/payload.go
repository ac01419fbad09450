package typeform

import (
	"formsmith/internal/model"
	"formsmith/internal/translate"
)

// Field types understood by the Typeform create API
const (
	FieldShortText      = "short_text"
	FieldLongText       = "long_text"
	FieldEmail          = "email"
	FieldMultipleChoice = "multiple_choice"
	FieldDate           = "date"
	FieldTime           = "time"
	FieldRating         = "rating"
)

// CreateFormRequest is the body of POST /forms
type CreateFormRequest struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

type Field struct {
	Title       string      `json:"title"`
	Type        string      `json:"type"`
	Properties  *Properties `json:"properties,omitempty"`
	Validations Validations `json:"validations"`
}

type Properties struct {
	Description string   `json:"description,omitempty"`
	Choices     []Choice `json:"choices,omitempty"`
	Steps       int      `json:"steps,omitempty"`
}

type Choice struct {
	Label string `json:"label"`
}

type Validations struct {
	Required bool `json:"required"`
}

// BuildRequest maps a form to the Typeform create payload
func BuildRequest(form *model.Form) CreateFormRequest {
	fields := make([]Field, 0, len(form.Questions))
	for _, q := range form.Questions {
		fields = append(fields, BuildField(q))
	}
	return CreateFormRequest{Title: form.Title, Fields: fields}
}

// BuildField maps one question. Types Typeform cannot render become short_text.
func BuildField(q model.Question) Field {
	f := Field{
		Title:       q.Title(),
		Type:        FieldType(q.Type),
		Validations: Validations{Required: q.Required},
	}

	props := &Properties{Description: q.Description}
	switch f.Type {
	case FieldMultipleChoice:
		for _, label := range translate.ChoiceLabels(q) {
			props.Choices = append(props.Choices, Choice{Label: label})
		}
	case FieldRating:
		_, high := q.ScaleBounds()
		props.Steps = ratingSteps(high)
	}
	if props.Description != "" || len(props.Choices) > 0 || props.Steps > 0 {
		f.Properties = props
	}
	return f
}

// FieldType returns the Typeform field type for a canonical type
func FieldType(t model.QuestionType) string {
	switch t {
	case model.QuestionTypeShortAnswer:
		return FieldShortText
	case model.QuestionTypeParagraph:
		return FieldLongText
	case model.QuestionTypeEmail:
		return FieldEmail
	case model.QuestionTypeMultipleChoice:
		return FieldMultipleChoice
	case model.QuestionTypeDate:
		return FieldDate
	case model.QuestionTypeTime:
		return FieldTime
	case model.QuestionTypeRating:
		return FieldRating
	default:
		return FieldShortText
	}
}

// ratingSteps clamps to the 3..10 range Typeform accepts
func ratingSteps(high int) int {
	if high < 3 {
		return 3
	}
	if high > 10 {
		return 10
	}
	return high
}
