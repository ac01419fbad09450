package surveymonkey

import (
	"formsmith/internal/model"
	"formsmith/internal/translate"
)

// Family/subtype pairs used by the SurveyMonkey question API
const (
	FamilySingleTextbox  = "single_textbox"
	FamilyMultipleChoice = "multiple_choice"

	SubtypeSingleRow = "single_row"
	SubtypeMultiRow  = "multi_row"
	SubtypeEmail     = "email"
	SubtypeVertical  = "vertical"
)

// SurveyCreateRequest is the body of POST /surveys
type SurveyCreateRequest struct {
	Title    string `json:"title"`
	Language string `json:"language"`
}

// SurveyResponse is the response from survey creation
type SurveyResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Href  string `json:"href"`
}

// PageCreateRequest is the body of POST /surveys/{id}/pages
type PageCreateRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Position    int        `json:"position"`
	Questions   []Question `json:"questions"`
}

// PageResponse is a page in a survey
type PageResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title,omitempty"`
	Position int    `json:"position"`
}

type Heading struct {
	Heading string `json:"heading"`
}

// Question is one formatted SurveyMonkey question
type Question struct {
	Headings []Heading `json:"headings"`
	Position int       `json:"position"`
	Required bool      `json:"required"`
	Family   string    `json:"family"`
	Subtype  string    `json:"subtype"`
	Answers  *Answers  `json:"answers,omitempty"`
}

type Answers struct {
	Choices []Choice `json:"choices"`
}

type Choice struct {
	Position int    `json:"position"`
	Text     string `json:"text"`
}

// CollectorCreateRequest is the body of POST /surveys/{id}/collectors
type CollectorCreateRequest struct {
	Type            string `json:"type"`
	Name            string `json:"name"`
	ThankYouMessage string `json:"thank_you_message,omitempty"`
}

// CollectorResponse is the API response for collector creation
type CollectorResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	URL    string `json:"url"`
	Status string `json:"status"`
}

// BuildQuestions formats the form's questions for the page payload
func BuildQuestions(form *model.Form) []Question {
	out := make([]Question, 0, len(form.Questions))
	for i, q := range form.Questions {
		out = append(out, BuildQuestion(q, i+1))
	}
	return out
}

// BuildQuestion maps one question at a 1-based position
func BuildQuestion(q model.Question, position int) Question {
	family, subtype := Kind(q.Type)
	sq := Question{
		Headings: []Heading{{Heading: q.Title()}},
		Position: position,
		Required: q.Required,
		Family:   family,
		Subtype:  subtype,
	}
	if family == FamilyMultipleChoice {
		labels := translate.ChoiceLabels(q)
		choices := make([]Choice, 0, len(labels))
		for i, label := range labels {
			choices = append(choices, Choice{Position: i + 1, Text: label})
		}
		sq.Answers = &Answers{Choices: choices}
	}
	return sq
}

// Kind returns the family/subtype for a canonical type. Types without a
// SurveyMonkey equivalent become a single-row textbox.
func Kind(t model.QuestionType) (family, subtype string) {
	switch t {
	case model.QuestionTypeShortAnswer:
		return FamilySingleTextbox, SubtypeSingleRow
	case model.QuestionTypeParagraph:
		return FamilySingleTextbox, SubtypeMultiRow
	case model.QuestionTypeEmail:
		return FamilySingleTextbox, SubtypeEmail
	case model.QuestionTypeMultipleChoice:
		return FamilyMultipleChoice, SubtypeVertical
	default:
		return FamilySingleTextbox, SubtypeSingleRow
	}
}
