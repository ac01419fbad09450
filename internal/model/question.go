package model

import "strings"

// QuestionType is the closed set of canonical question kinds
type QuestionType string

const (
	QuestionTypeShortAnswer    QuestionType = "short_answer"
	QuestionTypeParagraph      QuestionType = "paragraph"
	QuestionTypeMultipleChoice QuestionType = "multiple-choice"
	QuestionTypeCheckbox       QuestionType = "checkbox"
	QuestionTypeDropdown       QuestionType = "dropdown"
	QuestionTypeFileUpload     QuestionType = "file_upload"
	QuestionTypeRating         QuestionType = "rating"
	QuestionTypeGrid           QuestionType = "grid"
	QuestionTypeCheckboxGrid   QuestionType = "checkbox_grid"
	QuestionTypeDate           QuestionType = "date"
	QuestionTypeTime           QuestionType = "time"
	QuestionTypeEmail          QuestionType = "email"
)

// Rating defaults applied when a question carries no bounds
const (
	DefaultScaleLow  = 1
	DefaultScaleHigh = 5
)

// UntitledQuestion replaces empty question text
const UntitledQuestion = "Untitled Question"

// QuestionTypes lists every canonical type in declaration order
var QuestionTypes = []QuestionType{
	QuestionTypeShortAnswer,
	QuestionTypeParagraph,
	QuestionTypeMultipleChoice,
	QuestionTypeCheckbox,
	QuestionTypeDropdown,
	QuestionTypeFileUpload,
	QuestionTypeRating,
	QuestionTypeGrid,
	QuestionTypeCheckboxGrid,
	QuestionTypeDate,
	QuestionTypeTime,
	QuestionTypeEmail,
}

// ParseQuestionType resolves a raw type name. "multiple_choice" is accepted
// as a spelling of multiple-choice.
func ParseQuestionType(s string) (QuestionType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "multiple_choice" {
		return QuestionTypeMultipleChoice, true
	}
	for _, t := range QuestionTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// CoerceQuestionType is ParseQuestionType with short_answer for anything unknown
func CoerceQuestionType(s string) QuestionType {
	if t, ok := ParseQuestionType(s); ok {
		return t
	}
	return QuestionTypeShortAnswer
}

// IsChoice reports whether options are meaningful for the type
func (t QuestionType) IsChoice() bool {
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeCheckbox, QuestionTypeDropdown:
		return true
	}
	return false
}

// Question is the platform-agnostic form question
type Question struct {
	ID          string       `json:"id,omitempty" bson:"id,omitempty"`
	Text        string       `json:"text" bson:"text"`
	Type        QuestionType `json:"type" bson:"type"`
	Required    bool         `json:"required" bson:"required"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Options     []string     `json:"options,omitempty" bson:"options,omitempty"` // choice types only

	// rating
	Low       int    `json:"low,omitempty" bson:"low,omitempty"`
	High      int    `json:"high,omitempty" bson:"high,omitempty"`
	LowLabel  string `json:"lowLabel" bson:"lowLabel"`
	HighLabel string `json:"highLabel" bson:"highLabel"`

	// grid
	Rows    []string `json:"rows" bson:"rows"`
	Columns []string `json:"columns" bson:"columns"`
}

// ScaleBounds returns the rating bounds with defaults applied
func (q Question) ScaleBounds() (low, high int) {
	low, high = q.Low, q.High
	if low <= 0 {
		low = DefaultScaleLow
	}
	if high <= 0 {
		high = DefaultScaleHigh
	}
	return low, high
}

// ChoiceOptions returns the options for a choice type, or nil for anything else
func (q Question) ChoiceOptions() []string {
	if !q.Type.IsChoice() {
		return nil
	}
	return q.Options
}

// Title returns the question text or the placeholder
func (q Question) Title() string {
	if strings.TrimSpace(q.Text) == "" {
		return UntitledQuestion
	}
	return q.Text
}
