package formgen

import (
	"regexp"
	"strings"

	"formsmith/internal/model"
)

// keywordGroup appends one fixed question when any of its keywords appear in the prompt
type keywordGroup struct {
	name     string
	keywords []string
	// wordMatch requires whole-word matches; short keywords like "age" would
	// otherwise fire on "page" or "message"
	wordMatch bool
	question  model.Question
}

// fallbackGroups is evaluated in order; the order is the question order
var fallbackGroups = []keywordGroup{
	{
		name:     "name",
		keywords: []string{"name", "full name", "first name"},
		question: model.Question{Text: "What is your name?", Type: model.QuestionTypeShortAnswer, Required: true},
	},
	{
		name:     "email",
		keywords: []string{"email", "e-mail", "contact"},
		question: model.Question{Text: "What is your email address?", Type: model.QuestionTypeEmail, Required: true},
	},
	{
		name:      "phone",
		keywords:  []string{"phone", "telephone", "mobile"},
		wordMatch: true,
		question:  model.Question{Text: "What is your phone number?", Type: model.QuestionTypeShortAnswer},
	},
	{
		name:      "age",
		keywords:  []string{"age", "years old", "date of birth"},
		wordMatch: true,
		question:  model.Question{Text: "What is your age?", Type: model.QuestionTypeShortAnswer},
	},
	{
		name:     "rating",
		keywords: []string{"rating", "scale", "score", "satisfaction"},
		question: model.Question{
			Text:     "How would you rate your experience?",
			Type:     model.QuestionTypeMultipleChoice,
			Required: true,
			Options:  []string{"1", "2", "3", "4", "5"},
		},
	},
	{
		name:     "feedback",
		keywords: []string{"feedback", "comments", "suggestions", "opinion"},
		question: model.Question{Text: "Do you have any additional comments or feedback?", Type: model.QuestionTypeParagraph},
	},
}

var genericQuestion = model.Question{
	Text:     "Please provide your response",
	Type:     model.QuestionTypeShortAnswer,
	Required: true,
}

// fallbackTitles is checked in order; first substring hit wins
var fallbackTitles = []struct {
	keyword string
	title   string
}{
	{"survey", "Survey Form"},
	{"contact", "Contact Form"},
	{"registration", "Registration Form"},
	{"application", "Application Form"},
}

const defaultFallbackTitle = "Feedback Form"

// Fallback builds a form from keyword matches on the prompt. It never fails
// and always returns at least one question.
func Fallback(prompt string) *model.Form {
	lower := strings.ToLower(prompt)

	var questions []model.Question
	for _, g := range fallbackGroups {
		if g.matches(lower) {
			questions = append(questions, withDefaults(g.question))
		}
	}
	if len(questions) == 0 {
		questions = append(questions, withDefaults(genericQuestion))
	}

	title := defaultFallbackTitle
	for _, t := range fallbackTitles {
		if strings.Contains(lower, t.keyword) {
			title = t.title
			break
		}
	}

	return &model.Form{
		Title:       title,
		Description: prompt,
		Questions:   questions,
		Source:      model.FormSourceFallback,
	}
}

func (g keywordGroup) matches(lower string) bool {
	for _, kw := range g.keywords {
		if g.wordMatch {
			if wordPattern(kw).MatchString(lower) {
				return true
			}
			continue
		}
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func wordPattern(kw string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
}

// withDefaults copies a template question and fills the canonical defaults
func withDefaults(q model.Question) model.Question {
	q.Low = model.DefaultScaleLow
	q.High = model.DefaultScaleHigh
	q.Rows = []string{}
	q.Columns = []string{}
	if q.Options != nil {
		q.Options = append([]string(nil), q.Options...)
	}
	return q
}
