package google

import (
	"google.golang.org/api/forms/v1"

	"formsmith/internal/model"
	"formsmith/internal/translate"
)

// Choice question kinds in the Forms API
const (
	ChoiceRadio    = "RADIO"
	ChoiceCheckbox = "CHECKBOX"
	ChoiceDropDown = "DROP_DOWN"
)

// BuildItems maps every question of the form to a Forms item
func BuildItems(form *model.Form) []*forms.Item {
	items := make([]*forms.Item, 0, len(form.Questions))
	for _, q := range form.Questions {
		items = append(items, BuildItem(q))
	}
	return items
}

// BuildItem maps one question. Types without a Forms equivalent become a
// single-line text question.
func BuildItem(q model.Question) *forms.Item {
	question := &forms.Question{
		Required:        q.Required,
		ForceSendFields: []string{"Required"},
	}

	switch q.Type {
	case model.QuestionTypeShortAnswer, model.QuestionTypeEmail:
		question.TextQuestion = textQuestion(false)
	case model.QuestionTypeParagraph:
		question.TextQuestion = textQuestion(true)
	case model.QuestionTypeMultipleChoice:
		question.ChoiceQuestion = choiceQuestion(ChoiceRadio, q)
	case model.QuestionTypeCheckbox:
		question.ChoiceQuestion = choiceQuestion(ChoiceCheckbox, q)
	case model.QuestionTypeDropdown:
		question.ChoiceQuestion = choiceQuestion(ChoiceDropDown, q)
	case model.QuestionTypeDate:
		question.DateQuestion = &forms.DateQuestion{}
	case model.QuestionTypeTime:
		question.TimeQuestion = &forms.TimeQuestion{}
	case model.QuestionTypeRating:
		low, high := scaleBounds(q)
		question.ScaleQuestion = &forms.ScaleQuestion{
			Low:       int64(low),
			High:      int64(high),
			LowLabel:  q.LowLabel,
			HighLabel: q.HighLabel,
		}
	default:
		question.TextQuestion = textQuestion(false)
	}

	return &forms.Item{
		Title:       q.Title(),
		Description: q.Description,
		QuestionItem: &forms.QuestionItem{
			Question: question,
		},
	}
}

// scaleBounds clamps to what Forms accepts: low 0 or 1, high 2..10
func scaleBounds(q model.Question) (low, high int) {
	low, high = q.ScaleBounds()
	if low > 1 {
		low = 1
	}
	if high > 10 {
		high = 10
	}
	if high < 2 {
		high = 2
	}
	return low, high
}

func textQuestion(paragraph bool) *forms.TextQuestion {
	return &forms.TextQuestion{
		Paragraph:       paragraph,
		ForceSendFields: []string{"Paragraph"},
	}
}

func choiceQuestion(kind string, q model.Question) *forms.ChoiceQuestion {
	labels := translate.ChoiceLabels(q)
	options := make([]*forms.Option, 0, len(labels))
	for _, label := range labels {
		options = append(options, &forms.Option{Value: label})
	}
	return &forms.ChoiceQuestion{Type: kind, Options: options}
}

// Kind describes which question variant an item carries, e.g.
// "textQuestion{paragraph:false}" or "choiceQuestion{type:RADIO}".
func Kind(item *forms.Item) string {
	if item == nil || item.QuestionItem == nil || item.QuestionItem.Question == nil {
		return ""
	}
	q := item.QuestionItem.Question
	switch {
	case q.TextQuestion != nil:
		if q.TextQuestion.Paragraph {
			return "textQuestion{paragraph:true}"
		}
		return "textQuestion{paragraph:false}"
	case q.ChoiceQuestion != nil:
		return "choiceQuestion{type:" + q.ChoiceQuestion.Type + "}"
	case q.DateQuestion != nil:
		return "dateQuestion{}"
	case q.TimeQuestion != nil:
		return "timeQuestion{}"
	case q.ScaleQuestion != nil:
		return "scaleQuestion{}"
	}
	return ""
}
