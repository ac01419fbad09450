package translate_test

import (
	"encoding/json"
	"testing"

	"formsmith/internal/model"
	"formsmith/internal/translate/google"
	"formsmith/internal/translate/surveymonkey"
	"formsmith/internal/translate/typeform"
)

// mappingTable is the canonical type -> platform type table
var mappingTable = []struct {
	qtype        model.QuestionType
	google       string
	typeform     string
	surveymonkey string
}{
	{model.QuestionTypeShortAnswer, "textQuestion{paragraph:false}", "short_text", "single_textbox/single_row"},
	{model.QuestionTypeParagraph, "textQuestion{paragraph:true}", "long_text", "single_textbox/multi_row"},
	{model.QuestionTypeEmail, "textQuestion{paragraph:false}", "email", "single_textbox/email"},
	{model.QuestionTypeMultipleChoice, "choiceQuestion{type:RADIO}", "multiple_choice", "multiple_choice/vertical"},
	{model.QuestionTypeCheckbox, "choiceQuestion{type:CHECKBOX}", "short_text", "single_textbox/single_row"},
	{model.QuestionTypeDropdown, "choiceQuestion{type:DROP_DOWN}", "short_text", "single_textbox/single_row"},
	{model.QuestionTypeDate, "dateQuestion{}", "date", "single_textbox/single_row"},
	{model.QuestionTypeTime, "timeQuestion{}", "time", "single_textbox/single_row"},
	{model.QuestionTypeRating, "scaleQuestion{}", "rating", "single_textbox/single_row"},
	{model.QuestionTypeFileUpload, "textQuestion{paragraph:false}", "short_text", "single_textbox/single_row"},
	{model.QuestionTypeGrid, "textQuestion{paragraph:false}", "short_text", "single_textbox/single_row"},
	{model.QuestionTypeCheckboxGrid, "textQuestion{paragraph:false}", "short_text", "single_textbox/single_row"},
}

func TestMappingTableCoversEveryType(t *testing.T) {
	if len(mappingTable) != len(model.QuestionTypes) {
		t.Fatalf("table rows: want=%d got=%d", len(model.QuestionTypes), len(mappingTable))
	}
}

// Each payload is serialized and read back so the check runs against the
// wire format, not the builder's Go values.
func TestMappingRoundTrip(t *testing.T) {
	for _, row := range mappingTable {
		form := &model.Form{
			Title:     "Round trip",
			Questions: []model.Question{{Text: "Q", Type: row.qtype}},
		}

		t.Run(string(row.qtype)+"/google", func(t *testing.T) {
			items := google.BuildItems(form)
			if got := google.Kind(items[0]); got != row.google {
				t.Fatalf("want=%q got=%q", row.google, got)
			}
		})

		t.Run(string(row.qtype)+"/typeform", func(t *testing.T) {
			b, err := json.Marshal(typeform.BuildRequest(form))
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var back struct {
				Fields []struct {
					Type string `json:"type"`
				} `json:"fields"`
			}
			if err := json.Unmarshal(b, &back); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if back.Fields[0].Type != row.typeform {
				t.Fatalf("want=%q got=%q", row.typeform, back.Fields[0].Type)
			}
		})

		t.Run(string(row.qtype)+"/surveymonkey", func(t *testing.T) {
			b, err := json.Marshal(surveymonkey.BuildQuestions(form))
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var back []struct {
				Family  string `json:"family"`
				Subtype string `json:"subtype"`
			}
			if err := json.Unmarshal(b, &back); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := back[0].Family + "/" + back[0].Subtype; got != row.surveymonkey {
				t.Fatalf("want=%q got=%q", row.surveymonkey, got)
			}
		})
	}
}

func TestMultipleChoiceWithoutOptionsGetsTwoPlaceholders(t *testing.T) {
	q := model.Question{Text: "Pick one", Type: model.QuestionTypeMultipleChoice}
	form := &model.Form{Title: "P", Questions: []model.Question{q}}

	g := google.BuildItems(form)[0].QuestionItem.Question.ChoiceQuestion.Options
	if len(g) != 2 || g[0].Value != "Option 1" || g[1].Value != "Option 2" {
		t.Fatalf("google: got=%+v", g)
	}

	tf := typeform.BuildRequest(form).Fields[0].Properties.Choices
	if len(tf) != 2 || tf[0].Label != "Option 1" || tf[1].Label != "Option 2" {
		t.Fatalf("typeform: got=%+v", tf)
	}

	sm := surveymonkey.BuildQuestions(form)[0].Answers.Choices
	if len(sm) != 2 || sm[0].Text != "Option 1" || sm[1].Position != 2 {
		t.Fatalf("surveymonkey: got=%+v", sm)
	}
}
