package model

import "testing"

func TestParseQuestionType(t *testing.T) {
	tests := []struct {
		in   string
		want QuestionType
		ok   bool
	}{
		{"short_answer", QuestionTypeShortAnswer, true},
		{"multiple-choice", QuestionTypeMultipleChoice, true},
		{"multiple_choice", QuestionTypeMultipleChoice, true},
		{" Checkbox_Grid ", QuestionTypeCheckboxGrid, true},
		{"email", QuestionTypeEmail, true},
		{"banana", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseQuestionType(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ParseQuestionType(%q): want=(%q,%v) got=(%q,%v)", tt.in, tt.want, tt.ok, got, ok)
		}
	}
}

func TestCoerceQuestionTypeDefaultsToShortAnswer(t *testing.T) {
	if got := CoerceQuestionType("banana"); got != QuestionTypeShortAnswer {
		t.Fatalf("CoerceQuestionType: want=%q got=%q", QuestionTypeShortAnswer, got)
	}
	if got := CoerceQuestionType("rating"); got != QuestionTypeRating {
		t.Fatalf("CoerceQuestionType: want=%q got=%q", QuestionTypeRating, got)
	}
}

func TestIsChoice(t *testing.T) {
	choice := map[QuestionType]bool{
		QuestionTypeMultipleChoice: true,
		QuestionTypeCheckbox:       true,
		QuestionTypeDropdown:       true,
	}
	for _, qt := range QuestionTypes {
		if qt.IsChoice() != choice[qt] {
			t.Fatalf("%s.IsChoice(): want=%v got=%v", qt, choice[qt], qt.IsChoice())
		}
	}
}

func TestScaleBoundsDefaults(t *testing.T) {
	low, high := Question{Type: QuestionTypeRating}.ScaleBounds()
	if low != 1 || high != 5 {
		t.Fatalf("ScaleBounds: want=(1,5) got=(%d,%d)", low, high)
	}
	low, high = Question{Type: QuestionTypeRating, Low: 0, High: 10}.ScaleBounds()
	if low != 1 || high != 10 {
		t.Fatalf("ScaleBounds: want=(1,10) got=(%d,%d)", low, high)
	}
}

func TestChoiceOptionsIgnoredForNonChoiceTypes(t *testing.T) {
	q := Question{Type: QuestionTypeParagraph, Options: []string{"A"}}
	if q.ChoiceOptions() != nil {
		t.Fatalf("ChoiceOptions: expected nil for paragraph, got %v", q.ChoiceOptions())
	}
}

func TestParsePlatform(t *testing.T) {
	if p, ok := ParsePlatform("surveymonkey"); !ok || p != PlatformSurveyMonkey {
		t.Fatalf("ParsePlatform(surveymonkey): got=(%q,%v)", p, ok)
	}
	if p, ok := ParsePlatform("google-forms"); !ok || p != PlatformGoogle {
		t.Fatalf("ParsePlatform(google-forms): got=(%q,%v)", p, ok)
	}
	if _, ok := ParsePlatform("jotform"); ok {
		t.Fatalf("ParsePlatform(jotform): expected not ok")
	}
}
