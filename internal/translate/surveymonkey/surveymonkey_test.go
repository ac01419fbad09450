package surveymonkey

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"formsmith/internal/logger"
	"formsmith/internal/model"
	"formsmith/internal/translate"
)

func TestKindMapping(t *testing.T) {
	want := map[model.QuestionType][2]string{
		model.QuestionTypeShortAnswer:    {"single_textbox", "single_row"},
		model.QuestionTypeParagraph:      {"single_textbox", "multi_row"},
		model.QuestionTypeEmail:          {"single_textbox", "email"},
		model.QuestionTypeMultipleChoice: {"multiple_choice", "vertical"},
	}
	for _, qt := range model.QuestionTypes {
		family, subtype := Kind(qt)
		w, ok := want[qt]
		if !ok {
			w = [2]string{"single_textbox", "single_row"}
		}
		if family != w[0] || subtype != w[1] {
			t.Fatalf("%s: want=%v got=%s/%s", qt, w, family, subtype)
		}
	}
}

func TestBuildQuestionsPositionsAndChoices(t *testing.T) {
	form := &model.Form{Questions: []model.Question{
		{Text: "Name", Type: model.QuestionTypeShortAnswer, Required: true},
		{Text: "Pick", Type: model.QuestionTypeMultipleChoice},
		{Text: "Colour", Type: model.QuestionTypeMultipleChoice, Options: []string{"Red", "Blue"}},
	}}
	qs := BuildQuestions(form)

	for i, q := range qs {
		if q.Position != i+1 {
			t.Fatalf("question %d: position want=%d got=%d", i, i+1, q.Position)
		}
	}
	if !qs[0].Required || qs[0].Answers != nil || qs[0].Headings[0].Heading != "Name" {
		t.Fatalf("question 0: %+v", qs[0])
	}

	placeholders := []Choice{{Position: 1, Text: "Option 1"}, {Position: 2, Text: "Option 2"}}
	if !reflect.DeepEqual(qs[1].Answers.Choices, placeholders) {
		t.Fatalf("placeholders: got=%+v", qs[1].Answers.Choices)
	}
	if !reflect.DeepEqual(qs[2].Answers.Choices, []Choice{{1, "Red"}, {2, "Blue"}}) {
		t.Fatalf("choices: got=%+v", qs[2].Answers.Choices)
	}
}

type smServer struct {
	*httptest.Server
	paths          []string
	failCollectors bool
}

func newSMServer(t *testing.T, failCollectors bool) *smServer {
	s := &smServer{failCollectors: failCollectors}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.paths = append(s.paths, r.URL.Path)
		switch r.URL.Path {
		case "/surveys":
			var req SurveyCreateRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.Language != "en" {
				t.Errorf("language: want=en got=%q", req.Language)
			}
			w.Write([]byte(`{"id":"s1","title":"T"}`))
		case "/surveys/s1/pages":
			var req PageCreateRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.Title != "Page 1" || req.Position != 1 || len(req.Questions) != 1 {
				t.Errorf("page body: %+v", req)
			}
			w.Write([]byte(`{"id":"p1","position":1}`))
		case "/surveys/s1/collectors":
			if s.failCollectors {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":{"id":"1002","name":"Bad Request","message":"Collector limit reached"}}`))
				return
			}
			var req CollectorCreateRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.Type != "weblink" || req.Name != "Web Link" {
				t.Errorf("collector body: %+v", req)
			}
			w.Write([]byte(`{"id":"c1","type":"weblink","url":"https://www.surveymonkey.com/r/ABC"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(s.Close)
	return s
}

var oneQuestion = &model.Form{
	Title:     "T",
	Questions: []model.Question{{Text: "Q", Type: model.QuestionTypeParagraph}},
}

func TestPublishSuccess(t *testing.T) {
	srv := newSMServer(t, false)
	p := NewPublisher(srv.URL, "sm-token", 0, 0, logger.Nop())

	res, err := p.Publish(context.Background(), oneQuestion, translate.Credentials{})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if res.ID != "s1" || res.URL != "https://www.surveymonkey.com/r/ABC" {
		t.Fatalf("result: got=%+v", res)
	}
	want := []string{"/surveys", "/surveys/s1/pages", "/surveys/s1/collectors"}
	if !reflect.DeepEqual(srv.paths, want) {
		t.Fatalf("call order: want=%v got=%v", want, srv.paths)
	}
}

func TestPublishCollectorFailureAborts(t *testing.T) {
	srv := newSMServer(t, true)
	p := NewPublisher(srv.URL, "sm-token", 0, 0, logger.Nop())

	res, err := p.Publish(context.Background(), oneQuestion, translate.Credentials{})
	if res != nil {
		t.Fatalf("no result expected on collector failure, got=%+v", res)
	}
	var perr *translate.PlatformError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *PlatformError, got=%T (%v)", err, err)
	}
	if perr.Status != http.StatusBadRequest || perr.Detail != "Collector limit reached" {
		t.Fatalf("unexpected error: %+v", perr)
	}
	if len(srv.paths) != 3 {
		t.Fatalf("survey and page must have succeeded first, calls=%v", srv.paths)
	}
}
