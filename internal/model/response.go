package model

import "time"

// FormResponse is one respondent's submission to a hosted form.
// Answers is keyed by question id.
type FormResponse struct {
	ID          string            `json:"id,omitempty" bson:"_id,omitempty"`
	FormID      string            `json:"formId" bson:"formId"`
	Answers     map[string]string `json:"answers" bson:"answers"`
	SubmittedAt time.Time         `json:"timestamp" bson:"submittedAt"`
}

// AnswerError reports why a single answer was rejected
type AnswerError struct {
	QuestionID string `json:"questionId"`
	Message    string `json:"message"`
}
