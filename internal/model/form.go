package model

import "time"

// FormSource records which path produced a form's questions
type FormSource string

const (
	FormSourceAI       FormSource = "ai"
	FormSourceFallback FormSource = "fallback"
	FormSourceManual   FormSource = "manual"
)

// Form is the canonical form: one generation cycle's output, optionally saved
type Form struct {
	ID          string     `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerID     string     `json:"ownerId,omitempty" bson:"ownerId,omitempty"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Questions   []Question `json:"questions" bson:"questions"`
	Source      FormSource `json:"source,omitempty" bson:"source,omitempty"`
	CreatedAt   time.Time  `json:"createdAt,omitempty" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt,omitempty" bson:"updatedAt"`
}

// QuestionByID finds a question by its stable id
func (f *Form) QuestionByID(id string) (*Question, bool) {
	for i := range f.Questions {
		if f.Questions[i].ID == id {
			return &f.Questions[i], true
		}
	}
	return nil, false
}
