package model

import "time"

// Platform names an external form platform
type Platform string

const (
	PlatformGoogle       Platform = "google"
	PlatformTypeform     Platform = "typeform"
	PlatformSurveyMonkey Platform = "surveymonkey"
)

// Platforms lists the supported platforms
var Platforms = []Platform{PlatformGoogle, PlatformTypeform, PlatformSurveyMonkey}

// ParsePlatform resolves a platform name
func ParsePlatform(s string) (Platform, bool) {
	switch Platform(s) {
	case PlatformGoogle, PlatformTypeform, PlatformSurveyMonkey:
		return Platform(s), true
	case "google-forms", "googleforms":
		return PlatformGoogle, true
	}
	return "", false
}

// PublishState is a step of the submission lifecycle:
// idle -> submitting -> success | failed
type PublishState string

const (
	PublishIdle       PublishState = "idle"
	PublishSubmitting PublishState = "submitting"
	PublishSuccess    PublishState = "success"
	PublishFailed     PublishState = "failed"
)

// PublishStatus is the latest state of one form on one platform
type PublishStatus struct {
	FormID    string       `json:"formId"`
	Platform  Platform     `json:"platform"`
	State     PublishState `json:"state"`
	ID        string       `json:"id,omitempty"`
	URL       string       `json:"url,omitempty"`
	Error     string       `json:"error,omitempty"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// ItemOutcome is the per-question result of an incremental platform insert
type ItemOutcome struct {
	Index int    `json:"index" bson:"index"`
	Title string `json:"title" bson:"title"`
	OK    bool   `json:"ok" bson:"ok"`
	Error string `json:"error,omitempty" bson:"error,omitempty"`
}

// Publication records a form created on an external platform
type Publication struct {
	ID             string        `json:"id,omitempty" bson:"_id,omitempty"`
	FormID         string        `json:"formId" bson:"formId"`
	Platform       Platform      `json:"platform" bson:"platform"`
	ExternalID     string        `json:"externalId" bson:"externalId"`
	URL            string        `json:"url" bson:"url"`
	SpreadsheetID  string        `json:"spreadsheetId,omitempty" bson:"spreadsheetId,omitempty"`
	SpreadsheetURL string        `json:"spreadsheetUrl,omitempty" bson:"spreadsheetUrl,omitempty"`
	Items          []ItemOutcome `json:"items,omitempty" bson:"items,omitempty"`
	CreatedAt      time.Time     `json:"createdAt" bson:"createdAt"`
}
