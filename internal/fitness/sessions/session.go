package sessions

import (
	"errors"
	"time"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	// returned when every supplied record normalizes to nothing
	ErrNoExerciseData = errors.New("at least one exercise must have values")
)

type Session struct {
	ID      string `json:"id"`
	OwnerID string `json:"ownerId"`
	// fixed at creation, edits only replace the record list
	TemplateID   string    `json:"templateId"`
	TemplateName string    `json:"templateName"`
	Date         time.Time `json:"date"`
	CreatedAt    time.Time `json:"createdAt"`
	Records      []Record  `json:"exercises"`
}
