package models

import "time"

type EventType string

const (
	ProductCreated  EventType = "product.created"
	ProductUpdated  EventType = "product.updated"
	ProductDeleted  EventType = "product.deleted"
	CategoryCreated EventType = "category.created"
	CategoryUpdated EventType = "category.updated"
	CategoryDeleted EventType = "category.deleted"
	ImageUploaded   EventType = "image.uploaded"
)

// Event is broadcast on the change feed after a successful mutation.
type Event struct {
	Type EventType `json:"type"`
	ID   uint      `json:"id,omitempty"`
	Name string    `json:"name,omitempty"`
	At   time.Time `json:"at"`
}

func NewEvent(t EventType, id uint, name string) Event {
	return Event{Type: t, ID: id, Name: name, At: time.Now().UTC()}
}
