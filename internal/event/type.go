package event

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeCandidateRegistered EventType = "candidate.registered"
	EventTypeQuizCompleted       EventType = "quiz.completed"
	EventTypePadawanAccepted     EventType = "padawan.accepted"
	EventTypeMailRequested       EventType = "mail.send"
)

const eventVersion = "1.0"

type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp int64     `json:"timestamp"`
	Version   string    `json:"version"`
}

func NewBaseEvent(t EventType) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: time.Now().Unix(),
		Version:   eventVersion,
	}
}

func (b BaseEvent) EventType() EventType { return b.Type }

// Event is anything that can be routed by its type.
type Event interface {
	EventType() EventType
}

type CandidateRegisteredEvent struct {
	BaseEvent
	CandidateID int64  `json:"candidate_id"`
	PlanetID    int64  `json:"planet_id"`
	Email       string `json:"email"`
}

type QuizCompletedEvent struct {
	BaseEvent
	CandidateID int64 `json:"candidate_id"`
	OrderCode   int   `json:"order_code"`
	Answers     int   `json:"answers"`
}

type PadawanAcceptedEvent struct {
	BaseEvent
	CandidateID int64 `json:"candidate_id"`
	JediID      int64 `json:"jedi_id"`
}

type MailRequestedEvent struct {
	BaseEvent
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
}
