package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventRoundCreated  EventType = "round.created"
	EventRoundStarted  EventType = "round.started"
	EventRoundFinished EventType = "round.finished"
)

// Event is published on the in-process bus after the corresponding
// state change has been persisted. Within one round the order is
// always created -> started -> finished; no ordering is guaranteed
// across different rounds.
//
// The started and finished events for a round are typically emitted
// back-to-back because the round controller finishes a round
// immediately after it starts; subscribers must tolerate that.
type Event struct {
	Type      EventType
	Timestamp time.Time
	RoundID   RoundID
	Sequence  int64
	State     RoundState
}
