package models

import (
	dErrors "parrainage/pkg/domain-errors"
)

// State is the lifecycle position of a sponsorship. It is derived from the
// persisted (status, is_temporary) pair: a temporary sponsorship is stored as
// status=active with is_temporary=true.
type State string

const (
	StatePending   State = "pending"
	StateActive    State = "active"
	StateTemporary State = "temporary"
	StatePaused    State = "paused"
	StateEnded     State = "ended"
)

// Event is an input to the sponsorship state machine.
type Event string

const (
	EventPause         Event = "pause"
	EventResume        Event = "resume"
	EventMarkTemporary Event = "mark_temporary"
	EventTerminate     Event = "terminate"
	EventTransfer      Event = "transfer"
)

// transitions is the complete table of legal moves. Anything absent is rejected.
var transitions = map[State]map[Event]State{
	StateActive: {
		EventPause:         StatePaused,
		EventMarkTemporary: StateTemporary,
		EventTerminate:     StateEnded,
		EventTransfer:      StateEnded,
	},
	StateTemporary: {
		EventResume:    StateActive,
		EventTerminate: StateEnded,
		EventTransfer:  StateEnded,
	},
	StatePaused: {
		EventResume:    StateActive,
		EventTerminate: StateEnded,
	},
}

// Next returns the state reached by applying e, or an invalid_state error.
func (s State) Next(e Event) (State, error) {
	next, ok := transitions[s][e]
	if !ok {
		return "", dErrors.Newf(dErrors.CodeInvalidState, "cannot %s a sponsorship that is %s", e, s)
	}
	return next, nil
}

// Allows reports whether e is legal from s.
func (s State) Allows(e Event) bool {
	_, ok := transitions[s][e]
	return ok
}

// HoldsChild reports whether a sponsorship in this state keeps its child claimed.
func (s State) HoldsChild() bool {
	return s == StateActive || s == StateTemporary || s == StatePaused
}

// Columns returns the persisted (status, is_temporary) pair for s.
func (s State) Columns() (SponsorshipStatus, bool) {
	switch s {
	case StateActive:
		return SponsorshipStatusActive, false
	case StateTemporary:
		return SponsorshipStatusActive, true
	case StatePaused:
		return SponsorshipStatusPaused, false
	case StateEnded:
		return SponsorshipStatusEnded, false
	default:
		return SponsorshipStatusPending, false
	}
}

func (s State) String() string {
	return string(s)
}
