package payment

import (
	"errors"
	"fmt"
)

// State is the checkout modal's step.
type State int

const (
	StateInput State = iota
	StateProcessing
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateInput:
		return "input"
	case StateProcessing:
		return "processing"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// transitions lists every legal move. Success is final for the modal.
var transitions = map[State][]State{
	StateInput:      {StateProcessing},
	StateProcessing: {StateSuccess, StateError},
	StateError:      {StateInput},
	StateSuccess:    nil,
}

// ErrIllegalTransition is returned for a move the table does not allow.
var ErrIllegalTransition = errors.New("payment: illegal transition")

// CanTransition reports whether from -> to is allowed.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func checkTransition(from, to State) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}
	return nil
}
