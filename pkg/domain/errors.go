package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrStepBudgetExceeded is returned when a single external turn runs more
// orchestrator iterations than allowed. It signals a pause, not a crash.
var ErrStepBudgetExceeded = errors.New("step budget exceeded")

// ErrUnknownForm is returned when a form ID is not in the schema registry.
var ErrUnknownForm = errors.New("unknown form")

// ErrUnknownField is returned when a field name is not in the form's schema.
var ErrUnknownField = errors.New("unknown field")

// ErrUnknownAgent is returned when routing selects an agent with no registered
// implementation.
var ErrUnknownAgent = errors.New("unknown agent")
