package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventAgentEnter  EventType = "agent_enter"
	EventAgentLeave  EventType = "agent_leave"
	EventRoute       EventType = "route"
	EventFieldUpdate EventType = "field_update"
)

// AgentEvent represents entry into or exit from an agent.
type AgentEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
	Agent     AgentID   `json:"agent"`
	Duration  time.Duration `json:"duration,omitempty"` // set on leave
}

// RouteEvent represents one orchestrator decision.
type RouteEvent struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	Phase     Phase     `json:"phase"`
	Next      AgentID   `json:"next"`
	Reason    string    `json:"reason"`
}

// FieldEvent represents one successful field mutation.
type FieldEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	SessionID  string    `json:"session_id"`
	FormID     string    `json:"form_id"`
	Field      string    `json:"field"`
	Propagated int       `json:"propagated"` // other forms that received the value
}

// LifecycleHooks defines callbacks for engine observability. Any hook may be
// nil.
type LifecycleHooks struct {
	OnAgentEnter  func(context.Context, *AgentEvent)
	OnAgentLeave  func(context.Context, *AgentEvent)
	OnRoute       func(context.Context, *RouteEvent)
	OnFieldUpdate func(context.Context, *FieldEvent)
}
