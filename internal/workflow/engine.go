package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/inevo/formflow/internal/logging"
	"github.com/inevo/formflow/pkg/domain"
	"github.com/inevo/formflow/pkg/forms"
	"github.com/inevo/formflow/pkg/ports"
	"github.com/inevo/formflow/pkg/schema"
	"github.com/inevo/formflow/pkg/validate"
)

// DefaultStepBudget bounds the orchestrator iterations of one external turn.
// The steady state is "one or two agents run, then control returns to the
// caller", so hitting the budget indicates a routing defect; it is reported
// as a pause, never a crash.
const DefaultStepBudget = 100

// agentFunc mutates the session state in place. History and ValidationErrors
// are append-only; a successful mapping is the only operation that clears
// ValidationErrors.
type agentFunc func(ctx context.Context, s *domain.State) error

// Engine runs the multi-agent workflow: the orchestrator picks one agent per
// step, the agent patches the state, and the loop repeats until a halt or a
// waiting-for-input condition.
type Engine struct {
	reg      *schema.Registry
	resolver *forms.Resolver
	mutator  *forms.Mutator
	rules    *validate.Table

	textgen ports.TextGenerator
	docs    ports.DocumentService
	mailer  ports.Mailer
	quotes  ports.QuoteService

	logger *slog.Logger
	hooks  domain.LifecycleHooks
	budget int

	agents map[domain.AgentID]agentFunc
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) { e.hooks = hooks }
}

// WithTextGenerator sets the conversational text collaborator.
func WithTextGenerator(g ports.TextGenerator) Option {
	return func(e *Engine) { e.textgen = g }
}

// WithDocumentService sets the document I/O collaborator.
func WithDocumentService(d ports.DocumentService) Option {
	return func(e *Engine) { e.docs = d }
}

// WithMailer sets the outbound mail collaborator.
func WithMailer(m ports.Mailer) Option {
	return func(e *Engine) { e.mailer = m }
}

// WithQuoteService sets the underwriting collaborator.
func WithQuoteService(q ports.QuoteService) Option {
	return func(e *Engine) { e.quotes = q }
}

// WithStepBudget overrides the per-turn iteration budget.
func WithStepBudget(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.budget = n
		}
	}
}

// NewEngine creates the workflow engine over a schema registry.
func NewEngine(reg *schema.Registry, opts ...Option) *Engine {
	e := &Engine{
		reg:      reg,
		resolver: forms.NewResolver(reg),
		mutator:  forms.NewMutator(reg),
		rules:    validate.NewTable(),
		logger:   logging.NewNop(),
		budget:   DefaultStepBudget,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.agents = map[domain.AgentID]agentFunc{
		domain.AgentInputValidator: e.runInputValidator,
		domain.AgentSchemaMapper:   e.runSchemaMapper,
		domain.AgentConversation:   e.runConversation,
		domain.AgentUserPreference: e.runUserPreference,
		domain.AgentCompleteness:   e.runCompleteness,
		domain.AgentEmail:          e.runEmailProcessing,
		domain.AgentDocIntel:       e.runDocIntel,
		domain.AgentFormPopulation: e.runFormPopulation,
		domain.AgentGuidewire:      e.runGuidewire,
	}
	return e
}

// Registry exposes the schema registry backing this engine.
func (e *Engine) Registry() *schema.Registry {
	return e.reg
}

// Progress reports filled and total field counts across all known forms.
func (e *Engine) Progress(s *domain.State) (filled, total int) {
	return e.mutator.Filled(s.Forms)
}

// NewState creates a fresh session state with every known form present.
func (e *Engine) NewState(sessionID, userID string) *domain.State {
	return domain.NewState(sessionID, userID, e.reg.RootForm(), e.reg.NewForms())
}

// Submit injects one raw external input into the state: the value is queued
// for the pipeline, the waiting flag is cleared, and the transcript gains
// the user turn.
func (e *Engine) Submit(s *domain.State, input string) {
	s.PendingValue = input
	s.WaitingForInput = false
	s.AppendMessage("user", input)
}

// Step runs exactly one control-loop iteration: the orchestrator decides,
// and the selected agent (if any) runs. Returns true when the iteration
// halted (no agent selected).
func (e *Engine) Step(ctx context.Context, s *domain.State) (halted bool, err error) {
	next, reason := e.route(s)
	if e.hooks.OnRoute != nil {
		e.hooks.OnRoute(ctx, &domain.RouteEvent{
			Timestamp: time.Now(),
			SessionID: s.SessionID,
			Phase:     s.Phase,
			Next:      next,
			Reason:    reason,
		})
	}
	e.logger.Debug("routing decision", "next", string(next), "reason", reason, "phase", string(s.Phase))

	if next == domain.AgentNone {
		s.NextAgent = domain.AgentNone
		return true, nil
	}

	agent, ok := e.agents[next]
	if !ok {
		return true, fmt.Errorf("route to %s: %w", next, domain.ErrUnknownAgent)
	}

	if e.hooks.OnAgentEnter != nil {
		e.hooks.OnAgentEnter(ctx, &domain.AgentEvent{
			Timestamp: time.Now(), Type: domain.EventAgentEnter,
			SessionID: s.SessionID, Agent: next,
		})
	}
	started := time.Now()
	err = agent(ctx, s)
	if e.hooks.OnAgentLeave != nil {
		e.hooks.OnAgentLeave(ctx, &domain.AgentEvent{
			Timestamp: time.Now(), Type: domain.EventAgentLeave,
			SessionID: s.SessionID, Agent: next, Duration: time.Since(started),
		})
	}
	return false, err
}

// RunTurn drives Step until the workflow halts or suspends for input, within
// the step budget. Exceeding the budget returns ErrStepBudgetExceeded with
// the state preserved, so the caller can surface a pause and resume later.
func (e *Engine) RunTurn(ctx context.Context, s *domain.State) error {
	for i := 0; i < e.budget; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		halted, err := e.Step(ctx, s)
		if err != nil {
			return err
		}
		if halted || s.WaitingForInput || s.WorkflowComplete {
			return nil
		}
	}
	e.logger.Warn("step budget exhausted", "session_id", s.SessionID, "budget", e.budget)
	return domain.ErrStepBudgetExceeded
}
