package formflow

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/inevo/formflow/internal/workflow"
	"github.com/inevo/formflow/pkg/adapters/memory"
	"github.com/inevo/formflow/pkg/domain"
	"github.com/inevo/formflow/pkg/ports"
	"github.com/inevo/formflow/pkg/schema"
)

// ErrStepBudgetExceeded is returned (wrapped) when one external turn runs
// more control-loop iterations than allowed. The session state is still
// saved and can be resumed; callers should surface a pause, not a crash.
var ErrStepBudgetExceeded = domain.ErrStepBudgetExceeded

// ErrSessionNotFound is returned when a session ID is unknown to the store.
var ErrSessionNotFound = domain.ErrSessionNotFound

// Engine is the high-level entry point for the FormFlow library. It wraps
// the internal workflow engine with session persistence: load state, run a
// turn, save state.
type Engine struct {
	core  *workflow.Engine
	store ports.StateStore

	registry *schema.Registry
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	coreOpts []workflow.Option
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithRegistry replaces the embedded form schema registry.
func WithRegistry(reg *schema.Registry) Option {
	return func(e *Engine) { e.registry = reg }
}

// WithStore injects a session store. Defaults to the in-memory store.
func WithStore(store ports.StateStore) Option {
	return func(e *Engine) { e.store = store }
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) { e.hooks = hooks }
}

// WithTextGenerator sets the conversational text collaborator (e.g. the
// Ollama adapter). Without one, deterministic phrasings are used.
func WithTextGenerator(g ports.TextGenerator) Option {
	return func(e *Engine) { e.coreOpts = append(e.coreOpts, workflow.WithTextGenerator(g)) }
}

// WithDocumentService sets the document I/O collaborator.
func WithDocumentService(d ports.DocumentService) Option {
	return func(e *Engine) { e.coreOpts = append(e.coreOpts, workflow.WithDocumentService(d)) }
}

// WithMailer sets the outbound (simulated) mail collaborator.
func WithMailer(m ports.Mailer) Option {
	return func(e *Engine) { e.coreOpts = append(e.coreOpts, workflow.WithMailer(m)) }
}

// WithQuoteService sets the underwriting collaborator.
func WithQuoteService(q ports.QuoteService) Option {
	return func(e *Engine) { e.coreOpts = append(e.coreOpts, workflow.WithQuoteService(q)) }
}

// WithStepBudget overrides the per-turn control-loop iteration budget.
func WithStepBudget(n int) Option {
	return func(e *Engine) { e.coreOpts = append(e.coreOpts, workflow.WithStepBudget(n)) }
}

// New initializes a FormFlow Engine with the embedded ACORD schema unless a
// custom registry is provided.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}

	if e.registry == nil {
		e.registry = schema.Default()
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if e.store == nil {
		e.store = memory.NewStore()
	}

	coreOpts := append([]workflow.Option{
		workflow.WithLogger(e.logger),
		workflow.WithHooks(e.hooks),
	}, e.coreOpts...)

	e.core = workflow.NewEngine(e.registry, coreOpts...)
	return e, nil
}

// Registry returns the form schema registry in use.
func (e *Engine) Registry() *schema.Registry {
	return e.registry
}

// StartSession creates a new session, runs the opening turn (which asks the
// first question) and persists the state. An empty sessionID generates one.
func (e *Engine) StartSession(ctx context.Context, sessionID, userID string) (*domain.State, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	state := e.core.NewState(sessionID, userID)
	e.logger.Info("session started", "session_id", sessionID, "user_id", userID)

	turnErr := e.core.RunTurn(ctx, state)
	if turnErr != nil && !errors.Is(turnErr, domain.ErrStepBudgetExceeded) {
		return nil, turnErr
	}
	if err := e.store.Save(ctx, sessionID, state); err != nil {
		return nil, err
	}
	return state, turnErr
}

// HandleInput feeds one user input into an existing session, runs the turn
// to completion or suspension, and persists the result. The state is saved
// even when the step budget is exceeded, so the session stays resumable.
func (e *Engine) HandleInput(ctx context.Context, sessionID, input string) (*domain.State, error) {
	state, err := e.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	e.core.Submit(state, input)
	turnErr := e.core.RunTurn(ctx, state)
	if turnErr != nil && !errors.Is(turnErr, domain.ErrStepBudgetExceeded) {
		return nil, turnErr
	}
	if err := e.store.Save(ctx, sessionID, state); err != nil {
		return nil, err
	}
	return state, turnErr
}

// Session returns the persisted state for a session.
func (e *Engine) Session(ctx context.Context, sessionID string) (*domain.State, error) {
	return e.store.Load(ctx, sessionID)
}

// EndSession removes a session from the store.
func (e *Engine) EndSession(ctx context.Context, sessionID string) error {
	return e.store.Delete(ctx, sessionID)
}

// Sessions lists stored session IDs when the store supports enumeration.
func (e *Engine) Sessions(ctx context.Context) ([]string, error) {
	if lister, ok := e.store.(ports.SessionLister); ok {
		return lister.List(ctx)
	}
	return nil, errors.New("current store does not support listing sessions")
}

// Progress reports filled and total field counts for a state.
func (e *Engine) Progress(state *domain.State) (filled, total int) {
	return e.core.Progress(state)
}
