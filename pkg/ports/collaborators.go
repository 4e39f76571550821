package ports

import "context"

// PromptRole selects which phrasing template the text generator fills.
type PromptRole string

const (
	// PromptQuestion asks the user for one field.
	PromptQuestion PromptRole = "question"
	// PromptReflection explains a validation failure and how to fix it.
	PromptReflection PromptRole = "reflection"
	// PromptPlanning announces a transition from one form section to another.
	PromptPlanning PromptRole = "planning"
)

// PromptInputs carries the template variables for one generation request.
// Only the fields relevant to the role are set.
type PromptInputs struct {
	Field       string // bare field name, form prefix stripped
	Description string // best-available human description of the field
	Phase       string // display label of the current form/section
	RawInput    string // the rejected value (reflection)
	Error       string // the validation error (reflection)
	PrevSection string // previous form label (planning)
	NextSection string // next form label (planning)
}

// TextGenerator produces conversational phrasings. Implementations must not
// block the workflow on failure: callers substitute deterministic fallbacks
// whenever an error is returned.
type TextGenerator interface {
	Generate(ctx context.Context, role PromptRole, in PromptInputs) (string, error)
}

// DocumentService is the document I/O collaborator. Translation between the
// document's native field naming and the schema naming is the service's
// responsibility, not the core's.
type DocumentService interface {
	// FieldTooltip returns the document-derived description for a schema
	// field name, or "" when none is known.
	FieldTooltip(field string) string

	// ExtractFields reads a document and returns schema-keyed field values.
	// A missing or unreadable document yields an empty map, never an error
	// the workflow must handle.
	ExtractFields(ctx context.Context, path string) map[string]string

	// WriteFilled renders the filled document for one form and returns the
	// output path.
	WriteFilled(ctx context.Context, formID string, values map[string]string) (string, error)
}

// Email is one outbound (simulated) message.
type Email struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers simulated email traffic.
type Mailer interface {
	Send(ctx context.Context, msg Email) error
}

// Quote is the result of a (simulated) underwriting submission.
type Quote struct {
	ID     string
	Amount float64
}

// QuoteService submits the collected data for rating.
type QuoteService interface {
	RequestQuote(ctx context.Context, forms map[string]map[string]string) (Quote, error)
}
