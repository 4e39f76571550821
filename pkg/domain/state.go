package domain

// Phase is the coarse stage of the overall workflow.
type Phase string

const (
	PhaseCommonFields    Phase = "common_fields"    // Collecting the shared applicant fields
	PhaseCommonCompleted Phase = "common_completed" // Common fields done, deciding how to proceed
	PhaseFormSpecific    Phase = "form_specific"    // Collecting per-form fields
	PhaseVerification    Phase = "verification"     // Running completeness checks
	PhaseSubmission      Phase = "submission"       // Handing off to quoting
)

// SubmissionStatus tracks the lifecycle of the submission itself.
type SubmissionStatus string

const (
	StatusDraft              SubmissionStatus = "draft"
	StatusAnalyzedComplete   SubmissionStatus = "analyzed_complete"
	StatusAnalyzedIncomplete SubmissionStatus = "analyzed_incomplete"
	StatusWaitingCorrection  SubmissionStatus = "waiting_correction"
	StatusEmailed            SubmissionStatus = "emailed"
	StatusBound              SubmissionStatus = "bound"
	StatusQuoted             SubmissionStatus = "quoted"
	StatusSubmitted          SubmissionStatus = "submitted"
)

// Terminal reports whether the status ends the workflow.
func (s SubmissionStatus) Terminal() bool {
	switch s {
	case StatusQuoted, StatusSubmitted, StatusEmailed, StatusBound:
		return true
	}
	return false
}

// AgentID identifies one sub-task the orchestrator can select.
type AgentID string

const (
	AgentNone           AgentID = "" // Halt signal for one control-loop iteration
	AgentOrchestrator   AgentID = "orchestrator"
	AgentInputValidator AgentID = "input_validator"
	AgentSchemaMapper   AgentID = "schema_mapper"
	AgentConversation   AgentID = "conversation_manager"
	AgentFormPopulation AgentID = "form_population"
	AgentCompleteness   AgentID = "completeness_verification"
	AgentEmail          AgentID = "email_processing"
	AgentDocIntel       AgentID = "document_intelligence"
	AgentGuidewire      AgentID = "guidewire_integration"
	AgentUserPreference AgentID = "user_preference"
)

// GlobalInterrupt is the PendingField sentinel set while the user is inside
// the interrupt menu rather than answering a specific field.
const GlobalInterrupt = "GLOBAL_INTERRUPT"

// CompletionMethod is how the user chose to finish the application.
type CompletionMethod string

const (
	MethodChat   CompletionMethod = "chat"
	MethodManual CompletionMethod = "manual"
	MethodEmail  CompletionMethod = "email"
)

// Message is one turn of the conversation transcript.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ValidationError records a rejected input for a field.
type ValidationError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// FormData maps field name to value for one form. An empty string means the
// field is unfilled.
type FormData map[string]string

// Scratch key names shared between agents via State.FieldStatus.
const (
	StatusKeyCommonComplete = "common_complete"
	StatusKeyFormsFilled    = "forms_filled"
	StatusKeyLastActiveForm = "last_active_form"
)

// State is the single mutable record for one session. Agents mutate it in
// place; History and ValidationErrors are append-only (ValidationErrors is
// cleared only by a successful mapping).
type State struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`

	History []Message `json:"history"`

	// Forms is the source of truth: form ID -> field name -> value.
	Forms map[string]FormData `json:"forms"`

	// ActiveForms lists the forms currently visible to the resolver, in
	// activation order. Always contains the root form; grows via triggers.
	ActiveForms []string `json:"active_forms"`

	Phase        Phase   `json:"phase"`
	CurrentAgent AgentID `json:"current_agent"`
	NextAgent    AgentID `json:"next_agent"`

	// WaitingForInput tells the control loop to suspend until the caller
	// submits a raw value.
	WaitingForInput bool `json:"waiting_for_input"`

	ValidationErrors []ValidationError `json:"validation_errors"`

	// FieldStatus and RequiredStatus are free-form scratch signals between
	// agents (common_complete, forms_filled, last_active_form).
	FieldStatus    map[string]string `json:"field_status"`
	RequiredStatus map[string]string `json:"required_status"`

	// PendingField is "<formID>:<fieldName>" while a question is outstanding,
	// or GlobalInterrupt while the user is in the menu.
	PendingField   string `json:"pending_field"`
	PendingValue   string `json:"pending_value"`
	ValidatedValue string `json:"validated_value"`
	InputValid     bool   `json:"input_valid"`

	CompletionMethod CompletionMethod `json:"completion_method,omitempty"`
	Status           SubmissionStatus `json:"status"`
	MissingFieldInfo string           `json:"missing_field_info,omitempty"`

	// IncomingAttachment is a document path queued for extraction.
	IncomingAttachment string `json:"incoming_attachment,omitempty"`

	QuoteID     string  `json:"quote_id,omitempty"`
	QuoteAmount float64 `json:"quote_amount,omitempty"`

	WorkflowComplete bool `json:"workflow_complete"`
}

// NewState creates a clean session state in the common-fields phase. The
// forms map should come from the schema registry so every known field exists
// as an (initially empty) key.
func NewState(sessionID, userID, rootFormID string, forms map[string]FormData) *State {
	return &State{
		SessionID:    sessionID,
		UserID:       userID,
		Forms:        forms,
		ActiveForms:  []string{rootFormID},
		Phase:        PhaseCommonFields,
		CurrentAgent: AgentOrchestrator,
		Status:       StatusDraft,
		FieldStatus:  map[string]string{},
	}
}

// IsActive reports whether the form is in the active set.
func (s *State) IsActive(formID string) bool {
	for _, id := range s.ActiveForms {
		if id == formID {
			return true
		}
	}
	return false
}

// Activate appends a form to the active set exactly once.
func (s *State) Activate(formID string) bool {
	if s.IsActive(formID) {
		return false
	}
	s.ActiveForms = append(s.ActiveForms, formID)
	return true
}

// AppendMessage appends one transcript entry.
func (s *State) AppendMessage(role, content string) {
	s.History = append(s.History, Message{Role: role, Content: content})
}

// Clone returns a deep copy safe for persistence or concurrent reads.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	next := *s
	next.History = append([]Message(nil), s.History...)
	next.ActiveForms = append([]string(nil), s.ActiveForms...)
	next.ValidationErrors = append([]ValidationError(nil), s.ValidationErrors...)
	next.Forms = make(map[string]FormData, len(s.Forms))
	for id, form := range s.Forms {
		copied := make(FormData, len(form))
		for k, v := range form {
			copied[k] = v
		}
		next.Forms[id] = copied
	}
	next.FieldStatus = make(map[string]string, len(s.FieldStatus))
	for k, v := range s.FieldStatus {
		next.FieldStatus[k] = v
	}
	if s.RequiredStatus != nil {
		next.RequiredStatus = make(map[string]string, len(s.RequiredStatus))
		for k, v := range s.RequiredStatus {
			next.RequiredStatus[k] = v
		}
	}
	return &next
}
