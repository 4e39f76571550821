package cli

// RunOptions contains all the configuration for the chat command.
type RunOptions struct {
	Headless  bool
	JSON      bool
	Debug     bool
	SessionID string
	UserID    string

	RedisAddr string // empty: in-memory session store
	Persist   bool   // force the durable file store even without a session ID
	OllamaURL string // empty: deterministic phrasing, no LLM
	Model     string
	OutputDir string // where filled form documents are written
}

// Execute handles the 'chat' command logic, dispatching to the right
// frontend for the selected mode.
func Execute(opts RunOptions) error {
	if opts.JSON || opts.Headless {
		return RunHeadless(opts)
	}
	return RunInteractive(opts)
}
