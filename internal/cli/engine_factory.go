package cli

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"

	"github.com/inevo/formflow"
	"github.com/inevo/formflow/internal/adapters/file"
	"github.com/inevo/formflow/internal/adapters/redis"
	"github.com/inevo/formflow/pkg/adapters/docfile"
	"github.com/inevo/formflow/pkg/adapters/email"
	"github.com/inevo/formflow/pkg/adapters/guidewire"
	"github.com/inevo/formflow/pkg/adapters/ollama"
	"github.com/inevo/formflow/pkg/adapters/static"
	"github.com/inevo/formflow/pkg/persistence/middleware"
	"github.com/inevo/formflow/pkg/ports"
)

// CreateEngine initializes a FormFlow engine with standard CLI conventions.
// Extra options are appended last so callers can override defaults. The
// returned cleanup closes the session store when it holds a connection.
func CreateEngine(opts RunOptions, logger *slog.Logger, extra ...formflow.Option) (*formflow.Engine, func(), error) {
	engineOpts := []formflow.Option{
		formflow.WithLogger(logger),
		formflow.WithDocumentService(docfile.New(opts.OutputDir)),
		formflow.WithMailer(email.NewConsoleMailer(os.Stdout)),
		formflow.WithQuoteService(guidewire.New()),
	}

	if opts.Debug {
		engineOpts = append(engineOpts, formflow.WithLifecycleHooks(createDebugHooks(logger)))
	}

	engineOpts = append(engineOpts, formflow.WithTextGenerator(createGenerator(opts)))
	engineOpts = append(engineOpts, extra...)

	cleanup := func() {}
	switch {
	case opts.RedisAddr != "":
		store := redis.New(opts.RedisAddr, "", 0)
		wrapped, err := wrapStore(store)
		if err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		engineOpts = append(engineOpts, formflow.WithStore(wrapped))
		cleanup = func() { _ = store.Close() }
	case opts.SessionID != "" || opts.Persist:
		// A named session should survive the process; park it on disk.
		wrapped, err := wrapStore(file.New(""))
		if err != nil {
			return nil, nil, err
		}
		engineOpts = append(engineOpts, formflow.WithStore(wrapped))
	}

	engine, err := formflow.New(engineOpts...)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("error initializing engine: %w", err)
	}

	return engine, cleanup, nil
}

// wrapStore applies the at-rest encryption middleware when
// FORMFLOW_ENCRYPT_KEY holds a base64-encoded 32-byte key.
func wrapStore(store ports.StateStore) (ports.StateStore, error) {
	encoded := os.Getenv("FORMFLOW_ENCRYPT_KEY")
	if encoded == "" {
		return store, nil
	}
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("FORMFLOW_ENCRYPT_KEY is not valid base64: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("FORMFLOW_ENCRYPT_KEY must decode to 32 bytes, got %d", len(key))
	}
	wrap := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
	return wrap(store), nil
}

// createGenerator picks the question phrasing strategy. Without an Ollama
// endpoint the deterministic templates keep the workflow fully offline.
func createGenerator(opts RunOptions) ports.TextGenerator {
	if opts.OllamaURL == "" {
		return static.New()
	}
	ollamaOpts := []ollama.Option{}
	if opts.Model != "" {
		ollamaOpts = append(ollamaOpts, ollama.WithModel(opts.Model))
	}
	return ollama.New(opts.OllamaURL, ollamaOpts...)
}
