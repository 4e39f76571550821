// Package mcp exposes the workflow engine as an MCP server, so agent hosts
// can drive form-filling sessions as tools: start a session, send inputs,
// inspect the collected data.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/inevo/formflow"
	"github.com/inevo/formflow/pkg/domain"
)

// SessionResponse is the unified tool output: transcript plus the flags a
// host needs to decide whether to keep sending input.
type SessionResponse struct {
	SessionID        string                  `json:"session_id" jsonschema_description:"Session identifier for subsequent calls"`
	Phase            domain.Phase            `json:"phase" jsonschema_description:"Current workflow phase"`
	Status           domain.SubmissionStatus `json:"status" jsonschema_description:"Submission status"`
	WaitingForInput  bool                    `json:"waiting_for_input" jsonschema_description:"True when the engine expects another input"`
	WorkflowComplete bool                    `json:"workflow_complete" jsonschema_description:"True when the workflow has finished"`
	Messages         []domain.Message        `json:"messages" jsonschema_description:"Conversation transcript"`
	QuoteID          string                  `json:"quote_id,omitempty" jsonschema_description:"Quote ID once generated"`
	QuoteAmount      float64                 `json:"quote_amount,omitempty" jsonschema_description:"Quote amount once generated"`
}

// Server wraps the FormFlow Engine and exposes it as an MCP Server.
type Server struct {
	engine    *formflow.Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine *formflow.Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("formflow-mcp", strings.TrimSpace(formflow.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	startTool := mcp.NewTool("start_session",
		mcp.WithDescription("Start a new form-filling session. Returns the opening question."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Identifier of the applicant")),
		mcp.WithString("session_id", mcp.Description("Session ID to use (optional, generated when omitted)")),
		mcp.WithOutputSchema[SessionResponse](),
	)
	s.mcpServer.AddTool(startTool, mcp.NewStructuredToolHandler(s.handleStartSession))

	inputTool := mcp.NewTool("send_input",
		mcp.WithDescription("Send one user input to a session and run the workflow until it suspends or completes."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID from start_session")),
		mcp.WithString("input", mcp.Required(), mcp.Description("The user's answer or command")),
		mcp.WithOutputSchema[SessionResponse](),
	)
	s.mcpServer.AddTool(inputTool, mcp.NewStructuredToolHandler(s.handleSendInput))

	getTool := mcp.NewTool("get_session",
		mcp.WithDescription("Read the current state of a session without advancing it."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[SessionResponse](),
	)
	s.mcpServer.AddTool(getTool, mcp.NewStructuredToolHandler(s.handleGetSession))

	s.mcpServer.AddTool(mcp.NewTool("get_form_data",
		mcp.WithDescription("Get the collected form data of a session as JSON."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessionID, err := request.RequireString("session_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		state, err := s.engine.Session(ctx, sessionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load session failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(state.Forms)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func toSessionResponse(state *domain.State) SessionResponse {
	return SessionResponse{
		SessionID:        state.SessionID,
		Phase:            state.Phase,
		Status:           state.Status,
		WaitingForInput:  state.WaitingForInput,
		WorkflowComplete: state.WorkflowComplete,
		Messages:         state.History,
		QuoteID:          state.QuoteID,
		QuoteAmount:      state.QuoteAmount,
	}
}

func (s *Server) handleStartSession(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (SessionResponse, error) {
	userID, _ := args["user_id"].(string)
	if userID == "" {
		return SessionResponse{}, fmt.Errorf("user_id is required")
	}
	sessionID, _ := args["session_id"].(string)

	state, err := s.engine.StartSession(ctx, sessionID, userID)
	if err != nil && state == nil {
		return SessionResponse{}, fmt.Errorf("start session failed: %w", err)
	}
	return toSessionResponse(state), nil
}

func (s *Server) handleSendInput(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (SessionResponse, error) {
	sessionID, _ := args["session_id"].(string)
	input, _ := args["input"].(string)
	if sessionID == "" || input == "" {
		return SessionResponse{}, fmt.Errorf("session_id and input are required")
	}

	state, err := s.engine.HandleInput(ctx, sessionID, input)
	if err != nil && state == nil {
		return SessionResponse{}, fmt.Errorf("send input failed: %w", err)
	}
	return toSessionResponse(state), nil
}

func (s *Server) handleGetSession(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (SessionResponse, error) {
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		return SessionResponse{}, fmt.Errorf("session_id is required")
	}

	state, err := s.engine.Session(ctx, sessionID)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("load session failed: %w", err)
	}
	return toSessionResponse(state), nil
}

func (s *Server) registerResources() {
	// EXPOSE: formflow://schema
	s.mcpServer.AddResource(mcp.NewResource("formflow://schema", "Form Schema Registry",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		reg := s.engine.Registry()
		schema := map[string]any{}
		for _, formID := range reg.FormIDs() {
			schema[formID] = map[string]any{
				"title":  reg.Title(formID),
				"fields": reg.Fields(formID),
			}
		}
		jsonBytes, err := json.Marshal(schema)
		if err != nil {
			return nil, fmt.Errorf("failed to encode schema: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "formflow://schema",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
