package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/hprompt/internal/shell"
	"github.com/bastiangx/hprompt/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// Executor runs command lines against the session.
type Executor interface {
	Execute(line string) (shell.Result, error)
}

// Options tune request handling.
type Options struct {
	// MaxText rejects requests whose text is longer, in bytes.
	MaxText int
	// DefaultLimit applies when a completion request has no limit.
	DefaultLimit int
}

// Server handles the IPC for one session
type Server struct {
	completer suggest.ICompleter
	executor  Executor
	opts      Options
	sessionID string
	decoder   *msgpack.Decoder
	encoder   *msgpack.Encoder
}

// NewServer creates a server using stdin/stdout for IPC
func NewServer(completer suggest.ICompleter, executor Executor, opts Options) *Server {
	return NewServerWithIO(completer, executor, opts, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server reading requests from r and writing responses to w
func NewServerWithIO(completer suggest.ICompleter, executor Executor, opts Options, r io.Reader, w io.Writer) *Server {
	if opts.MaxText <= 0 {
		opts.MaxText = 4096
	}
	return &Server{
		completer: completer,
		executor:  executor,
		opts:      opts,
		sessionID: uuid.NewString(),
		decoder:   msgpack.NewDecoder(r),
		encoder:   msgpack.NewEncoder(w),
	}
}

// SessionID returns the id announced in the ready message.
func (s *Server) SessionID() string {
	return s.sessionID
}

// Start sends the ready message and serves requests until the input ends
// or an exec request asks to exit.
func (s *Server) Start() error {
	log.Debugf("Starting server, session %s", s.sessionID)
	if err := s.send(ReadyMessage{Status: "ready", Session: s.sessionID}); err != nil {
		return err
	}

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			// the stream position is unknown after a bad message
			_ = s.sendError("", "invalid msgpack request", 400)
			return fmt.Errorf("decode request: %w", err)
		}
		exit, err := s.handleRequest(req)
		if err != nil {
			return err
		}
		if exit {
			log.Debug("Exit requested, stopping server")
			return nil
		}
	}
}

// handleRequest dispatches on the action. It reports whether the session ended.
func (s *Server) handleRequest(req Request) (bool, error) {
	if len(req.Text) > s.opts.MaxText {
		log.Debugf("Request %s text too long: %d bytes", req.ID, len(req.Text))
		return false, s.sendError(req.ID, fmt.Sprintf("text exceeds maximum length of %d bytes", s.opts.MaxText), 400)
	}

	switch req.Action {
	case "", ActionComplete:
		return false, s.handleComplete(req)
	case ActionExec:
		return s.handleExec(req)
	case ActionHealth:
		return false, s.send(HealthResponse{ID: req.ID, Status: "ok"})
	default:
		return false, s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
	}
}

func (s *Server) handleComplete(req Request) error {
	limit := req.Limit
	if limit < 1 {
		limit = s.opts.DefaultLimit
	}

	start := time.Now()
	comps := s.completer.Suggest(req.Text, limit)
	elapsed := time.Since(start)

	suggestions := make([]CompletionSuggestion, len(comps))
	for i, c := range comps {
		suggestions[i] = CompletionSuggestion{Text: c.Text, Start: c.StartPosition, Meta: c.DisplayMeta}
	}
	return s.send(CompletionResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) handleExec(req Request) (bool, error) {
	if s.executor == nil {
		return false, s.sendError(req.ID, "exec is not available", 501)
	}
	res, err := s.executor.Execute(req.Text)
	if err != nil {
		return false, s.sendError(req.ID, err.Error(), 400)
	}
	return res.Exit, s.send(ExecResponse{ID: req.ID, Output: res.Output, Exit: res.Exit})
}

func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return fmt.Errorf("encode response: %w", err)
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) error {
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
