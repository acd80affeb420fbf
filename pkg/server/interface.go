/*
Package server implements msgpack IPC for hprompt sessions.

The server exposes one session, its completion engine and its command executor
to another process over stdin/stdout, so an editor or a GUI can drive the same
shell without a terminal.

# IPC

The server operates on a request response model: clients write msgpack encoded
requests to stdin and read one msgpack encoded response per request from stdout.
Before reading any request the server writes a ready message carrying the
session id:

	{"status": "ready", "session": "5f0c..."}

Completion requests carry the text before the cursor and an optional limit:

	{"id": "req_001", "a": "complete", "t": "post na", "l": 10}

The server responds with ranked suggestions, each with its insertion text, the
start position relative to the cursor and a description, plus timing in
microseconds:

	{"id": "req_001", "s": [{"t": "name", "p": -2, "d": "Body parameter (=Jane Doe)"}], "c": 1, "us": 38}

Exec requests run a command line against the session:

	{"id": "req_002", "a": "exec", "t": "Accept:application/json"}
	{"id": "req_002", "o": "", "x": false}

Failures are reported with a code:

	{"id": "req_003", "e": "unknown command: foo", "c": 400}

# Message Types

Request is shared by every action; the action defaults to "complete".
CompletionResponse, ExecResponse, HealthResponse and ErrorResponse are the replies.
*/
package server

// Actions understood by the server.
const (
	ActionComplete = "complete"
	ActionExec     = "exec"
	ActionHealth   = "health"
)

// ReadyMessage is written once before the first request is read.
type ReadyMessage struct {
	Status  string `msgpack:"status"`
	Session string `msgpack:"session"`
}

// Request - a single client request
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"a,omitempty"`
	Text   string `msgpack:"t"`
	Limit  int    `msgpack:"l,omitempty"`
}

// CompletionSuggestion - minimal suggestion response
type CompletionSuggestion struct {
	Text  string `msgpack:"t"`
	Start int    `msgpack:"p"`
	Meta  string `msgpack:"d,omitempty"`
}

// CompletionResponse - completion response
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"us"`
}

// ExecResponse - result of an exec request
type ExecResponse struct {
	ID     string `msgpack:"id"`
	Output string `msgpack:"o"`
	Exit   bool   `msgpack:"x"`
}

// HealthResponse - reply to a health request
type HealthResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
