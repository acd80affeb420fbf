// Package cli provides a line mode probe for the completer and the executor,
// used for debugging without the full screen prompt.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/hprompt/pkg/lexer"
	"github.com/bastiangx/hprompt/pkg/server"
	"github.com/bastiangx/hprompt/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	textStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	metaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// InputHandler reads lines and prints the completions for each one.
// Lines starting with '!' are executed against the session instead.
type InputHandler struct {
	completer    suggest.ICompleter
	executor     server.Executor
	maxText      int
	suggestLimit int
	style        string
	in           io.Reader
	out          io.Writer
}

// NewInputHandler creates a handler on stdin/stdout.
// An empty style disables highlighting of executed lines.
func NewInputHandler(completer suggest.ICompleter, executor server.Executor, maxText, limit int, style string) *InputHandler {
	return &InputHandler{
		completer:    completer,
		executor:     executor,
		maxText:      maxText,
		suggestLimit: limit,
		style:        style,
		in:           os.Stdin,
		out:          os.Stdout,
	}
}

// Start runs the loop until the input ends or an executed line exits.
func (h *InputHandler) Start() error {
	fmt.Fprintln(h.out, "hprompt probe")
	fmt.Fprintln(h.out, "type a line to see its completions, prefix it with ! to run it (Ctrl+D to quit):")

	reader := bufio.NewReader(h.in)
	for {
		fmt.Fprint(h.out, "> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		// keep trailing spaces, they change the classification
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if cmd, ok := strings.CutPrefix(line, "!"); ok {
			if h.run(cmd) {
				return nil
			}
			continue
		}
		h.handleInput(line)
	}
}

func (h *InputHandler) run(line string) (exit bool) {
	if h.executor == nil {
		fmt.Fprintln(h.out, errStyle.Render("exec is not available"))
		return false
	}
	if h.style != "" {
		log.Debugf("Running %s", strings.TrimSuffix(lexer.HighlightString(line, h.style), "\n"))
	}
	res, err := h.executor.Execute(line)
	if err != nil {
		fmt.Fprintln(h.out, errStyle.Render(err.Error()))
		return false
	}
	if res.Output != "" {
		fmt.Fprintln(h.out, res.Output)
	}
	return res.Exit
}

// handleInput prints the ranked completions for text.
func (h *InputHandler) handleInput(text string) {
	if h.maxText > 0 && len(text) > h.maxText {
		log.Errorf("Input too long: %d bytes", len(text))
		return
	}

	start := time.Now()
	comps := h.completer.Suggest(text, h.suggestLimit)
	log.Debugf("Took [ %v ] for '%s'", time.Since(start), text)

	if len(comps) == 0 {
		fmt.Fprintf(h.out, "No completions for '%s'\n", text)
		return
	}

	fmt.Fprintf(h.out, "Found %d completions for '%s':\n", len(comps), text)
	width := 0
	for _, c := range comps {
		width = max(width, lipgloss.Width(c.Text))
	}
	for i, c := range comps {
		name := textStyle.Render(c.Text) + strings.Repeat(" ", width-lipgloss.Width(c.Text))
		fmt.Fprintf(h.out, "%2d. %s %3d  %s\n", i+1, name, c.StartPosition, metaStyle.Render(c.DisplayMeta))
	}
}
