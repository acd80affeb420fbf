// Package shell executes hprompt command lines against the session: navigation,
// mutations, removals and request previews. No request is ever sent.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/bastiangx/hprompt/pkg/session"
	"github.com/bastiangx/hprompt/pkg/suggest"
	"github.com/bastiangx/hprompt/pkg/urltree"
	"github.com/charmbracelet/log"
)

// ErrUnknownCommand is returned for input that is neither a command nor a mutation.
var ErrUnknownCommand = errors.New("unknown command")

// Result is what a command produced for the front end.
type Result struct {
	Output string
	// Exit asks the front end to end the session.
	Exit bool
	// Clear asks the front end to clear the screen.
	Clear bool
}

// Executor runs command lines. It is the only writer of the session.
type Executor struct {
	ctx    *session.Context
	tables *suggest.Tables
	depth  int
}

const maxSourceDepth = 8

// New creates an executor over ctx. A nil tables uses suggest.DefaultTables.
func New(ctx *session.Context, tables *suggest.Tables) *Executor {
	if tables == nil {
		tables = suggest.DefaultTables()
	}
	return &Executor{ctx: ctx, tables: tables}
}

// Context returns the session the executor writes to.
func (e *Executor) Context() *session.Context {
	return e.ctx
}

// Execute runs one command line.
func (e *Executor) Execute(line string) (Result, error) {
	words, err := Tokenize(line)
	if err != nil {
		return Result{}, err
	}
	if len(words) == 0 {
		return Result{}, nil
	}
	words, redirect, err := splitRedirect(words)
	if err != nil {
		return Result{}, err
	}

	res, err := e.dispatch(words)
	if err != nil {
		return Result{}, err
	}
	if redirect.path != "" {
		if err := redirect.write(res.Output); err != nil {
			return Result{}, err
		}
		res.Output = ""
	}
	return res, nil
}

func (e *Executor) dispatch(words []string) (Result, error) {
	cmd, args := words[0], words[1:]
	switch cmd {
	case "exit":
		return Result{Output: "Goodbye!", Exit: true}, nil
	case "clear":
		return Result{Clear: true}, nil
	case "help":
		return Result{Output: e.help()}, nil
	case "env":
		return Result{Output: strings.TrimSuffix(e.ctx.FormatPrompt(), "\n")}, nil
	case "cd":
		return e.cd(args)
	case "ls":
		return e.ls(args)
	case "rm":
		return e.rm(args)
	case "source":
		return e.source(args, false)
	case "exec":
		return e.source(args, true)
	case "httpie", "curl":
		return e.preview(cmd, args)
	}
	if _, ok := e.tables.Actions[strings.ToLower(cmd)]; ok {
		return e.action(strings.ToLower(cmd), args)
	}

	muts, err := ParseMutations(words, e.tables)
	if err != nil {
		return Result{}, err
	}
	ApplyAll(e.ctx, muts)
	return Result{}, nil
}

func (e *Executor) cd(args []string) (Result, error) {
	if len(args) > 1 {
		return Result{}, fmt.Errorf("cd: too many arguments")
	}
	target := "/"
	if len(args) == 1 {
		target = args[0]
	}
	e.changePath(e.ctx, target)
	if segments := e.ctx.PathSegments(); len(segments) > 0 {
		e.ctx.Root.AddPath(segments, urltree.Dir)
	}
	return Result{}, nil
}

// changePath points ctx at target: a full URL replaces the URL, an absolute
// path replaces the path and a relative one is resolved against it.
func (e *Executor) changePath(ctx *session.Context, target string) {
	if isURL(target) {
		ctx.URL = strings.TrimRight(target, "/")
		return
	}
	var base []string
	if !strings.HasPrefix(target, "/") {
		base = ctx.PathSegments()
	}
	ctx.SetPath(urltree.Resolve(base, strings.Split(target, "/")))
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func (e *Executor) ls(args []string) (Result, error) {
	path := e.ctx.PathSegments()
	if len(args) > 0 {
		if strings.HasPrefix(args[0], "/") {
			path = nil
		}
		path = append(path, strings.Split(args[0], "/")...)
	}
	var lines []string
	for _, node := range e.ctx.Root.Ls(path...) {
		name := node.Name
		if node.IsDir() {
			name += "/"
		}
		lines = append(lines, name)
	}
	return Result{Output: strings.Join(lines, "\n")}, nil
}

func (e *Executor) rm(args []string) (Result, error) {
	if len(args) == 1 && args[0] == "*" {
		e.ctx.Reset()
		return Result{}, nil
	}
	if len(args) != 2 {
		return Result{}, fmt.Errorf("rm: usage: rm -h|-q|-b|-o NAME, or rm *")
	}
	var params []*session.Params
	switch args[0] {
	case "-h":
		params = []*session.Params{e.ctx.Headers}
	case "-q":
		params = []*session.Params{e.ctx.QuerystringParams}
	case "-b":
		params = []*session.Params{e.ctx.BodyParams, e.ctx.BodyJSONParams}
	case "-o":
		params = []*session.Params{e.ctx.Options}
	default:
		return Result{}, fmt.Errorf("rm: unknown flag %s", args[0])
	}

	name := args[1]
	removed := false
	for _, p := range params {
		if name == "*" {
			p.Clear()
			removed = true
			continue
		}
		if p.Delete(name) {
			removed = true
		}
	}
	if !removed {
		return Result{}, fmt.Errorf("rm: %s: no such key", name)
	}
	return Result{}, nil
}

// action previews a request. Path and mutations given on the line apply to
// this request only.
func (e *Executor) action(method string, args []string) (Result, error) {
	ctx, err := e.oneOff(args)
	if err != nil {
		return Result{}, err
	}
	log.Debugf("Prepared %s %s", strings.ToUpper(method), ctx.URL)
	return Result{Output: ctx.FormatHTTPie(method)}, nil
}

func (e *Executor) preview(tool string, args []string) (Result, error) {
	method := ""
	if len(args) > 0 {
		if _, ok := e.tables.Actions[strings.ToLower(args[0])]; ok {
			method = strings.ToLower(args[0])
			args = args[1:]
		}
	}
	ctx, err := e.oneOff(args)
	if err != nil {
		return Result{}, err
	}
	if tool == "curl" {
		return Result{Output: ctx.FormatCurl(method)}, nil
	}
	return Result{Output: ctx.FormatHTTPie(method)}, nil
}

// oneOff copies the session and applies an optional leading path plus mutations.
func (e *Executor) oneOff(args []string) (*session.Context, error) {
	ctx := e.ctx.Copy()
	if len(args) > 0 && !strings.HasPrefix(args[0], "--") {
		if _, ok := parseItem(args[0]); !ok || isURL(args[0]) {
			e.changePath(ctx, args[0])
			args = args[1:]
		}
	}
	muts, err := ParseMutations(args, e.tables)
	if err != nil {
		return nil, err
	}
	ApplyAll(ctx, muts)
	return ctx, nil
}

// source runs every line of a file. With reset the session is cleared first.
func (e *Executor) source(args []string, reset bool) (Result, error) {
	if len(args) != 1 {
		return Result{}, fmt.Errorf("source: usage: source FILE")
	}
	if e.depth >= maxSourceDepth {
		return Result{}, fmt.Errorf("source: %s: nested too deeply", args[0])
	}
	e.depth++
	defer func() { e.depth-- }()
	f, err := os.Open(args[0])
	if err != nil {
		return Result{}, fmt.Errorf("open %s: %w", args[0], err)
	}
	defer f.Close()

	if reset {
		e.ctx.Reset()
	}
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		res, err := e.Execute(line)
		if err != nil {
			return Result{}, fmt.Errorf("%s:%d: %w", args[0], lineNo, err)
		}
		if res.Exit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return Result{}, fmt.Errorf("read %s: %w", args[0], err)
	}
	return Result{}, nil
}

func (e *Executor) help() string {
	var b strings.Builder
	section := func(title string, table map[string]string) {
		b.WriteString(title + ":\n")
		names := make([]string, 0, len(table))
		for name := range table {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			fmt.Fprintf(&b, "  %-8s %s\n", name, table[name])
		}
	}
	section("Commands", e.tables.RootCommands)
	section("Actions", e.tables.Actions)
	b.WriteString("Mutations:\n")
	b.WriteString("  name:value    set a header\n")
	b.WriteString("  name==value   set a querystring parameter\n")
	b.WriteString("  name=value    set a body parameter\n")
	b.WriteString("  name:=json    set a raw JSON body parameter\n")
	b.WriteString("  --option      set an HTTPie option\n")
	return strings.TrimSuffix(b.String(), "\n")
}
