package main

import (
	"fmt"
	"os"

	"github.com/bastiangx/hprompt/internal/shell"
	"github.com/bastiangx/hprompt/internal/utils"
	"github.com/bastiangx/hprompt/pkg/config"
	"github.com/bastiangx/hprompt/pkg/session"
	"github.com/bastiangx/hprompt/pkg/suggest"
	"github.com/charmbracelet/log"
)

// app is one session with everything the front ends need.
type app struct {
	cfg        *config.Config
	configPath string
	ctx        *session.Context
	completer  *suggest.Completer
	executor   *shell.Executor
	limit      int
}

// appOptions are the flag values shared by every command.
type appOptions struct {
	configPath string
	url        string
	spec       string
	limit      int
}

func newApp(opts appOptions) (*app, error) {
	cfg, configPath, err := config.LoadConfigWithPriority(opts.configPath)
	if err != nil {
		return nil, err
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(configPath))

	url := cfg.Session.URL
	if opts.url != "" {
		url = opts.url
	}
	ctx := session.New(url)

	spec := cfg.Session.Spec
	if opts.spec != "" {
		spec = opts.spec
	}
	if spec != "" {
		if err := seedTree(ctx, spec); err != nil {
			return nil, err
		}
	}

	limit := cfg.Completer.MaxSuggestions
	if opts.limit > 0 {
		limit = opts.limit
	}

	tables := suggest.DefaultTables().WithHeaderValues(cfg.HeaderValues)
	return &app{
		cfg:        cfg,
		configPath: configPath,
		ctx:        ctx,
		completer:  suggest.NewCompleter(ctx, tables),
		executor:   shell.New(ctx, tables),
		limit:      limit,
	}, nil
}

// seedTree loads the paths of an OpenAPI document into the session tree.
func seedTree(ctx *session.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open spec: %w", err)
	}
	defer f.Close()

	n, err := ctx.Root.LoadOpenAPI(f)
	if err != nil {
		return fmt.Errorf("load spec %s: %w", path, err)
	}
	log.Debugf("Seeded %d paths from %s", n, path)
	return nil
}

// historyPath keeps the shell history next to the config file.
func (a *app) historyPath() string {
	return utils.HistoryPath(a.configPath)
}

// style is the highlighting style, empty when highlighting is off.
func (a *app) style() string {
	if !a.cfg.CLI.Highlight {
		return ""
	}
	return a.cfg.CLI.Style
}
