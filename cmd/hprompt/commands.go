package main

import (
	"fmt"
	"os"

	"github.com/bastiangx/hprompt/internal/cli"
	"github.com/bastiangx/hprompt/internal/logger"
	"github.com/bastiangx/hprompt/internal/tui"
	"github.com/bastiangx/hprompt/pkg/config"
	"github.com/bastiangx/hprompt/pkg/server"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var (
		opts    appOptions
		debug   bool
		version bool
	)

	// load builds the session from flags and the optional URL argument.
	load := func(args []string) (*app, error) {
		o := opts
		if len(args) > 0 {
			o.url = args[0]
		}
		return newApp(o)
	}

	root := &cobra.Command{
		Use:   "hprompt [url]",
		Short: "Interactive HTTP shell with completions",
		Long: `hprompt keeps a session of headers, querystring and body parameters and
HTTPie options for a base URL, and completes commands against it as you type.
Actions print the equivalent HTTPie or curl command; nothing is sent.`,
		Args:              cobra.MaximumNArgs(1),
		CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
		SilenceUsage:      true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setLogLevel(debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if version {
				showVersion()
				return nil
			}
			a, err := load(args)
			if err != nil {
				return err
			}
			m := tui.New(a.ctx, a.completer, a.executor, tui.Options{
				Style:       a.style(),
				MenuHeight:  a.cfg.CLI.MenuHeight,
				Limit:       a.limit,
				HistoryPath: a.historyPath(),
			})
			return tui.Run(m)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to a custom config.toml")
	flags.BoolVarP(&debug, "debug", "d", false, "Toggle debug mode")
	flags.StringVar(&opts.spec, "spec", "", "OpenAPI document used to seed the URL tree")
	flags.IntVar(&opts.limit, "limit", 0, "Number of suggestions to return (default from config)")
	root.Flags().BoolVar(&version, "version", false, "Show current version")

	root.AddCommand(
		&cobra.Command{
			Use:   "probe [url]",
			Short: "Print the completions of each input line (debugging)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := load(args)
				if err != nil {
					return err
				}
				log.SetReportTimestamp(false)
				log.Debug("Probe info:", "url", a.ctx.URL, "limit", a.limit, "maxText", a.cfg.Server.MaxText)
				return cli.NewInputHandler(a.completer, a.executor, a.cfg.Server.MaxText, a.limit, a.style()).Start()
			},
		},
		&cobra.Command{
			Use:   "serve [url]",
			Short: "Serve the session over msgpack IPC on stdin/stdout",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := load(args)
				if err != nil {
					return err
				}
				srv := server.NewServer(a.completer, a.executor, server.Options{
					MaxText:      a.cfg.Server.MaxText,
					DefaultLimit: a.limit,
				})
				showStartupInfo(a, srv.SessionID())
				return srv.Start()
			},
		},
		newConfigCmd(&opts),
	)
	return root
}

func newConfigCmd(opts *appOptions) *cobra.Command {
	var (
		rebuild bool
		url     string
		style   string
		limit   int
	)
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, rebuild or update the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rebuild {
				path, err := config.RebuildConfigFile()
				if err != nil {
					return fmt.Errorf("rebuild config: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Rebuilt %s\n", path)
				return nil
			}

			cfg, path, err := config.LoadConfigWithPriority(opts.configPath)
			if err != nil {
				return err
			}
			var urlArg, styleArg *string
			var limitArg *int
			if cmd.Flags().Changed("url") {
				urlArg = &url
			}
			if cmd.Flags().Changed("style") {
				styleArg = &style
			}
			if cmd.Flags().Changed("max-suggestions") {
				limitArg = &limit
			}
			if urlArg != nil || styleArg != nil || limitArg != nil {
				if path == "" {
					return fmt.Errorf("no writable config file")
				}
				if err := cfg.Update(path, urlArg, limitArg, styleArg); err != nil {
					return fmt.Errorf("update config: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), config.GetActiveConfigPath(path))
			return nil
		},
	}
	cmd.Flags().BoolVar(&rebuild, "rebuild", false, "Restore the default config file")
	cmd.Flags().StringVar(&url, "url", "", "Set the start URL")
	cmd.Flags().StringVar(&style, "style", "", "Set the highlighting style")
	cmd.Flags().IntVar(&limit, "max-suggestions", 0, "Set the default number of suggestions")
	return cmd
}

// showStartupInfo writes basic info about the server to stderr.
func showStartupInfo(a *app, sessionID string) {
	l := logger.New(AppName)
	l.SetLevel(log.InfoLevel)
	l.Infof("Version: %s", Version)
	l.Infof("Process ID: [ %d ]", os.Getpid())
	l.Infof("Session: %s", sessionID)
	l.Infof("URL: ( %s )", a.ctx.URL)
	l.Info("status: ready")
}
