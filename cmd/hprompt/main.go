/*
Package main implements the hprompt command line HTTP shell.

hprompt keeps a session (a base URL plus headers, querystring and body
parameters and HTTPie options) and offers context aware completions while
the user types commands against it. Requests are never sent: actions print
the equivalent HTTPie or curl command line.

# Usage

Start the interactive shell on a URL:

	hprompt http://localhost:8000/api

Seed the URL tree from an OpenAPI document so cd and ls can complete paths:

	hprompt --spec openapi.yaml https://petstore.example.com

Run the line mode probe, printing the completions of each line:

	hprompt probe -d

Serve one session over msgpack IPC on stdin/stdout:

	hprompt serve --limit 10

# Configuration

The config file is created with defaults on first run:

	[session]
	url = "http://localhost:8000"
	spec = ""

	[completer]
	max_suggestions = 24

	[server]
	max_text = 4096

	[cli]
	highlight = true
	style = "monokai"
	menu_height = 8

	[header_values]
	X-Api-Version = ["1", "2"]

Use hprompt config to print its path, --rebuild to restore defaults or
--url, --limit and --style to change values.
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/hprompt/internal/logger"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	AppName = "hprompt"
	gh      = "https://github.com/bastiangx/hprompt"
)

// sigHandler exits on SIGTERM. Interrupts are left to the interactive shell.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// showVersion prints the styled version banner to stderr.
func showVersion() {
	l := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ hprompt ] an HTTP shell with completions")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}

// setLogLevel enables debug output with timestamps, warnings otherwise.
func setLogLevel(debug bool) {
	if debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
		return
	}
	log.SetLevel(log.WarnLevel)
}
