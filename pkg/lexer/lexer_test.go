package lexer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
)

type tok struct {
	typ   chroma.TokenType
	value string
}

func lex(t *testing.T, text string) []tok {
	t.Helper()
	tokens, err := Tokens(text)
	if err != nil {
		t.Fatalf("Input '%s': tokenise failed: %v", text, err)
	}
	var out []tok
	for _, tk := range tokens {
		if tk.Value == "" {
			continue
		}
		out = append(out, tok{tk.Type, tk.Value})
	}
	return out
}

func TestLexer(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expected    []tok
	}{
		{
			"action with url and mutation",
			"get http://example.com name=John",
			[]tok{
				{chroma.Keyword, "get"}, {chroma.Text, " "},
				{chroma.String, "http://example.com"}, {chroma.Text, " "},
				{chroma.Name, "name"}, {chroma.Operator, "="}, {chroma.String, "John"},
			},
		},
		{
			"cd path",
			"cd /api",
			[]tok{{chroma.Keyword, "cd"}, {chroma.Text, " "}, {chroma.String, "/api"}},
		},
		{
			"rm header",
			"rm -h Accept",
			[]tok{
				{chroma.Keyword, "rm"}, {chroma.Text, " "},
				{chroma.Name, "-h"}, {chroma.Text, " "}, {chroma.String, "Accept"},
			},
		},
		{
			"flag option",
			"--form",
			[]tok{{chroma.Name, "--form"}},
		},
		{
			"value option",
			"--style=monokai",
			[]tok{{chroma.Name, "--style"}, {chroma.Operator, "="}, {chroma.String, "monokai"}},
		},
		{
			"quoted value",
			"name='John Doe'",
			[]tok{
				{chroma.Name, "name"}, {chroma.Operator, "="},
				{chroma.Text, "'"}, {chroma.String, "John Doe"}, {chroma.Text, "'"},
			},
		},
		{
			"json mutation",
			"tags:=[1]",
			[]tok{{chroma.Name, "tags"}, {chroma.Operator, ":="}, {chroma.String, "[1]"}},
		},
		{
			"preview action",
			"httpie post",
			[]tok{{chroma.Keyword, "httpie"}, {chroma.Text, " "}, {chroma.Keyword, "post"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got := lex(t, tc.input)
			if len(got) != len(tc.expected) {
				t.Fatalf("Input '%s': expected %v, got %v", tc.input, tc.expected, got)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("Input '%s': token %d expected %v, got %v", tc.input, i, tc.expected[i], got[i])
				}
			}
		})
	}
}

func TestLexerNeverFails(t *testing.T) {
	inputs := []string{"", "'", "\"unterminated", "rm", "rm -x", "get 'http://x", "env > out.txt", "==:=", "\\"}
	for _, input := range inputs {
		tokens, err := Tokens(input)
		if err != nil {
			t.Errorf("Input '%s': unexpected error %v", input, err)
		}
		var b strings.Builder
		for _, tk := range tokens {
			b.WriteString(tk.Value)
		}
		if b.String() != input {
			t.Errorf("Input '%s': tokens should cover the text, got '%s'", input, b.String())
		}
	}
}

func TestTokensTrailingNewline(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		lastValue   string
	}{
		{"bare command", "rm", "rm"},
		{"action", "httpie post", "post"},
		{"open quote", "name='Jane", "Jane"},
		{"explicit newline", "ls\n", "\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			tokens, err := Tokens(tc.input)
			if err != nil {
				t.Fatalf("Input '%s': unexpected error %v", tc.input, err)
			}
			if len(tokens) == 0 {
				t.Fatalf("Input '%s': expected tokens", tc.input)
			}
			last := tokens[len(tokens)-1].Value
			if !strings.HasSuffix(last, tc.lastValue) {
				t.Errorf("Input '%s': expected last token to end with %q, got %q", tc.input, tc.lastValue, last)
			}
			if !strings.HasSuffix(tc.input, "\n") && strings.HasSuffix(last, "\n") {
				t.Errorf("Input '%s': unexpected trailing newline token", tc.input)
			}
		})
	}
}

func TestHighlight(t *testing.T) {
	var buf bytes.Buffer
	if err := Highlight(&buf, "get http://example.com", "monokai"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "\x1b[") {
		t.Error("expected ANSI escapes in highlighted output")
	}
	if !strings.Contains(out, "http://example.com") {
		t.Error("highlighted output should keep the text")
	}

	if got := HighlightString("ls", "no-such-style"); !strings.Contains(got, "ls") {
		t.Errorf("unknown style should still render the text, got %q", got)
	}
}
