// Package lexer highlights hprompt command lines. It is only used for colouring;
// completion never depends on it.
package lexer

import (
	"slices"

	. "github.com/alecthomas/chroma/v2" // nolint
)

var (
	flagOptions = []string{
		"--body", "--check-status", "--continue", "--download", "--follow",
		"--form", "--headers", "--ignore-stdin", "--json", "--offline",
		"--stream", "--verbose",
	}
	valueOptions = []string{
		"--auth", "--auth-type", "--cert", "--cert-key", "--max-redirects",
		"--output", "--pretty", "--print", "--proxy", "--session",
		"--session-read-only", "--style", "--timeout", "--verify",
	}
)

// HTTPPrompt lexes the shell grammar: commands, actions, mutations and URLs.
var HTTPPrompt = MustNewLexer(
	&Config{
		Name:      "HttpPrompt",
		Aliases:   []string{"http-prompt", "hprompt"},
		Filenames: []string{"*.http-prompt", "*.hprompt"},
		EnsureNL:  true,
	},
	rules,
)

// stringRules lexes a quoted or bare string, then moves on with next.
func stringRules(next Mutator) []Rule {
	return []Rule{
		{`(")((?:[^\r\n"\\]|(?:\\.))+)(")`, ByGroups(Text, String, Text), next},
		{`(")((?:[^\r\n"\\]|(?:\\.))+)`, ByGroups(Text, String), next},
		{`(')((?:[^\r\n'\\]|(?:\\.))+)(')`, ByGroups(Text, String, Text), next},
		{`(')((?:[^\r\n'\\]|(?:\\.))+)`, ByGroups(Text, String), next},
		{`([^\s"'\\]|(\\.))+`, String, next},
	}
}

const actionWords = `(?i)(get|head|post|put|patch|delete)(\s*)`

func rules() Rules {
	return Rules{
		"root": {
			{`\s+`, Text, nil},
			{`(cd)(\s*)`, ByGroups(Keyword, Text), Push("cd")},
			{`(rm)(\s*)`, ByGroups(Keyword, Text), Push("rm_option")},
			{`(httpie|curl)(\s*)`, ByGroups(Keyword, Text), Push("preview_action")},
			{actionWords, ByGroups(Keyword, Text), Push("action")},
			{`exit\s*`, Keyword, Push("end")},
			{`help\s*`, Keyword, Push("end")},
			{`clear\s*`, Keyword, Push("end")},
			{`ls\b\s*`, Keyword, Push("cd")},
			{`env\s*`, Keyword, Push("redir_out")},
			{`source\s*`, Keyword, Push("file_path")},
			{`exec\s*`, Keyword, Push("file_path")},
			{``, nil, Push("concat_mut")},
		},
		"cd":        stringRules(Push("end")),
		"rm_option": {
			{`(\-(?:h|o|b|q))(\s*)`, ByGroups(Name, Text), Push("rm_name")},
			{`(\*)(\s*)`, ByGroups(Name, Text), Push("end")},
		},
		"rm_name": stringRules(Push("end")),
		"concat_mut": {
			{`$`, nil, Push("end")},
			{`\s+`, Text, nil},
			// flag options, such as --form
			{Words(``, `\b`, slices.Clone(flagOptions)...), Name, nil},
			// options with values, such as --style=default or --pretty all
			{Words(``, `\b`, slices.Clone(valueOptions)...), Name, Push("option_op")},
			// unquoted or value-quoted mutation: name="John Doe", name=John\ Doe
			{`((?:[^\s'"\\=:]|(?:\\.))+)(:=|:|==|=)`, ByGroups(Name, Operator), Push("unquoted_mut")},
			// fully quoted mutation: 'name=John Doe'
			{`(')((?:[^\r\n'\\=:]|(?:\\.))+)(:=|:|==|=)`, ByGroups(Text, Name, Operator), Push("squoted_mut")},
			{`(")((?:[^\r\n"\\=:]|(?:\\.))+)(:=|:|==|=)`, ByGroups(Text, Name, Operator), Push("dquoted_mut")},
		},
		"option_op": {
			{`(\s+|=)`, Operator, Push("option_value")},
		},
		"option_value": stringRules(Pop(2)),
		"file_path": {
			{`(/)?([^/\x00]+(/)?)+`, String, nil},
		},
		"redir_out": {
			{`(?i)(>>|>)(\s*)`, Keyword, Push("file_path")},
		},
		"unquoted_mut": stringRules(Pop(1)),
		"squoted_mut": {
			{`((?:[^\r\n'\\]|(?:\\.))+)(')`, ByGroups(String, Text), Pop(1)},
			{`([^\r\n'\\]|(\\.))+`, String, Pop(1)},
		},
		"dquoted_mut": {
			{`((?:[^\r\n"\\]|(?:\\.))+)(")`, ByGroups(String, Text), Pop(1)},
			{`([^\r\n"\\]|(\\.))+`, String, Pop(1)},
		},
		"action": {
			Include("urlpath"),
		},
		"preview_action": {
			{actionWords, ByGroups(Keyword, Text), Combined("urlpath", "redir_out")},
			Include("redir_out"),
			{``, nil, Push("urlpath")},
		},
		"urlpath": {
			{`https?://([^\s"'\\]|(\\.))+`, String, Combined("concat_mut", "redir_out")},
			{`(")(https?://(?:[^\r\n"\\]|(?:\\.))+)(")`, ByGroups(Text, String, Text), Combined("concat_mut", "redir_out")},
			{`(")(https?://(?:[^\r\n"\\]|(?:\\.))+)`, ByGroups(Text, String), nil},
			{`(')(https?://(?:[^\r\n'\\]|(?:\\.))+)(')`, ByGroups(Text, String, Text), Combined("concat_mut", "redir_out")},
			{`(')(https?://(?:[^\r\n'\\]|(?:\\.))+)`, ByGroups(Text, String), nil},
			{`(")((?:[^\r\n"\\=:]|(?:\\.))+)(")`, ByGroups(Text, String, Text), Combined("concat_mut", "redir_out")},
			{`(")((?:[^\r\n"\\=:]|(?:\\.))+)`, ByGroups(Text, String), nil},
			{`(')((?:[^\r\n'\\=:]|(?:\\.))+)(')`, ByGroups(Text, String, Text), Combined("concat_mut", "redir_out")},
			{`(')((?:[^\r\n'\\=:]|(?:\\.))+)`, ByGroups(Text, String), nil},
			{`([^\-]([^\s"'\\=:]|(\\.))+)(\s+|$)`, String, Combined("concat_mut", "redir_out")},
			{``, nil, Combined("concat_mut", "redir_out")},
		},
		"end": {
			{`\n`, Text, Push("root")},
		},
	}
}
