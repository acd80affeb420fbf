package lexer

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is used when no style is configured.
const DefaultStyle = "monokai"

// Highlight writes text coloured for a 256-colour terminal using the named
// chroma style. Unknown styles fall back to chroma's default.
func Highlight(w io.Writer, text, style string) error {
	if style == "" {
		style = DefaultStyle
	}
	it, err := HTTPPrompt.Tokenise(nil, text)
	if err != nil {
		return fmt.Errorf("tokenise: %w", err)
	}
	formatter := chroma.RecoveringFormatter(formatters.Get("terminal256"))
	if err := formatter.Format(w, styles.Get(style), it); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	return nil
}

// HighlightString is Highlight into a string. On failure the text is returned as is.
func HighlightString(text, style string) string {
	var b strings.Builder
	if err := Highlight(&b, text, style); err != nil {
		return text
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Tokens lexes text into chroma tokens. The newline the lexer appends to
// input lacking one is dropped again, so the token values join back to text.
func Tokens(text string) ([]chroma.Token, error) {
	tokens, err := chroma.Tokenise(HTTPPrompt, nil, text)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(text, "\n") {
		return tokens, nil
	}
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].Value == "" {
			continue
		}
		if v, ok := strings.CutSuffix(tokens[i].Value, "\n"); ok {
			if v == "" {
				tokens = append(tokens[:i], tokens[i+1:]...)
			} else {
				tokens[i].Value = v
			}
		}
		break
	}
	return tokens, nil
}
