package shell

import (
	"errors"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expected    []string
	}{
		{"empty", "", nil},
		{"spaces only", "   ", nil},
		{"plain words", "rm -h Accept", []string{"rm", "-h", "Accept"}},
		{"single quotes", "name='John Doe'", []string{"name=John Doe"}},
		{"double quotes with escape", `msg="say \"hi\""`, []string{`msg=say "hi"`}},
		{"backslash space", `name=John\ Doe`, []string{"name=John Doe"}},
		{"whole word quoted", "'Authorization:ApiKey 1234'", []string{"Authorization:ApiKey 1234"}},
		{"empty quoted word", "a '' b", []string{"a", "", "b"}},
		{"tabs", "get\tname=x", []string{"get", "name=x"}},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got, err := Tokenize(tc.input)
			if err != nil {
				t.Fatalf("Input '%s': unexpected error %v", tc.input, err)
			}
			if len(got) == 0 && len(tc.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Input '%s': expected %q, got %q", tc.input, tc.expected, got)
			}
		})
	}
}

func TestTokenizeUnterminated(t *testing.T) {
	for _, input := range []string{"'open", `"open`, `trailing\`} {
		if _, err := Tokenize(input); !errors.Is(err, ErrUnterminatedQuote) {
			t.Errorf("Input '%s': expected ErrUnterminatedQuote, got %v", input, err)
		}
	}
}
