package shell

import (
	"fmt"
	"os"
)

type redirect struct {
	path   string
	append bool
}

// splitRedirect removes a trailing "> file" or ">> file" from words.
func splitRedirect(words []string) ([]string, redirect, error) {
	for i, w := range words {
		if w != ">" && w != ">>" {
			continue
		}
		if i == 0 || i != len(words)-2 {
			return nil, redirect{}, fmt.Errorf("redirect: expected a single file after %s", w)
		}
		return words[:i], redirect{path: words[i+1], append: w == ">>"}, nil
	}
	return words, redirect{}, nil
}

func (r redirect) write(output string) error {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if r.append {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(r.path, flags, 0644)
	if err != nil {
		return fmt.Errorf("redirect: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintln(f, output); err != nil {
		return fmt.Errorf("redirect: %w", err)
	}
	return nil
}
