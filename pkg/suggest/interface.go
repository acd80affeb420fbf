// Package suggest is the completion core: it classifies the text before the
// cursor into a grammatical context, generates the candidates of that context
// from the reference tables and the session, and ranks them by fuzzy match.
package suggest

import "iter"

// ICompleter defines the interface front ends complete through
type ICompleter interface {
	// Complete returns the ranked completions for the text before the cursor
	Complete(text string) iter.Seq[Completion]

	// Suggest collects up to limit completions
	Suggest(text string, limit int) []Completion
}

var _ ICompleter = (*Completer)(nil)
