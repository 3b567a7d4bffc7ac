package decision

import "regexp"

// StallPredicate classifies a chat reply as stalling narration that
// promises future action instead of performing it. Pluggable so the
// loop's heuristic can be swapped without touching the state machine.
type StallPredicate func(message string) bool

// deferredActionRE matches first-person deferral phrasings. A fixed
// heuristic: false positives cost one extra loop iteration, nothing
// more.
var deferredActionRE = regexp.MustCompile(
	`(?i)\b(let me|i(?:'| wi)ll|allow me|i can check|i can look|i can verify)\b`,
)

// LooksDeferred reports whether the message defers action. A message
// with no deferral phrasing is never flagged.
func LooksDeferred(message string) bool {
	return message != "" && deferredActionRE.MatchString(message)
}
