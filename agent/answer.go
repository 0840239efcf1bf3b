package agent

import "strings"

// ExitToken is the universal abandon signal recognised at every read point.
const ExitToken = "exit"

// IsExit reports whether text is the exit token.
func IsExit(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), ExitToken)
}

// IsAffirmative reports whether text starts with an affirmative token ("y", "yes", "yeah").
func IsAffirmative(text string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(text)), "y")
}

// NormalizeYesNo maps loose yes/no answers to "yes" or "no".
func NormalizeYesNo(text string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "yes", "y", "yeah", "yep", "sure", "true", "ok", "okay":
		return "yes", true
	case "no", "n", "nope", "false", "none", "decline", "skip":
		return "no", true
	}
	return "", false
}
