package intent

import "strings"

// DefaultTriggers are the phrases that make an input a switch candidate.
var DefaultTriggers = []string{
	"switch", "change", "go to", "main menu",
	"plan event", "discover event", "go live streaming",
	"menu", "option", "back",
}

// KeywordTrigger implements core.SwitchTrigger with case-insensitive substring matching.
type KeywordTrigger struct {
	phrases []string
}

// NewKeywordTrigger creates a trigger over phrases (DefaultTriggers when empty).
func NewKeywordTrigger(phrases ...string) *KeywordTrigger {
	if len(phrases) == 0 {
		phrases = DefaultTriggers
	}
	lower := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			lower = append(lower, p)
		}
	}
	return &KeywordTrigger{phrases: lower}
}

// Matches reports whether any phrase occurs in userText.
func (k *KeywordTrigger) Matches(userText string) bool {
	t := strings.ToLower(userText)
	for _, p := range k.phrases {
		if strings.Contains(t, p) {
			return true
		}
	}
	return false
}
