package core

import "context"

// Extractor is the Field Extraction Port. It returns a best-effort mapping of
// field name to value and an empty mapping on any failure.
type Extractor interface {
	Extract(ctx context.Context, instruction, userText string) Fields
}

// Classifier is the Intent Classification Port. It returns IntentUnknown when
// the text matches no known intent.
type Classifier interface {
	Classify(ctx context.Context, userText string) Intent
}

// Decorator is the Decoration Port. Failures yield "".
type Decorator interface {
	Decorate(ctx context.Context, text string) string
}

// ImageGenerator is the Image Generation Port. It returns a URL or data URL
// and a distinguishable error when generation fails.
type ImageGenerator interface {
	Generate(ctx context.Context, description string) (string, error)
}

// Summarizer condenses a longer text. Failures yield "".
type Summarizer interface {
	Summarize(ctx context.Context, text string) string
}

// SwitchTrigger decides whether an input warrants an intent classification
// for a possible workflow switch.
type SwitchTrigger interface {
	Matches(userText string) bool
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, instruction, userText string) Fields

// Extract implements Extractor.
func (f ExtractorFunc) Extract(ctx context.Context, instruction, userText string) Fields {
	return f(ctx, instruction, userText)
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(ctx context.Context, userText string) Intent

// Classify implements Classifier.
func (f ClassifierFunc) Classify(ctx context.Context, userText string) Intent {
	return f(ctx, userText)
}
