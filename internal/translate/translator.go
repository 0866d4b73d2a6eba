package translate

import "context"

// Translator converts one segment's text into the target language
type Translator interface {
	// Translate returns the text rewritten in targetLanguage
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}
