package detector

import (
	"strings"

	lingua "github.com/pemistahl/lingua-go"
)

// Detector guesses the language of a submission. It is only used for journaling and
// logging; nothing is rejected based on its answer.
type Detector struct {
	detector lingua.LanguageDetector
}

func New() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.Spanish, lingua.English, lingua.Portuguese, lingua.French, lingua.Italian).
		Build()

	return &Detector{detector: detector}
}

func (d *Detector) Detect(text string) (lingua.Language, bool) {
	if text == "" {
		return lingua.Unknown, false
	}
	return d.detector.DetectLanguageOf(text)
}

// DetectISO returns the lower-case ISO 639-1 code ("es", "en", ...).
func (d *Detector) DetectISO(text string) (string, bool) {
	lang, ok := d.Detect(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
