package services

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

var (
	languageDetector     lingua.LanguageDetector
	languageDetectorOnce sync.Once
)

// DetectLanguage tags content with a lowercase ISO 639-1 code, or
// "unknown" when the detector cannot settle on a language.
func DetectLanguage(content string) string {
	languageDetectorOnce.Do(func() {
		languageDetector = lingua.NewLanguageDetectorBuilder().
			FromAllSpokenLanguages().
			Build()
	})

	if language, exists := languageDetector.DetectLanguageOf(content); exists {
		return strings.ToLower(language.IsoCode639_1().String())
	}

	return "unknown"
}
