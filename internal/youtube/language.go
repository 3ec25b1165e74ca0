package youtube

import (
	"strings"

	"golang.org/x/text/language"
)

// languageCodes maps common language names to the ISO-639-1 codes the
// search API expects for relevanceLanguage.
var languageCodes = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"russian":    "ru",
	"japanese":   "ja",
	"korean":     "ko",
	"chinese":    "zh-CN",
	"arabic":     "ar",
	"hindi":      "hi",
	"bengali":    "bn",
	"turkish":    "tr",
	"dutch":      "nl",
	"polish":     "pl",
}

// LanguageCode resolves a human language name to an ISO-639-1 code. Names
// outside the fixed table are handed to language.Parse so tags like "pt-BR"
// still resolve; anything unrecognized falls back to English.
func LanguageCode(name string) string {
	if code, ok := languageCodes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return code
	}
	if tag, err := language.Parse(name); err == nil {
		return tag.String()
	}
	return "en"
}
