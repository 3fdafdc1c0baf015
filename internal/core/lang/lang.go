package lang

import (
	"slices"
	"strings"
	"unicode"
)

// Language is a conversation language code.
type Language string

const (
	English Language = "en"
	Swahili Language = "sw"
)

// Parse normalizes a stored language code. Anything that is not Swahili is English.
func Parse(s string) Language {
	if strings.EqualFold(strings.TrimSpace(s), string(Swahili)) {
		return Swahili
	}
	return English
}

// Text is a string available in both supported languages.
type Text struct {
	EN string `json:"en"`
	SW string `json:"sw"`
}

// In returns the text for l, falling back to English when no translation exists.
func (t Text) In(l Language) string {
	if l == Swahili && t.SW != "" {
		return t.SW
	}
	return t.EN
}

// Pick returns en or sw depending on l.
func Pick(l Language, en, sw string) string {
	if l == Swahili {
		return sw
	}
	return en
}

// words used during the booking flow that switch the conversation to Swahili
var swahiliKeywords = []string{
	"habari", "jambo", "karibu", "bei", "ziara", "safari", "sawa", "ndio",
	"hapana", "asante", "tafadhali", "nzuri", "vipi", "watu", "tarehe",
}

// words used by the fallback generator to pick a template language
var fallbackSwahiliWords = []string{
	"habari", "mambo", "jambo", "asante", "tafadhali", "nataka", "nina",
	"ndiyo", "hapana", "sawa", "vipi", "wapi", "nini", "lini", "kwa",
}

var entryKeywords = []string{
	// en
	"hi", "hello", "hey", "tour", "tours", "booking", "book", "help", "start", "menu",
	// sw
	"habari", "jambo", "karibu", "ziara", "safari", "bei",
}

var restartKeywords = []string{"menu", "start", "0", "menyu", "anza"}

var questionIndicators = []string{
	"?", "what", "how", "when", "where", "why", "which", "can", "could",
	"tell me", "explain", "describe", "nini", "vipi", "lini", "wapi",
	"kwa nini", "je", "naweza", "best", "recommend", "suggest",
	"difference", "include", "included", "price", "cost", "bei",
	"available", "open", "book", "reserve",
}

// IsSwahili reports whether the message carries a Swahili booking-flow keyword.
func IsSwahili(text string) bool {
	return containsAny(text, swahiliKeywords)
}

// DetectLanguage guesses the language of a free-text question.
func DetectLanguage(text string) Language {
	if containsAny(text, fallbackSwahiliWords) {
		return Swahili
	}
	return English
}

// IsEntryKeyword reports whether the message should open the main menu.
func IsEntryKeyword(text string) bool {
	return matchesWord(text, entryKeywords)
}

// IsRestartKeyword reports whether the message is a reserved restart command.
// It is checked before any state-specific parsing.
func IsRestartKeyword(text string) bool {
	return matchesWord(text, restartKeywords)
}

// ShouldUseAI reports whether an idle message looks like a question worth a
// free-form answer.
func ShouldUseAI(text string) bool {
	return containsAny(text, questionIndicators)
}

// matchesWord is true when the whole message equals a keyword or one of its
// whitespace separated words does.
func matchesWord(text string, keywords []string) bool {
	msg := strings.ToLower(strings.TrimSpace(text))
	if msg == "" {
		return false
	}
	fields := strings.Fields(msg)
	for _, kw := range keywords {
		if msg == kw {
			return true
		}
		for _, f := range fields {
			if f == kw {
				return true
			}
		}
	}
	return false
}

// containsAny matches single-word keywords against the words of the text and
// phrases or punctuation keywords as substrings. A keyword ending in "*" is a
// stem and matches any word with that prefix.
func containsAny(text string, keywords []string) bool {
	msg := strings.ToLower(strings.TrimSpace(text))
	if msg == "" {
		return false
	}

	words := strings.FieldsFunc(msg, isSeparator)
	for _, kw := range keywords {
		if stem, ok := strings.CutSuffix(kw, "*"); ok {
			for _, w := range words {
				if strings.HasPrefix(w, stem) {
					return true
				}
			}
			continue
		}
		if isWord(kw) {
			if slices.Contains(words, kw) {
				return true
			}
			continue
		}
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
}

func isWord(kw string) bool {
	for _, r := range kw {
		if isSeparator(r) {
			return false
		}
	}
	return kw != ""
}
