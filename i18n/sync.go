package i18n

import "strings"

// SyncLanguage applies the language name stored in the application config.
func SyncLanguage(name string) {
	SetLanguage(ParseLanguage(name))
}

// GetLanguageString returns the current language for the frontend.
func GetLanguageString() string {
	return string(GetLanguage())
}

// ParseLanguage maps a config value or locale code to a Language. English is
// recognised by name or by an "en" code ("en", "en_US", "en-GB"); anything
// else, including an empty value, is Korean.
func ParseLanguage(name string) Language {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "english" || s == "en" || strings.HasPrefix(s, "en_") || strings.HasPrefix(s, "en-") {
		return English
	}
	return Korean
}
