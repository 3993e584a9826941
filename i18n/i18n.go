// Package i18n holds the user-facing messages in Korean and English.
// Korean is the default and the fallback for keys a language lacks.
package i18n

import (
	"fmt"
	"sync"
)

// Language is the display name of a message table, as stored in config.json.
type Language string

const (
	Korean  Language = "한국어"
	English Language = "English"
)

var tables = map[Language]map[string]string{
	Korean:  koreanTranslations,
	English: englishTranslations,
}

// Languages lists the supported languages, default first.
func Languages() []Language {
	return []Language{Korean, English}
}

// Translator looks messages up in the table of its current language.
type Translator struct {
	mu       sync.RWMutex
	language Language
}

var std = &Translator{language: Korean}

// GetTranslator returns the process-wide translator.
func GetTranslator() *Translator {
	return std
}

// SetLanguage switches the table used by T. Unsupported languages fall back to Korean.
func (t *Translator) SetLanguage(lang Language) {
	if _, ok := tables[lang]; !ok {
		lang = Korean
	}
	t.mu.Lock()
	t.language = lang
	t.mu.Unlock()
}

// GetLanguage returns the current language.
func (t *Translator) GetLanguage() Language {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.language
}

// T formats the message for key with params. An unknown key is returned
// unchanged so a missing translation shows up in the UI instead of an empty line.
func (t *Translator) T(key string, params ...interface{}) string {
	text, ok := tables[t.GetLanguage()][key]
	if !ok {
		if text, ok = tables[Korean][key]; !ok {
			return key
		}
	}
	if len(params) == 0 {
		return text
	}
	return fmt.Sprintf(text, params...)
}

// Has reports whether key has a message in the current language.
func (t *Translator) Has(key string) bool {
	_, ok := tables[t.GetLanguage()][key]
	return ok
}

// T translates with the process-wide translator.
func T(key string, params ...interface{}) string {
	return std.T(key, params...)
}

// SetLanguage sets the process-wide language.
func SetLanguage(lang Language) {
	std.SetLanguage(lang)
}

// GetLanguage returns the process-wide language.
func GetLanguage() Language {
	return std.GetLanguage()
}
