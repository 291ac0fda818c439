package i18n

import (
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// Code is a supported UI language.
type Code string

const (
	Arabic  Code = "ar"
	German  Code = "de"
	Spanish Code = "es"
	English Code = "en"
	French  Code = "fr"
)

const (
	// LangParam is the query parameter used to force a language.
	LangParam = "lang"
	// CookieName is the language cookie the HRMS front-end already sets.
	CookieName = "django_language"
)

// Default is the fallback for unresolved or unsupported codes.
const Default = English

// English first: the matcher falls back to the first tag.
var supportedTags = []language.Tag{
	language.English,
	language.Arabic,
	language.German,
	language.Spanish,
	language.French,
}

var supportedCodes = []Code{English, Arabic, German, Spanish, French}

var tagMatcher = language.NewMatcher(supportedTags)

// Supported returns the supported codes, default first.
func Supported() []Code {
	out := make([]Code, len(supportedCodes))
	copy(out, supportedCodes)
	return out
}

func IsSupported(code Code) bool {
	for _, c := range supportedCodes {
		if c == code {
			return true
		}
	}
	return false
}

// Table maps language codes to one user-facing message. It always carries English.
type Table struct {
	entries map[Code]string
}

// NewTable panics when entries lacks English, so a lookup can never yield a blank dialog.
func NewTable(entries map[Code]string) Table {
	if strings.TrimSpace(entries[English]) == "" {
		panic("i18n: message table without an English entry")
	}
	copied := make(map[Code]string, len(entries))
	for code, msg := range entries {
		copied[code] = msg
	}
	return Table{entries: copied}
}

// Lookup returns the message for code, falling back to English.
func Lookup(t Table, code Code) string {
	if msg, ok := t.entries[code]; ok && msg != "" {
		return msg
	}
	return t.entries[English]
}

func (t Table) Get(code Code) string {
	return Lookup(t, code)
}

// Format looks up the message and applies fmt.Sprintf with args.
func (t Table) Format(code Code, args ...interface{}) string {
	return fmt.Sprintf(Lookup(t, code), args...)
}

// Normalize maps values like "fr-FR", "FR" or "de_AT" onto a supported code.
func Normalize(raw string) (Code, bool) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), "_", "-")
	if raw == "" {
		return "", false
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	code := Code(base.String())
	if !IsSupported(code) {
		return "", false
	}
	return code, true
}

// OrDefault normalizes raw, falling back to English.
func OrDefault(raw string) Code {
	if code, ok := Normalize(raw); ok {
		return code
	}
	return Default
}

// FromAcceptLanguage picks the best supported code for an Accept-Language header.
func FromAcceptLanguage(header string) Code {
	header = strings.TrimSpace(header)
	if header == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, index, confidence := tagMatcher.Match(tags...)
	if confidence == language.No || index < 0 || index >= len(supportedCodes) {
		return Default
	}
	return supportedCodes[index]
}

// Resolve determines the language of a request: lang query parameter, then the
// language cookie, then the caller's stored preference, then Accept-Language.
func Resolve(r *http.Request, preferred string) Code {
	if r == nil {
		return OrDefault(preferred)
	}

	if code, ok := Normalize(r.URL.Query().Get(LangParam)); ok {
		return code
	}

	if cookie, err := r.Cookie(CookieName); err == nil {
		if code, ok := Normalize(cookie.Value); ok {
			return code
		}
	}

	if code, ok := Normalize(preferred); ok {
		return code
	}

	return FromAcceptLanguage(r.Header.Get("Accept-Language"))
}
