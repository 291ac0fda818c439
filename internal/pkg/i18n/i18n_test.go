package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup_FallsBackToEnglish(t *testing.T) {
	table := NewTable(map[Code]string{
		English: "Please select some rows.",
		French:  "Veuillez sélectionner quelques lignes.",
	})

	assert.Equal(t, "Veuillez sélectionner quelques lignes.", Lookup(table, French))
	assert.Equal(t, "Please select some rows.", Lookup(table, Code("xx")))
	assert.Equal(t, "Please select some rows.", Lookup(table, German))
	assert.Equal(t, "Please select some rows.", Lookup(table, ""))
}

func TestNewTable_RequiresEnglish(t *testing.T) {
	assert.Panics(t, func() {
		NewTable(map[Code]string{French: "Bonjour"})
	})
}

func TestNewTable_CopiesEntries(t *testing.T) {
	entries := map[Code]string{English: "one"}
	table := NewTable(entries)
	entries[English] = "two"

	assert.Equal(t, "one", table.Get(English))
}

func TestCatalog_EveryTableCoversEverySupportedCode(t *testing.T) {
	tables := []Table{
		NoRows, ConfirmDelete, ConfirmApprove, ConfirmReject, ConfirmArchive,
		ConfirmUnarchive, ConfirmExport, SuccessDelete, SuccessApprove, SuccessReject,
		SuccessArchive, SuccessUnarchive, SuccessExport, ActionFailed, ConfirmButton,
		CancelButton, SelectedBadge,
	}
	for i, table := range tables {
		for _, code := range Supported() {
			_, ok := table.entries[code]
			assert.True(t, ok, "table %d lacks %s", i, code)
		}
	}
}

func TestConfirmationAndSuccessKeys(t *testing.T) {
	for _, key := range []string{"delete", "approve", "reject", "archive", "unarchive", "export"} {
		_, ok := Confirmation(key)
		assert.True(t, ok, key)
		_, ok = Success(key)
		assert.True(t, ok, key)
	}
	_, ok := Confirmation("explode")
	assert.False(t, ok)
}

func TestTable_Format(t *testing.T) {
	assert.Equal(t, "3 records deleted successfully.", SuccessDelete.Format(English, 3))
	assert.Equal(t, "3 selected", SelectedBadge.Format(Code("xx"), 3))
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		raw    string
		want   Code
		wantOK bool
	}{
		{"en", English, true},
		{"FR", French, true},
		{"fr-FR", French, true},
		{"de_AT", German, true},
		{"ar", Arabic, true},
		{"es-419", Spanish, true},
		{"it", "", false},
		{"xx", "", false},
		{"", "", false},
		{"not a tag", "", false},
	}
	for _, c := range cases {
		got, ok := Normalize(c.raw)
		assert.Equal(t, c.wantOK, ok, c.raw)
		assert.Equal(t, c.want, got, c.raw)
	}
	assert.Equal(t, English, OrDefault("xx"))
}

func TestFromAcceptLanguage(t *testing.T) {
	assert.Equal(t, English, FromAcceptLanguage(""))
	assert.Equal(t, French, FromAcceptLanguage("fr-CH, fr;q=0.9, en;q=0.8"))
	assert.Equal(t, German, FromAcceptLanguage("de-DE"))
	assert.Equal(t, English, FromAcceptLanguage("ja-JP"))
}

func TestResolve_Precedence(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/employee/get-language-code/?lang=es", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "de"})
	r.Header.Set("Accept-Language", "fr")
	assert.Equal(t, Spanish, Resolve(r, "ar"))

	r = httptest.NewRequest(http.MethodGet, "/employee/get-language-code/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "de"})
	assert.Equal(t, German, Resolve(r, "ar"))

	r = httptest.NewRequest(http.MethodGet, "/employee/get-language-code/", nil)
	r.Header.Set("Accept-Language", "fr")
	assert.Equal(t, Arabic, Resolve(r, "ar"))
	assert.Equal(t, French, Resolve(r, ""))

	r = httptest.NewRequest(http.MethodGet, "/employee/get-language-code/?lang=xx", nil)
	assert.Equal(t, English, Resolve(r, "zz"))

	assert.Equal(t, German, Resolve(nil, "de"))
}
