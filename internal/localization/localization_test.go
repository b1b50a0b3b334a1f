package localization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetSubstitutesArgs(t *testing.T) {
	l := New(Args{Language: "en", Fallback: "en"})

	got := l.Get("success_added_category", "name", "Pizza")
	assert.Equal(t, "✅ Category Pizza created!", got)
}

func TestGetFallsBackToDefaultLanguage(t *testing.T) {
	l := New(Args{Language: "de", Fallback: "ru"})

	assert.Equal(t, stringsRU["menu_order"], l.Get("menu_order"))
}

func TestGetUnknownKeyReturnsKey(t *testing.T) {
	l := New(Args{Language: "en", Fallback: "en"})

	assert.Equal(t, "no_such_key", l.Get("no_such_key"))
}

func TestGetAppliesPersistentReplacements(t *testing.T) {
	l := New(Args{
		Language:     "en",
		Fallback:     "en",
		Replacements: map[string]string{"credit": "100.00 ₽"},
	})

	assert.Contains(t, l.Get("conversation_open_user_menu"), "100.00 ₽")
}

func TestBundlesShareKeySet(t *testing.T) {
	for key := range stringsRU {
		_, ok := stringsEN[key]
		assert.Truef(t, ok, "key %q is missing from the english bundle", key)
	}
	for key := range stringsEN {
		_, ok := stringsRU[key]
		assert.Truef(t, ok, "key %q is missing from the russian bundle", key)
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		lang    string
		enabled []string
		def     string
		want    string
	}{
		{name: "exact match", lang: "ru", enabled: []string{"en", "ru"}, def: "en", want: "ru"},
		{name: "regional variant", lang: "en-US", enabled: []string{"en", "ru"}, def: "ru", want: "en"},
		{name: "no match falls back", lang: "zh", enabled: []string{"en", "ru"}, def: "en", want: "en"},
		{name: "empty language", lang: "", enabled: []string{"en"}, def: "ru", want: "ru"},
		{name: "garbage tag", lang: "???", enabled: []string{"en"}, def: "en", want: "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.lang, tt.enabled, tt.def))
		})
	}
}
