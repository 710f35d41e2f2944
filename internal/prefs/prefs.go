// Package prefs holds the user's language and theme preferences, backed
// by the language and theme storage keys.
package prefs

import (
	"github.com/abelbrown/trivium/internal/storage"
)

// Languages supported by the upstream fact source.
var Languages = []string{"en", "de", "es"}

// Themes available in the UI, in cycle order.
var Themes = []string{"dark", "light", "cosmic", "sunset"}

const (
	defaultLanguage = "en"
	defaultTheme    = "dark"
)

// Prefs is the preferences store. Unlike the gamification stores it holds
// two independent scalar slots rather than one document.
type Prefs struct {
	kv       *storage.Store
	language string
	theme    string
}

// New creates a Prefs, rehydrating persisted values or falling back to
// defaults.
func New(kv *storage.Store) *Prefs {
	p := &Prefs{kv: kv, language: defaultLanguage, theme: defaultTheme}

	var lang string
	if kv.Get(storage.KeyLanguage, &lang) && validLanguage(lang) {
		p.language = lang
	}
	var theme string
	if kv.Get(storage.KeyTheme, &theme) && validTheme(theme) {
		p.theme = theme
	}
	return p
}

// Language returns the active fact language.
func (p *Prefs) Language() string { return p.language }

// SetLanguage switches the fact language. Unsupported values are ignored.
func (p *Prefs) SetLanguage(lang string) {
	if !validLanguage(lang) {
		return
	}
	p.language = lang
	p.kv.Set(storage.KeyLanguage, lang)
}

// CycleLanguage switches to the next supported language.
func (p *Prefs) CycleLanguage() string {
	p.SetLanguage(next(Languages, p.language))
	return p.language
}

// Theme returns the active theme name.
func (p *Prefs) Theme() string { return p.theme }

// SetTheme switches the theme. Unknown values are ignored.
func (p *Prefs) SetTheme(theme string) {
	if !validTheme(theme) {
		return
	}
	p.theme = theme
	p.kv.Set(storage.KeyTheme, theme)
}

// CycleTheme switches to the next theme.
func (p *Prefs) CycleTheme() string {
	p.SetTheme(next(Themes, p.theme))
	return p.theme
}

func validLanguage(lang string) bool { return contains(Languages, lang) }
func validTheme(theme string) bool   { return contains(Themes, theme) }

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func next(xs []string, current string) string {
	for i, v := range xs {
		if v == current {
			return xs[(i+1)%len(xs)]
		}
	}
	return xs[0]
}
