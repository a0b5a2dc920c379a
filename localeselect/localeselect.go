// Package localeselect lists the selectable locales of a user interface
// and picks one for a request.
package localeselect

import (
	"slices"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const (
	// DefaultLocale is selected if no locale is active.
	DefaultLocale = "en"

	// PseudoLocale displays translation keys instead of translations
	// and is never offered for selection.
	PseudoLocale = "cimode"
)

// Option is one entry of a locale selection.
type Option struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Active bool   `json:"active,omitempty"`
	// Dir is "rtl" or "ltr"
	Dir string `json:"dir"`
}

// Options returns the selectable options for the supported locale codes.
// Empty codes and PseudoLocale are skipped.
// If showFullNames is true, the options are labeled with the name
// of each language in that language, else with the code.
// An empty active code activates DefaultLocale.
func Options(supported []string, active string, showFullNames bool) []Option {
	if active == "" {
		active = DefaultLocale
	}
	options := make([]Option, 0, len(supported))
	for _, code := range supported {
		if code == "" || code == PseudoLocale {
			continue
		}
		label := code
		if showFullNames {
			label = FullName(code)
		}
		options = append(options, Option{
			Code:   code,
			Label:  label,
			Active: code == active,
			Dir:    Dir(code),
		})
	}
	return options
}

// FullName returns the name of the language of code in that language,
// or code itself if it is not a known language tag.
func FullName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	name := display.Self.Name(tag)
	if name == "" {
		return code
	}
	return name
}

var rtlScripts = []string{"Arab", "Hebr", "Thaa", "Syrc", "Nkoo", "Adlm", "Rohg"}

// Dir returns the writing direction "rtl" or "ltr" of code.
func Dir(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return "ltr"
	}
	script, _ := tag.Script()
	if slices.Contains(rtlScripts, script.String()) {
		return "rtl"
	}
	return "ltr"
}

// Tag returns the language.Tag of code, or language.Und
// if code can't be parsed.
func Tag(code string) language.Tag {
	tag, err := language.Parse(code)
	if err != nil {
		return language.Und
	}
	return tag
}

// Match returns the supported locale code that best matches
// an Accept-Language header value.
// DefaultLocale is returned if it is supported and nothing matches,
// else the first supported locale.
// An empty string is returned if nothing is supported.
func Match(supported []string, acceptLanguage string) string {
	var (
		codes []string
		tags  []language.Tag
	)
	for _, code := range supported {
		if code == PseudoLocale {
			continue
		}
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		codes = append(codes, code)
		tags = append(tags, tag)
	}
	if len(codes) == 0 {
		return ""
	}
	fallback := codes[0]
	if slices.Contains(codes, DefaultLocale) {
		fallback = DefaultLocale
	}
	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return fallback
	}
	_, index, confidence := language.NewMatcher(tags).Match(desired...)
	if confidence == language.No {
		return fallback
	}
	return codes[index]
}
