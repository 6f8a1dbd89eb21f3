// Package lang resolves human language names and codes found in media
// filenames to canonical language identifiers.
//
// Inputs are deliberately messy: 2-letter and 3-letter ISO codes, English
// names, and scene-release shorthand ("pob", "esp", "vostfr"-style tokens).
// Resolution goes through a synonym table first, then the BCP 47 machinery
// in golang.org/x/text.
package lang

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ErrUnknownLanguage is returned when a token cannot be resolved to any
// known language.
var ErrUnknownLanguage = errors.New("unknown language")

// Language is a resolved language, identified by its ISO 639-3 code plus an
// optional country qualifier (e.g. Brazilian Portuguese).
type Language struct {
	Alpha3  string
	Country string
}

// Undetermined is the sentinel value for tokens that look like a language
// marker but cannot be resolved.
var Undetermined = Language{Alpha3: "und"}

// String returns the alpha-3 code, with the country suffix when present
// ("por-BR").
func (l Language) String() string {
	if l.Country != "" {
		return l.Alpha3 + "-" + l.Country
	}
	return l.Alpha3
}

// English returns the English display name of the language ("fra" ->
// "French"). Falls back to the raw code when the display tables have no
// entry.
func (l Language) English() string {
	tag, err := language.Parse(l.Alpha3)
	if err != nil {
		return l.Alpha3
	}
	name := display.English.Languages().Name(tag)
	if name == "" {
		return l.Alpha3
	}
	return name
}

// IsUndetermined reports whether the language could not be determined.
func (l Language) IsUndetermined() bool {
	return l.Alpha3 == "und" || l.Alpha3 == ""
}

// synonyms maps scene and community shorthand that the ISO machinery does
// not know about. Keys are lower-case.
var synonyms = map[string]Language{
	"unknown":   Undetermined,
	"inconnu":   Undetermined,
	"unk":       Undetermined,
	"un":        Undetermined,
	"gr":        {Alpha3: "ell"},
	"greek":     {Alpha3: "ell"},
	"esp":       {Alpha3: "spa"},
	"español":   {Alpha3: "spa"},
	"français":  {Alpha3: "fra"},
	"se":        {Alpha3: "swe"},
	"po":        {Alpha3: "por", Country: "BR"},
	"pb":        {Alpha3: "por", Country: "BR"},
	"pob":       {Alpha3: "por", Country: "BR"},
	"br":        {Alpha3: "por", Country: "BR"},
	"brazilian": {Alpha3: "por", Country: "BR"},
	"català":    {Alpha3: "cat"},
	"cz":        {Alpha3: "ces"},
	"ua":        {Alpha3: "ukr"},
	"cn":        {Alpha3: "zho"},
	"jp":        {Alpha3: "jpn"},
	"scr":       {Alpha3: "hrv"},
}

// Resolve maps a language token to its canonical Language. It accepts
// alpha-2 codes ("fr"), alpha-3 codes ("fre", "fra"), BCP 47 tags with a
// region ("pt-BR"), English names ("French"), and the synonyms above.
// Unresolvable tokens return Undetermined alongside ErrUnknownLanguage.
func Resolve(name string) (Language, error) {
	token := strings.ToLower(strings.TrimSpace(name))
	if token == "" {
		return Undetermined, fmt.Errorf("%w: empty token", ErrUnknownLanguage)
	}

	if l, ok := synonyms[token]; ok {
		return l, nil
	}

	if l, ok := fromTag(token); ok {
		return l, nil
	}

	if code, ok := englishNames[token]; ok {
		return Language{Alpha3: code}, nil
	}

	return Undetermined, fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
}

// fromTag attempts BCP 47 parsing. x/text canonicalizes both alpha-2 and
// alpha-3 inputs, so "fre", "fra" and "fr" all land on the same base.
func fromTag(token string) (Language, bool) {
	// Reject tokens that are clearly not codes so that language.Parse
	// does not guess wildly on arbitrary words.
	main := token
	if i := strings.IndexAny(token, "-_"); i > 0 {
		main = token[:i]
		token = strings.ReplaceAll(token, "_", "-")
	}
	if len(main) != 2 && len(main) != 3 {
		return Language{}, false
	}

	tag, err := language.Parse(token)
	if err != nil {
		return Language{}, false
	}

	base, conf := tag.Base()
	if conf == language.No {
		return Language{}, false
	}

	l := Language{Alpha3: base.ISO3()}
	// Only keep a region the caller actually spelled out; Parse infers
	// likely regions ("fr" -> FR) and those are noise here.
	if region, regionConf := tag.Region(); regionConf == language.Exact && region.IsCountry() {
		l.Country = region.String()
	}
	return l, true
}

// englishNames covers the language names that actually occur in release
// names. Lower-case name -> alpha-3.
var englishNames = map[string]string{
	"english":    "eng",
	"french":     "fra",
	"german":     "deu",
	"spanish":    "spa",
	"italian":    "ita",
	"portuguese": "por",
	"dutch":      "nld",
	"swedish":    "swe",
	"norwegian":  "nor",
	"danish":     "dan",
	"finnish":    "fin",
	"polish":     "pol",
	"russian":    "rus",
	"ukrainian":  "ukr",
	"czech":      "ces",
	"hungarian":  "hun",
	"romanian":   "ron",
	"croatian":   "hrv",
	"serbian":    "srp",
	"turkish":    "tur",
	"arabic":     "ara",
	"hebrew":     "heb",
	"hindi":      "hin",
	"japanese":   "jpn",
	"korean":     "kor",
	"chinese":    "zho",
	"mandarin":   "cmn",
	"cantonese":  "yue",
	"thai":       "tha",
	"vietnamese": "vie",
	"indonesian": "ind",
	"catalan":    "cat",
}
