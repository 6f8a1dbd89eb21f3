// Package matcher scans a release name and emits raw candidate guesses,
// each tagged with a base confidence. It deliberately over-produces:
// overlapping and contradictory candidates are expected, and resolving
// them is the merge pipeline's job, not the matcher's.
package matcher

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/duramato/guessit/internal/guess"
	"github.com/duramato/guessit/internal/lang"
)

// Matcher turns one release name into a working list of guesses.
type Matcher struct {
	log *slog.Logger
}

// New returns a Matcher logging through the given logger, or
// slog.Default() when nil.
func New(logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{log: logger}
}

// Match extracts every candidate property from name. Each structural
// match becomes its own guess; combined tokens (S01E02) become one guess
// holding both properties.
func (m *Matcher) Match(name string) []*guess.Guess {
	var guesses []*guess.Guess
	base := name

	base, guesses = m.matchContainer(base, guesses)

	// Structural matches bound where the title can end.
	titleEnd := len(base)
	note := func(start int) {
		if start >= 0 && start < titleEnd {
			titleEnd = start
		}
	}

	hasDate := false
	if loc := dateRe.FindStringSubmatchIndex(base); loc != nil {
		if g := m.dateGuess(base, loc); g != nil {
			guesses = append(guesses, g)
			note(loc[0])
			hasDate = true
		}
	}

	guesses = m.matchSeasonEpisode(base, guesses, note)

	if !hasDate {
		for _, loc := range yearRe.FindAllStringSubmatchIndex(base, -1) {
			year, err := strconv.Atoi(base[loc[2]:loc[3]])
			if err != nil {
				continue
			}
			g := guess.New()
			g.SetWithConfidence(PropYear, guess.Int(year), 0.8)
			guesses = append(guesses, g)
			note(loc[0])
		}
	}

	for _, loc := range screenSizeRe.FindAllStringSubmatchIndex(base, -1) {
		token := strings.ToLower(base[loc[0]:loc[1]])
		size := token
		if canonical, ok := screenSizeCanonical[size]; ok {
			size = canonical
		}
		g := guess.New()
		g.SetWithConfidence(PropScreenSize, guess.Str(size), 0.9)
		guesses = append(guesses, g)
		note(loc[0])
	}

	guesses = m.matchTokens(base, guesses, note)
	guesses = m.matchLanguages(base, guesses, note)
	guesses = m.matchReleaseGroup(base, guesses)

	if title := cleanTitle(base[:titleEnd]); title != "" {
		g := guess.New()
		g.SetWithConfidence(PropTitle, guess.Str(title), titleConfidence(title, name))
		guesses = append(guesses, g)
	}

	m.log.Debug("matched release name", "name", name, "candidates", len(guesses))
	return guesses
}

// matchContainer strips and reports the trailing extension. Subtitle
// containers also yield the trailing language code when one is present
// ("movie.en.srt").
func (m *Matcher) matchContainer(base string, guesses []*guess.Guess) (string, []*guess.Guess) {
	loc := containerRe.FindStringSubmatchIndex(base)
	if loc == nil {
		return base, guesses
	}
	ext := strings.ToLower(base[loc[2]:loc[3]])
	g := guess.New()
	g.SetWithConfidence(PropContainer, guess.Str(ext), 1.0)
	guesses = append(guesses, g)
	base = base[:loc[0]]

	switch ext {
	case "srt", "sub", "ssa", "ass", "idx":
		if codeLoc := subtitleCodeRe.FindStringSubmatchIndex(base); codeLoc != nil {
			code := base[codeLoc[2]:codeLoc[3]]
			if l, err := lang.Resolve(code); err == nil {
				sg := guess.New()
				sg.SetWithConfidence(PropSubtitleLanguage, guess.Lang{Language: l}, 0.9)
				guesses = append(guesses, sg)
				base = base[:codeLoc[0]]
			}
		}
	}
	return base, guesses
}

func (m *Matcher) dateGuess(base string, loc []int) *guess.Guess {
	year, _ := strconv.Atoi(base[loc[2]:loc[3]])
	month, _ := strconv.Atoi(base[loc[4]:loc[5]])
	day, _ := strconv.Atoi(base[loc[6]:loc[7]])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return nil
	}
	g := guess.New()
	g.SetWithConfidence(PropDate, guess.NewDate(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)), 1.0)
	return g
}

// matchSeasonEpisode handles combined SxxEyy / NxNN forms, chained
// multi-episode tails, and standalone season or episode tokens.
func (m *Matcher) matchSeasonEpisode(base string, guesses []*guess.Guess, note func(int)) []*guess.Guess {
	combined := seasonEpisodeRe.FindAllStringSubmatchIndex(base, -1)
	for _, loc := range combined {
		seasonStr := submatch(base, loc, 1)
		if seasonStr == "" {
			seasonStr = submatch(base, loc, 2)
		}
		season, err := strconv.Atoi(seasonStr)
		if err != nil {
			continue
		}
		episode, err := strconv.Atoi(submatch(base, loc, 3))
		if err != nil {
			continue
		}

		g := guess.New()
		g.SetWithConfidence(PropSeason, guess.Int(season), 0.9)
		g.SetWithConfidence(PropEpisode, guess.Int(episode), 0.9)
		guesses = append(guesses, g)
		note(loc[0])

		for _, extra := range extraEpisodeRe.FindAllStringSubmatch(submatch(base, loc, 4), -1) {
			n, err := strconv.Atoi(extra[1])
			if err != nil {
				continue
			}
			eg := guess.New()
			eg.SetWithConfidence(PropEpisode, guess.Int(n), 0.9)
			guesses = append(guesses, eg)
		}
	}
	if len(combined) > 0 {
		return guesses
	}

	if loc := seasonRe.FindStringSubmatchIndex(base); loc != nil {
		if season, err := strconv.Atoi(submatch(base, loc, 1)); err == nil {
			g := guess.New()
			g.SetWithConfidence(PropSeason, guess.Int(season), 0.7)
			guesses = append(guesses, g)
			note(loc[0])
		}
	}
	if loc := episodeRe.FindStringSubmatchIndex(base); loc != nil {
		if episode, err := strconv.Atoi(submatch(base, loc, 1)); err == nil {
			g := guess.New()
			g.SetWithConfidence(PropEpisode, guess.Int(episode), 0.6)
			guesses = append(guesses, g)
			note(loc[0])
		}
	}
	return guesses
}

// matchTokens scans separator-delimited tokens against the canonical
// token tables.
func (m *Matcher) matchTokens(base string, guesses []*guess.Guess, note func(int)) []*guess.Guess {
	for _, tok := range tokenize(base) {
		emit := func(start int) func(string, canonicalToken) {
			return func(prop string, ct canonicalToken) {
				g := guess.New()
				g.SetWithConfidence(prop, guess.Str(ct.Canonical), ct.Confidence)
				guesses = append(guesses, g)
				note(start)
			}
		}

		if lookupToken(strings.ToLower(tok.text), emit(tok.start)) {
			continue
		}

		// Release names glue the group onto the last tag ("x264-GROUP"),
		// so unmatched hyphenated tokens are retried piecewise.
		if strings.Contains(tok.text, "-") {
			offset := tok.start
			for _, part := range strings.Split(tok.text, "-") {
				lookupToken(strings.ToLower(part), emit(offset))
				offset += len(part) + 1
			}
		}
	}
	return guesses
}

// matchLanguages picks up spelled-out language names ("FRENCH", "Korean")
// and VOST subtitle markers. Short codes are ignored here; they are far
// too easy to confuse with title words.
func (m *Matcher) matchLanguages(base string, guesses []*guess.Guess, note func(int)) []*guess.Guess {
	if loc := vostRe.FindStringSubmatchIndex(base); loc != nil {
		code := submatch(base, loc, 1)
		if code == "" {
			code = "fr"
		}
		if l, err := lang.Resolve(code); err == nil {
			g := guess.New()
			g.SetWithConfidence(PropSubtitleLanguage, guess.Lang{Language: l}, 0.9)
			guesses = append(guesses, g)
			note(loc[0])
		}
	}

	for _, tok := range tokenize(base) {
		if len(tok.text) < 4 {
			continue
		}
		lower := strings.ToLower(tok.text)
		if _, isTag := releaseTokenSet[lower]; isTag {
			continue
		}
		if !isAlphabetic(tok.text) {
			continue
		}
		if l, err := lang.Resolve(lower); err == nil {
			g := guess.New()
			g.SetWithConfidence(PropLanguage, guess.Lang{Language: l}, 0.8)
			guesses = append(guesses, g)
			note(tok.start)
		}
	}
	return guesses
}

// matchReleaseGroup reads a trailing "-GROUP" token, rejecting anything
// that looks like an encoding tag or a bare number.
func (m *Matcher) matchReleaseGroup(base string, guesses []*guess.Guess) []*guess.Guess {
	loc := releaseGroupRe.FindStringSubmatchIndex(base)
	if loc == nil {
		return guesses
	}
	group := base[loc[2]:loc[3]]
	lower := strings.ToLower(group)
	if _, isTag := releaseTokenSet[lower]; isTag {
		return guesses
	}
	if _, err := strconv.Atoi(group); err == nil {
		return guesses
	}
	g := guess.New()
	g.SetWithConfidence(PropReleaseGroup, guess.Str(group), 0.6)
	return append(guesses, g)
}

// lookupToken checks a lower-cased token against all canonical tables and
// reports whether anything matched.
func lookupToken(lower string, emit func(string, canonicalToken)) bool {
	matched := false
	if ct, ok := formatTokens[lower]; ok {
		emit(PropFormat, ct)
		matched = true
	}
	if ct, ok := videoCodecTokens[lower]; ok {
		emit(PropVideoCodec, ct)
		matched = true
	}
	if ct, ok := audioCodecTokens[lower]; ok {
		emit(PropAudioCodec, ct)
		matched = true
	}
	if ct, ok := otherTokens[lower]; ok {
		emit(PropOther, ct)
		matched = true
	}
	return matched
}

type token struct {
	text  string
	start int
}

// tokenize splits on dots, underscores and spaces, keeping hyphenated
// compounds like WEB-DL intact.
func tokenize(s string) []token {
	var tokens []token
	start := -1
	for i, r := range s {
		if r == '.' || r == '_' || r == ' ' {
			if start >= 0 {
				tokens = append(tokens, token{text: s[start:i], start: start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, token{text: s[start:], start: start})
	}
	return tokens
}

func submatch(s string, loc []int, n int) string {
	if loc[2*n] < 0 {
		return ""
	}
	return s[loc[2*n]:loc[2*n+1]]
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// cleanTitle normalizes the leading chunk of the name into a displayable
// title: bracketed tags dropped, separators collapsed, stray dashes
// trimmed.
func cleanTitle(s string) string {
	s = bracketsRe.ReplaceAllString(s, " ")
	s = separatorRe.ReplaceAllString(s, " ")
	s = strings.Trim(s, " -")
	return s
}

// KnownProperties enumerates property names and, where they come from a
// fixed vocabulary, their canonical values.
func KnownProperties() map[string][]string {
	props := map[string][]string{
		PropTitle:            nil,
		PropYear:             nil,
		PropDate:             nil,
		PropSeason:           nil,
		PropEpisode:          nil,
		PropContainer:        {"mp4", "mkv", "avi", "srt", "sub", "ssa", "ass", "idx"},
		PropScreenSize:       {"480p", "720p", "1080i", "1080p", "2160p"},
		PropReleaseGroup:     nil,
		PropLanguage:         nil,
		PropSubtitleLanguage: nil,
		PropFormat:           canonicalValues(formatTokens),
		PropVideoCodec:       canonicalValues(videoCodecTokens),
		PropAudioCodec:       canonicalValues(audioCodecTokens),
		PropOther:            canonicalValues(otherTokens),
	}
	return props
}

func canonicalValues(table map[string]canonicalToken) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, ct := range table {
		if _, ok := seen[ct.Canonical]; ok {
			continue
		}
		seen[ct.Canonical] = struct{}{}
		values = append(values, ct.Canonical)
	}
	sort.Strings(values)
	return values
}
