// Package api is the public face of the parsing pipeline: it runs the
// matcher over a release name, reconciles the resulting guesses per
// property, and reduces them to one metadata record.
package api

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/duramato/guessit/internal/config"
	"github.com/duramato/guessit/internal/guess"
	"github.com/duramato/guessit/internal/matcher"
)

// Options tweak a single Guessit call.
type Options struct {
	// Type forces the media type ("movie" or "episode") instead of
	// inferring it from the matched properties.
	Type string

	// NameOnly keeps only identity properties (title, year, date,
	// season, episode numbers) in the result.
	NameOnly bool

	// Exclude removes the named properties from the result.
	Exclude []string
}

// identityProps are what survives a NameOnly run.
var identityProps = []string{
	matcher.PropTitle,
	matcher.PropYear,
	matcher.PropDate,
	matcher.PropSeason,
	matcher.PropEpisode,
}

// intProps are reconciled with ChooseInt when not appendable.
var intProps = []string{
	matcher.PropSeason,
	matcher.PropYear,
	matcher.PropEpisode,
	matcher.PropDate,
}

// strProps are reconciled with ChooseString when not appendable.
var strProps = []string{
	matcher.PropTitle,
	matcher.PropFormat,
	matcher.PropVideoCodec,
	matcher.PropAudioCodec,
	matcher.PropScreenSize,
	matcher.PropContainer,
	matcher.PropReleaseGroup,
	matcher.PropLanguage,
	matcher.PropSubtitleLanguage,
	matcher.PropOther,
}

// API runs release names through the full pipeline. Safe for sequential
// reuse; each call works on its own guess list.
type API struct {
	log         *slog.Logger
	cfg         *config.Config
	matcher     *matcher.Matcher
	merger      *guess.Merger
	cache       *gocache.Cache
	appendProps []string
}

// New builds an API from the given configuration. A nil config means
// defaults; a nil logger means slog.Default().
func New(cfg *config.Config, logger *slog.Logger) *API {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	ttl := time.Duration(cfg.CacheTTLMinutes) * time.Minute
	if ttl == 0 {
		ttl = gocache.NoExpiration
	}

	return &API{
		log:         logger,
		cfg:         cfg,
		matcher:     matcher.New(logger),
		merger:      guess.NewMerger(logger, guess.WithNoiseThreshold(cfg.NoiseThreshold)),
		cache:       gocache.New(ttl, 10*time.Minute),
		appendProps: cfg.AppendProperties,
	}
}

// Guessit parses one release name into its final metadata record.
func (a *API) Guessit(name string, opts Options) *guess.Guess {
	key := cacheKey(name, opts)
	if cached, ok := a.cache.Get(key); ok {
		return cached.(*guess.Guess).Clone()
	}

	guesses := a.matcher.Match(name)

	for _, prop := range intProps {
		if !slices.Contains(a.appendProps, prop) {
			guesses = a.merger.MergeSimilar(guesses, prop, guess.ChooseInt)
		}
	}
	for _, prop := range strProps {
		if !slices.Contains(a.appendProps, prop) {
			guesses = a.merger.MergeSimilar(guesses, prop, guess.ChooseString)
		}
	}

	result := a.merger.MergeAll(guesses, a.appendProps)

	a.applyType(result, opts)
	a.filter(result, opts)

	a.cache.SetDefault(key, result)
	return result.Clone()
}

// applyType records the media type: forced by the caller, or inferred
// from episode-shaped evidence.
func (a *API) applyType(result *guess.Guess, opts Options) {
	if opts.Type != "" {
		result.SetWithConfidence("type", guess.Str(opts.Type), 1.0)
		return
	}
	if result.Has(matcher.PropSeason) || result.Has(matcher.PropEpisode) || result.Has(matcher.PropDate) {
		result.SetWithConfidence("type", guess.Str("episode"), 0.8)
		return
	}
	result.SetWithConfidence("type", guess.Str("movie"), 0.6)
}

func (a *API) filter(result *guess.Guess, opts Options) {
	for _, prop := range a.cfg.ExcludeProperties {
		result.Delete(prop)
	}
	for _, prop := range opts.Exclude {
		result.Delete(prop)
	}
	if opts.NameOnly {
		for _, key := range result.Keys() {
			if key != "type" && !slices.Contains(identityProps, key) {
				result.Delete(key)
			}
		}
	}
}

// Properties enumerates the guessable property names and their canonical
// values, sorted by name.
func (a *API) Properties() ([]string, map[string][]string) {
	props := matcher.KnownProperties()
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, props
}

func cacheKey(name string, opts Options) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('|')
	b.WriteString(opts.Type)
	if opts.NameOnly {
		b.WriteString("|nameonly")
	}
	for _, prop := range opts.Exclude {
		b.WriteByte('|')
		b.WriteString(prop)
	}
	return b.String()
}
