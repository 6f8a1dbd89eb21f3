package api

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/duramato/guessit/internal/guess"
	"github.com/duramato/guessit/internal/matcher"
)

func testAPI() *API {
	return New(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func resultMap(result *guess.Guess) map[string]string {
	out := make(map[string]string, result.Len())
	for _, key := range result.Keys() {
		v, _ := result.Get(key)
		out[key] = v.String()
	}
	return out
}

func TestGuessitMovie(t *testing.T) {
	result := testAPI().Guessit("The.Matrix.1999.1080p.BluRay.x264-SiNNERS.mkv", Options{})

	want := map[string]string{
		"title":        "The Matrix",
		"year":         "1999",
		"screenSize":   "1080p",
		"format":       "BluRay",
		"videoCodec":   "H.264",
		"releaseGroup": "SiNNERS",
		"container":    "mkv",
		"type":         "movie",
	}
	if diff := cmp.Diff(want, resultMap(result)); diff != "" {
		t.Errorf("Guessit mismatch (-want +got):\n%s", diff)
	}
}

func TestGuessitEpisode(t *testing.T) {
	result := testAPI().Guessit("Breaking.Bad.S05E14.720p.HDTV.x264-ASAP.mkv", Options{})

	want := map[string]string{
		"title":         "Breaking Bad",
		"season":        "5",
		"episodeNumber": "[14]",
		"screenSize":    "720p",
		"format":        "HDTV",
		"videoCodec":    "H.264",
		"releaseGroup":  "ASAP",
		"container":     "mkv",
		"type":          "episode",
	}
	if diff := cmp.Diff(want, resultMap(result)); diff != "" {
		t.Errorf("Guessit mismatch (-want +got):\n%s", diff)
	}
}

func TestGuessitMultiEpisodeAppends(t *testing.T) {
	result := testAPI().Guessit("Show.S01E01E02.720p.HDTV.mkv", Options{})

	v, ok := result.Get(matcher.PropEpisode)
	if !ok {
		t.Fatalf("episodeNumber missing from result")
	}
	want := guess.List{guess.Int(1), guess.Int(2)}
	if !guess.Equal(v, want) {
		t.Errorf("episodeNumber = %v, want %v", v, want)
	}
}

func TestGuessitTypeHint(t *testing.T) {
	result := testAPI().Guessit("Ambiguous.Name.mkv", Options{Type: "episode"})

	v, _ := result.Get("type")
	if !guess.Equal(v, guess.Str("episode")) {
		t.Errorf("type = %v, want forced episode", v)
	}
	c, _ := result.Confidence("type")
	if c != 1.0 {
		t.Errorf("Confidence(type) = %v, want 1.0 for a forced hint", c)
	}
}

func TestGuessitNameOnly(t *testing.T) {
	result := testAPI().Guessit("The.Matrix.1999.1080p.BluRay.x264-SiNNERS.mkv", Options{NameOnly: true})

	want := map[string]string{
		"title": "The Matrix",
		"year":  "1999",
		"type":  "movie",
	}
	if diff := cmp.Diff(want, resultMap(result)); diff != "" {
		t.Errorf("NameOnly result mismatch (-want +got):\n%s", diff)
	}
}

func TestGuessitExclude(t *testing.T) {
	result := testAPI().Guessit("The.Matrix.1999.1080p.BluRay.x264-SiNNERS.mkv", Options{
		Exclude: []string{"releaseGroup", "container"},
	})

	if result.Has("releaseGroup") || result.Has("container") {
		t.Errorf("excluded properties survived: %v", resultMap(result))
	}
}

func TestGuessitCachedResultIsIsolated(t *testing.T) {
	a := testAPI()
	name := "Breaking.Bad.S05E14.720p.HDTV.x264-ASAP.mkv"

	first := a.Guessit(name, Options{})
	first.Delete("title")
	first.SetWithConfidence("season", guess.Int(99), 1.0)

	second := a.Guessit(name, Options{})
	if !second.Has("title") {
		t.Errorf("mutating a returned result leaked into the cache")
	}
	v, _ := second.Get("season")
	if !guess.Equal(v, guess.Int(5)) {
		t.Errorf("season = %v after unrelated mutation, want 5", v)
	}
}

func TestProperties(t *testing.T) {
	names, values := testAPI().Properties()

	if len(names) == 0 {
		t.Fatalf("Properties() returned no names")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %q before %q", names[i-1], names[i])
		}
	}
	found := false
	for _, v := range values["format"] {
		if v == "BluRay" {
			found = true
		}
	}
	if !found {
		t.Errorf("format values %v missing BluRay", values["format"])
	}
}
