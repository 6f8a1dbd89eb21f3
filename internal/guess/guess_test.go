package guess

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSetDefaultsConfidenceToZero(t *testing.T) {
	g := New()
	g.Set("title", Str("The Matrix"))

	c, err := g.Confidence("title")
	if err != nil {
		t.Fatalf("Confidence(title) = %v, want nil error", err)
	}
	if c != 0 {
		t.Errorf("Confidence(title) = %v, want 0", c)
	}
}

func TestSetKeepsPriorConfidence(t *testing.T) {
	g := New()
	g.SetWithConfidence("season", Int(2), 0.7)
	g.Set("season", Int(3))

	c, _ := g.Confidence("season")
	if c != 0.7 {
		t.Errorf("Confidence(season) = %v, want 0.7 after value-only Set", c)
	}
	v, _ := g.Get("season")
	if !Equal(v, Int(3)) {
		t.Errorf("Get(season) = %v, want 3", v)
	}
}

func TestConfidenceMissingKey(t *testing.T) {
	g := New()
	_, err := g.Confidence("episodeNumber")

	var keyErr *KeyError
	if !errors.As(err, &keyErr) {
		t.Fatalf("Confidence on absent key returned %v, want *KeyError", err)
	}
	if keyErr.Key != "episodeNumber" {
		t.Errorf("KeyError.Key = %q, want %q", keyErr.Key, "episodeNumber")
	}
}

func TestKeysPreserveInsertionOrder(t *testing.T) {
	g := New()
	g.SetWithConfidence("title", Str("Alien"), 0.8)
	g.SetWithConfidence("year", Int(1979), 0.9)
	g.SetWithConfidence("videoCodec", Str("H.264"), 0.5)
	g.Delete("year")
	g.SetWithConfidence("year", Int(1979), 0.9)

	want := []string{"title", "videoCodec", "year"}
	if diff := cmp.Diff(want, g.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateCopiesSourceConfidences(t *testing.T) {
	g := New()
	g.SetWithConfidence("season", Int(1), 0.9)

	other := New()
	other.SetWithConfidence("season", Int(2), 0.1)
	other.SetWithConfidence("episodeNumber", Int(4), 0.6)

	g.Update(other)

	v, _ := g.Get("season")
	if !Equal(v, Int(2)) {
		t.Errorf("season = %v, want 2 (plain update overwrites unconditionally)", v)
	}
	c, _ := g.Confidence("season")
	if c != 0.1 {
		t.Errorf("Confidence(season) = %v, want 0.1", c)
	}
	c, _ = g.Confidence("episodeNumber")
	if c != 0.6 {
		t.Errorf("Confidence(episodeNumber) = %v, want 0.6", c)
	}
}

func TestUpdateWithConfidenceOverridesSource(t *testing.T) {
	g := New()
	other := New()
	other.SetWithConfidence("title", Str("Dune"), 0.9)
	other.SetWithConfidence("year", Int(2021), 0.4)

	g.UpdateWithConfidence(other, 0.25)

	for _, key := range []string{"title", "year"} {
		c, _ := g.Confidence(key)
		if c != 0.25 {
			t.Errorf("Confidence(%s) = %v, want uniform 0.25", key, c)
		}
	}
}

func TestUpdateHighestConfidence(t *testing.T) {
	tests := []struct {
		name     string
		selfConf float64
		otherCon float64
		want     Value
		wantConf float64
	}{
		{"SelfHigherKeepsSelf", 0.8, 0.3, Int(1), 0.8},
		{"OtherHigherAdoptsOther", 0.3, 0.8, Int(2), 0.8},
		{"ExactTieKeepsSelf", 0.5, 0.5, Int(1), 0.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := New()
			g.SetWithConfidence("season", Int(1), tc.selfConf)
			other := New()
			other.SetWithConfidence("season", Int(2), tc.otherCon)

			g.UpdateHighestConfidence(other)

			v, _ := g.Get("season")
			if !Equal(v, tc.want) {
				t.Errorf("season = %v, want %v", v, tc.want)
			}
			c, _ := g.Confidence("season")
			if c != tc.wantConf {
				t.Errorf("Confidence(season) = %v, want %v", c, tc.wantConf)
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := New()
	g.SetWithConfidence("episodeNumber", List{Int(1), Int(2)}, 0.8)

	c := g.Clone()
	v, _ := c.Get("episodeNumber")
	c.Set("episodeNumber", append(v.(List), Int(3)))
	c.SetConfidence("episodeNumber", 0.1)

	orig, _ := g.Get("episodeNumber")
	if len(orig.(List)) != 2 {
		t.Errorf("original list length = %d after mutating clone, want 2", len(orig.(List)))
	}
	conf, _ := g.Confidence("episodeNumber")
	if conf != 0.8 {
		t.Errorf("original confidence = %v after mutating clone, want 0.8", conf)
	}
}

func TestMarshalJSON(t *testing.T) {
	g := New()
	g.SetWithConfidence("title", Str("The Matrix"), 0.8)
	g.SetWithConfidence("year", Int(1999), 0.9)
	g.SetWithConfidence("episodeNumber", List{Int(1), Int(2)}, 0.5)

	got, err := g.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	want := `{"title":"The Matrix","year":1999,"episodeNumber":[1,2]}`
	if string(got) != want {
		t.Errorf("MarshalJSON() = %s, want %s", got, want)
	}
}

func TestMarshalAdvancedJSON(t *testing.T) {
	g := New()
	g.SetWithConfidence("season", Int(4), 0.5)

	got, err := Advanced{g}.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	want := `{"season":{"value":4,"confidence":0.5}}`
	if string(got) != want {
		t.Errorf("Advanced MarshalJSON() = %s, want %s", got, want)
	}
}
