package lang

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Language
	}{
		{"Alpha2", "fr", Language{Alpha3: "fra"}},
		{"Alpha3", "fra", Language{Alpha3: "fra"}},
		{"Alpha2Uppercase", "EN", Language{Alpha3: "eng"}},
		{"EnglishName", "French", Language{Alpha3: "fra"}},
		{"EnglishNameLowercase", "japanese", Language{Alpha3: "jpn"}},
		{"WithRegion", "pt-BR", Language{Alpha3: "por", Country: "BR"}},
		{"RegionUnderscore", "pt_BR", Language{Alpha3: "por", Country: "BR"}},
		{"SceneShorthandPob", "pob", Language{Alpha3: "por", Country: "BR"}},
		{"SceneShorthandBrazilian", "Brazilian", Language{Alpha3: "por", Country: "BR"}},
		{"SceneShorthandGr", "gr", Language{Alpha3: "ell"}},
		{"SceneShorthandJp", "jp", Language{Alpha3: "jpn"}},
		{"Whitespace", "  swedish  ", Language{Alpha3: "swe"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Resolve(tc.input)
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tc.input, err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Resolve(%q) mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}

func TestResolveUnknown(t *testing.T) {
	for _, input := range []string{"", "zzzz", "notalanguage", "q"} {
		got, err := Resolve(input)
		if !errors.Is(err, ErrUnknownLanguage) {
			t.Errorf("Resolve(%q) error = %v, want ErrUnknownLanguage", input, err)
		}
		if !got.IsUndetermined() {
			t.Errorf("Resolve(%q) = %v, want undetermined", input, got)
		}
	}
}

func TestResolveUndeterminedSynonyms(t *testing.T) {
	for _, input := range []string{"unknown", "unk", "un"} {
		got, err := Resolve(input)
		if err != nil {
			t.Errorf("Resolve(%q) error = %v, want nil (known synonym)", input, err)
		}
		if !got.IsUndetermined() {
			t.Errorf("Resolve(%q) = %v, want undetermined", input, got)
		}
	}
}

func TestLanguageString(t *testing.T) {
	if got := (Language{Alpha3: "fra"}).String(); got != "fra" {
		t.Errorf("String() = %q, want %q", got, "fra")
	}
	if got := (Language{Alpha3: "por", Country: "BR"}).String(); got != "por-BR" {
		t.Errorf("String() = %q, want %q", got, "por-BR")
	}
}

func TestLanguageEnglish(t *testing.T) {
	if got := (Language{Alpha3: "fra"}).English(); got != "French" {
		t.Errorf("English() = %q, want French", got)
	}
}
