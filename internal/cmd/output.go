package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/duramato/guessit/internal/guess"
)

var (
	nameStyle  = lipgloss.NewStyle().Bold(true)
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	confStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle = lipgloss.NewStyle()
)

// writeJSON emits one JSON object per line, plain or confidence-annotated.
func writeJSON(w io.Writer, result *guess.Guess, advanced bool) error {
	var v any = result
	if advanced {
		v = guess.Advanced{Guess: result}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writePropertiesJSON emits the property catalog as one stable object.
func writePropertiesJSON(w io.Writer, names []string, values map[string][]string) error {
	ordered := make(map[string][]string, len(names))
	for _, name := range names {
		ordered[name] = values[name]
	}
	data, err := json.MarshalIndent(ordered, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeStyled renders a human-readable block: the input name followed by
// aligned property rows.
func writeStyled(w io.Writer, name string, result *guess.Guess, advanced bool) {
	fmt.Fprintln(w, nameStyle.Render(name))

	keys := result.Keys()
	width := 0
	for _, key := range keys {
		if kw := runewidth.StringWidth(key); kw > width {
			width = kw
		}
	}

	for _, key := range keys {
		v, _ := result.Get(key)
		padded := runewidth.FillRight(key, width)
		line := fmt.Sprintf("  %s  %s", keyStyle.Render(padded), valueStyle.Render(v.String()))
		if advanced {
			c, _ := result.Confidence(key)
			line += confStyle.Render(fmt.Sprintf("  (%.2f)", c))
		}
		fmt.Fprintln(w, line)
	}
}
