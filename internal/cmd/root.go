package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/duramato/guessit/internal/api"
	"github.com/duramato/guessit/internal/config"
	"github.com/duramato/guessit/internal/log"
)

// rootCmd parses release names given as arguments.
var rootCmd = &cobra.Command{
	Use:   "guessit <name>...",
	Short: "Extract structured metadata from media filenames",
	Long: `guessit extracts structured metadata (title, season and episode numbers,
source, codec, language, ...) from free-form media filenames and release
names. Overlapping pattern matches are reconciled by confidence-weighted
merging, so contradictory evidence degrades gracefully instead of failing.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGuess,
}

// Execute runs the root command. It is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	jsonOutput bool
	advanced   bool
	typeHint   string
	nameOnly   bool
	excludes   []string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON, one object per input name")
	rootCmd.PersistentFlags().BoolVar(&advanced, "advanced", false, "Include per-property confidence scores in the output")
	rootCmd.Flags().StringVarP(&typeHint, "type", "t", "", "Force the media type: movie or episode")
	rootCmd.Flags().BoolVar(&nameOnly, "name-only", false, "Keep only identity properties (title, year, season, episode)")
	rootCmd.Flags().StringSliceVar(&excludes, "exclude", nil, "Properties to drop from the result")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging of every reconciliation step")
}

// newAPI loads the user config and assembles the pipeline shared by all
// commands.
func newAPI() (*api.API, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	return api.New(cfg, log.New(level)), nil
}

func runGuess(cmd *cobra.Command, args []string) error {
	a, err := newAPI()
	if err != nil {
		return err
	}

	opts := api.Options{
		Type:     typeHint,
		NameOnly: nameOnly,
		Exclude:  excludes,
	}

	out := cmd.OutOrStdout()
	for _, name := range args {
		result := a.Guessit(name, opts)
		if jsonOutput {
			if err := writeJSON(out, result, advanced); err != nil {
				return err
			}
			continue
		}
		writeStyled(out, name, result, advanced)
	}
	return nil
}
