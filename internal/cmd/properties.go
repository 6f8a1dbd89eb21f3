package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var propertiesCmd = &cobra.Command{
	Use:   "properties",
	Short: "List guessable property names and their canonical values",
	RunE:  runProperties,
}

func init() {
	rootCmd.AddCommand(propertiesCmd)
}

func runProperties(cmd *cobra.Command, args []string) error {
	a, err := newAPI()
	if err != nil {
		return err
	}

	names, values := a.Properties()
	out := cmd.OutOrStdout()

	if jsonOutput {
		return writePropertiesJSON(out, names, values)
	}

	for _, name := range names {
		if len(values[name]) == 0 {
			fmt.Fprintln(out, keyStyle.Render(name))
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render(name), strings.Join(values[name], ", "))
	}
	return nil
}
