package main

import (
	"fmt"
	"io"

	"numspell/cmd/numspell/grammar"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available languages",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		printLanguages(cmd.OutOrStdout(), s.registry, s.languages)
		return nil
	},
}

// printLanguages prints one aligned line per registered language and marks
// the ones spelled by default.
func printLanguages(w io.Writer, reg *grammar.Registry, selected []string) {
	tags := reg.Tags()
	if len(tags) == 0 {
		fmt.Fprintln(w, "no languages found")
		return
	}

	active := make(map[string]bool, len(selected))
	for _, tag := range selected {
		if key, err := grammar.Canonical(tag); err == nil {
			active[key] = true
		}
	}

	maxLen := 0
	for _, tag := range tags {
		if n := len(tag); n > maxLen {
			maxLen = n
		}
	}
	for _, tag := range tags {
		mark := " "
		if active[tag] {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %-*s  %s\n", mark, maxLen, tag, reg.Name(tag))
	}
}
