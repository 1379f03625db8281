package main

import (
	"errors"
	"strings"

	"numspell/cmd/numspell/grammar"
	"numspell/pkg/lib"
)

func main() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(exampleCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(benchCmd)

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		lib.Exit(err, hints(err)...)
	}
}

// hints returns follow-up advice printed under an error.
func hints(err error) []string {
	switch {
	case isFlagInterceptError(err):
		return []string{"negative values look like flags; put them after --, as in `" + appName + " -- -42`"}
	case errors.Is(err, grammar.ErrUnknownLanguage):
		return []string{"run `" + appName + " list` to see the available languages"}
	case errors.Is(err, errInvalidNumber):
		return []string{"values must be integers from -9223372036854775808 to 18446744073709551615"}
	}
	return nil
}

// isFlagInterceptError reports whether cobra rejected an argument as an
// unknown flag, which is what happens to a bare negative value.
func isFlagInterceptError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "unknown flag:") || strings.Contains(msg, "unknown shorthand flag:")
}
