package main

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the numspell config directory",
	Long:  "Commands for initialising the numspell config directory.",
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
