package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const configInitHeader = "# numspell configuration\n" +
	"# ─────────────────────────────────────────────────────────────────────────────\n" +
	"# languages: tags spelled when --lang is not given, in output order.\n" +
	"# format:    text or yaml.\n" +
	"# Grammar files in grammars/ are loaded on every run.\n" +
	"# ─────────────────────────────────────────────────────────────────────────────\n\n"

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialise the numspell config directory with starter files",
	Long: "Create the numspell config directory and populate it with a config.yml\n" +
		"and the German example grammar, so `numspell --lang de 21` works at once.\n\n" +
		"Files created:\n" +
		"  <config>/config.yml       default languages and output format\n" +
		"  <config>/grammars/de.yml  example grammar (see `numspell example --lang de`)\n\n" +
		"The default config directory follows the same priority as the main command:\n" +
		"  $NUMSPELL_CONFIG_DIR > $XDG_CONFIG_HOME/numspell > ~/.config/numspell",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		dir, _ := cmd.Flags().GetString("dir")
		interactive, _ := cmd.Flags().GetBool("interactive")

		if dir == "" {
			var err error
			dir, err = resolveConfigDir()
			if err != nil {
				return err
			}
		}

		fc := fileConfig{Languages: append([]string(nil), defaultLanguages...), Format: formatText}
		if interactive {
			if err := askFileConfig(&fc); err != nil {
				return err
			}
		}

		gdir := filepath.Join(dir, grammarsDir)
		if err := os.MkdirAll(gdir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", gdir, err)
		}

		configFile := filepath.Join(dir, configFileName)
		grammarFile := filepath.Join(gdir, "de.yml")

		data, err := yaml.Marshal(fc)
		if err != nil {
			return err
		}
		if err := writeInitFile(configFile, configInitHeader, data, force); err != nil {
			return err
		}
		if err := writeInitFile(grammarFile, "", exampleGermanYAML, force); err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "initialised %s\n", dir)
		fmt.Fprintf(os.Stderr, "  %s\n", configFile)
		fmt.Fprintf(os.Stderr, "  %s\n", grammarFile)
		fmt.Fprintf(os.Stderr, "\nRun `numspell list` to see available languages.\n")
		return nil
	},
}

// askFileConfig fills fc from an interactive form.
func askFileConfig(fc *fileConfig) error {
	tags := append(append([]string(nil), defaultLanguages...), "de")
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Default languages").
				Options(huh.NewOptions(tags...)...).
				Validate(func(v []string) error {
					if len(v) == 0 {
						return fmt.Errorf("select at least one language")
					}
					return nil
				}).
				Value(&fc.Languages),
			huh.NewSelect[string]().
				Title("Output format").
				Options(huh.NewOptions(formatText, formatYAML)...).
				Value(&fc.Format),
		),
	).Run()
}

func writeInitFile(path, header string, content []byte, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if header != "" {
		fmt.Fprint(f, header)
	}
	_, err = f.Write(content)
	return err
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite existing files")
	configInitCmd.Flags().String("dir", "", "target config directory (default: auto-resolved)")
	configInitCmd.Flags().BoolP("interactive", "i", false, "choose languages and format in a form")
}
