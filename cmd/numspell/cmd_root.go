package main

import (
	"os"
	"path/filepath"

	"numspell/cmd/numspell/grammar"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	flagLangs    []string
	flagGrammars []string
	flagFormat   string
	flagRaw      bool
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   appName + " [value ...]",
	Short: "Spell integers as words",
	Long: "Spell integers as words in one or more languages.\n\n" +
		"Values are read from the arguments, or from stdin when there are none\n" +
		"(an interactive prompt on a terminal). Negative values must follow --:\n" +
		"  " + appName + " -- -42",
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		langs, err := resolveLanguages(s.registry, s.languages)
		if err != nil {
			return err
		}
		sw, err := newSpellWriter(cmd.OutOrStdout(), s.format, langs, flagRaw)
		if err != nil {
			return err
		}

		switch {
		case len(args) > 0:
			err = spellTokens(sw, args)
		case stdinIsTerminal():
			err = spellInteractive(sw, s.historyFile())
		default:
			err = spellStream(sw, cmd.InOrStdin())
		}
		if err != nil {
			return err
		}
		return sw.close()
	},
}

// settings merges flags, config.yml and defaults, in that priority.
type settings struct {
	configDir string
	registry  *grammar.Registry
	languages []string
	format    string
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	dir, err := resolveConfigDir()
	if err != nil {
		return settings{}, err
	}
	fc, err := loadFileConfig(dir)
	if err != nil {
		return settings{}, err
	}
	reg, err := loadRegistry(dir, flagGrammars)
	if err != nil {
		return settings{}, err
	}

	s := settings{configDir: dir, registry: reg, languages: defaultLanguages, format: formatText}
	switch {
	case len(flagLangs) > 0:
		s.languages = flagLangs
	case len(fc.Languages) > 0:
		s.languages = fc.Languages
	}
	switch {
	case cmd.Flags().Changed("format"):
		s.format = flagFormat
	case fc.Format != "":
		s.format = fc.Format
	}
	logf("config dir %s, languages %v, format %s", dir, s.languages, s.format)
	return s, nil
}

// historyFile returns the readline history path, or "" when the config
// directory has not been created.
func (s settings) historyFile() string {
	if _, err := os.Stat(s.configDir); err != nil {
		return ""
	}
	return filepath.Join(s.configDir, historyName)
}

// addGrammarFlags registers the flags every command that loads grammars
// shares.
func addGrammarFlags(fs *pflag.FlagSet) {
	fs.StringArrayVarP(&flagLangs, "lang", "l", nil,
		"language tag to spell in (repeatable; default: config.yml or en, ru)")
	fs.StringArrayVarP(&flagGrammars, "grammar", "g", nil,
		"grammar YAML file (repeatable; default: ~/.config/"+appName+"/"+grammarsDir+"/*.yml)")
	fs.BoolVarP(&flagVerbose, "verbose", "v", false, "print diagnostics to stderr")
}

func init() {
	addGrammarFlags(rootCmd.PersistentFlags())
	rootCmd.Flags().StringVarP(&flagFormat, "format", "f", formatText, "output format: text or yaml")
	rootCmd.Flags().BoolVar(&flagRaw, "raw", false, "keep the trailing separator after the last word")
}
