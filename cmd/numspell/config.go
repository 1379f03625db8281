package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"numspell/cmd/numspell/grammar"
	"numspell/cmd/numspell/grammaryaml"
	"numspell/cmd/numspell/speller"

	"gopkg.in/yaml.v3"
)

// appName is the single source of truth for the application name.
// All derived identifiers (env vars, config paths, error messages) are computed from it.
const appName = "numspell"

// Derived env var names, computed once at init from appName.
var (
	envConfigDir = strings.ToUpper(appName) + "_CONFIG_DIR"
	envGrammars  = strings.ToUpper(appName) + "_GRAMMARS"
)

const (
	configFileName = "config.yml"
	historyName    = "history"
	grammarsDir    = "grammars"
)

var defaultLanguages = []string{"en", "ru"}

// fileConfig is the content of <config>/config.yml. Every field is optional.
type fileConfig struct {
	Languages []string `yaml:"languages,omitempty"`
	Format    string   `yaml:"format,omitempty"`
}

// resolveConfigDir returns the base config directory for the application.
// Priority: $<APPNAME>_CONFIG_DIR > $XDG_CONFIG_HOME/<appName> > ~/.config/<appName>
func resolveConfigDir() (string, error) {
	if v := os.Getenv(envConfigDir); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// resolveGrammarFiles returns all grammar files to load.
// Order: configDir/grammars/*.yml → $<APPNAME>_GRAMMARS → flagFiles
// A missing grammars directory is silently skipped; explicitly provided paths
// are kept as-is (errors surface at read time).
func resolveGrammarFiles(configDir string, flagFiles []string) ([]string, error) {
	files, err := globYAML(filepath.Join(configDir, grammarsDir))
	if err != nil {
		return nil, err
	}
	files = append(files, splitColon(os.Getenv(envGrammars))...)
	files = append(files, flagFiles...)
	return files, nil
}

// globYAML returns sorted *.yml / *.yaml files in dir.
// Returns nil without error if dir does not exist.
func globYAML(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml") {
			files = append(files, filepath.Join(dir, name))
		}
	}
	return files, nil
}

// splitColon splits a colon-separated string, filtering empty parts.
func splitColon(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ":")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// loadFileConfig reads <configDir>/config.yml. A missing file is not an error.
func loadFileConfig(configDir string) (fileConfig, error) {
	var fc fileConfig
	path := filepath.Join(configDir, configFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fc, nil
	}
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("config file %s: %w", path, err)
	}
	return fc, nil
}

// loadRegistry returns the built-in grammars plus every grammar file found
// for configDir and flagFiles. A file grammar replaces a built-in one with
// the same base language.
func loadRegistry(configDir string, flagFiles []string) (*grammar.Registry, error) {
	reg := grammar.NewBuiltinRegistry()

	files, err := resolveGrammarFiles(configDir, flagFiles)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return reg, nil
	}
	logf("loading grammar files: %s", strings.Join(files, ", "))

	grammars, err := grammaryaml.Load(files...)
	if err != nil {
		return nil, err
	}
	for _, g := range grammars {
		root := g.Root
		replaced, err := reg.Replace(g.Language, g.Name, func() speller.Node { return root })
		if err != nil {
			return nil, err
		}
		if replaced {
			warnf("grammar file overrides language %s", g.Language)
		}
		for _, w := range g.Warnings {
			logf("grammar %s: %s", g.Language, w)
		}
	}
	return reg, nil
}

// logf prints a diagnostic line to stderr when --verbose is set.
func logf(format string, args ...interface{}) {
	if flagVerbose {
		fmt.Fprintf(os.Stderr, appName+": "+format+"\n", args...)
	}
}

// warnf always prints to stderr.
func warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}
