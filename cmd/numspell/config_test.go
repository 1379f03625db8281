package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numspell/cmd/numspell/speller"
)

func TestResolveConfigDir(t *testing.T) {
	t.Run("explicit env wins", func(t *testing.T) {
		t.Setenv(envConfigDir, "/tmp/explicit")
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		dir, err := resolveConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/explicit", dir)
	})

	t.Run("xdg", func(t *testing.T) {
		t.Setenv(envConfigDir, "")
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		dir, err := resolveConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/tmp/xdg", appName), dir)
	})

	t.Run("home", func(t *testing.T) {
		t.Setenv(envConfigDir, "")
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", "/tmp/home")
		dir, err := resolveConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/tmp/home", ".config", appName), dir)
	})
}

func TestEnvNames(t *testing.T) {
	assert.Equal(t, "NUMSPELL_CONFIG_DIR", envConfigDir)
	assert.Equal(t, "NUMSPELL_GRAMMARS", envGrammars)
}

func TestSplitColon(t *testing.T) {
	assert.Nil(t, splitColon(""))
	assert.Equal(t, []string{"a", "b"}, splitColon("a::b:"))
}

func TestResolveGrammarFiles(t *testing.T) {
	dir := t.TempDir()
	gdir := filepath.Join(dir, grammarsDir)
	require.NoError(t, os.MkdirAll(filepath.Join(gdir, "sub.yml"), 0o755))
	for _, name := range []string{"b.yaml", "a.yml", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(gdir, name), nil, 0o644))
	}
	t.Setenv(envGrammars, "/x/env1.yml:/x/env2.yml")

	files, err := resolveGrammarFiles(dir, []string{"/x/flag.yml"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(gdir, "a.yml"),
		filepath.Join(gdir, "b.yaml"),
		"/x/env1.yml",
		"/x/env2.yml",
		"/x/flag.yml",
	}, files)

	files, err = resolveGrammarFiles(filepath.Join(dir, "missing"), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/x/env1.yml", "/x/env2.yml"}, files)
}

func TestLoadFileConfig(t *testing.T) {
	dir := t.TempDir()
	fc, err := loadFileConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, fileConfig{}, fc)

	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName),
		[]byte("languages: [ru, en-GB]\nformat: yaml\n"), 0o644))
	fc, err = loadFileConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, fileConfig{Languages: []string{"ru", "en-GB"}, Format: "yaml"}, fc)

	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("languages: {a: b}\n"), 0o644))
	_, err = loadFileConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), configFileName)
}

func TestLoadRegistry(t *testing.T) {
	t.Setenv(envGrammars, "")
	dir := t.TempDir()
	gdir := filepath.Join(dir, grammarsDir)
	require.NoError(t, os.MkdirAll(gdir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(gdir, "de.yml"), exampleGermanYAML, 0o644))

	reg, err := loadRegistry(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"de", "en", "ru"}, reg.Tags())
	assert.Equal(t, "German", reg.Name("de-AT"))

	de, err := reg.Build("de")
	require.NoError(t, err)
	assert.Equal(t, "ein und zwanzig ", speller.Spell(de, 21))

	t.Run("file replaces built-in", func(t *testing.T) {
		en := filepath.Join(t.TempDir(), "en.yml")
		require.NoError(t, os.WriteFile(en, []byte("language: en-US\nname: Tiny\nroot: number\n"), 0o644))
		reg, err := loadRegistry(dir, []string{en})
		require.NoError(t, err)
		assert.Equal(t, "Tiny", reg.Name("en"))
		root, err := reg.Build("en")
		require.NoError(t, err)
		assert.Equal(t, "number ", speller.Spell(root, 5))
	})

	t.Run("broken file", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.yml")
		require.NoError(t, os.WriteFile(bad, []byte("language: en\nroot: {split: {position: 99}}\n"), 0o644))
		_, err := loadRegistry(dir, []string{bad})
		require.Error(t, err)
		assert.Contains(t, err.Error(), bad)
	})

	t.Run("no files", func(t *testing.T) {
		reg, err := loadRegistry(filepath.Join(dir, "none"), nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"en", "ru"}, reg.Tags())
	})
}
