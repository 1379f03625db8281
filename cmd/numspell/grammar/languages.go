package grammar

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"numspell/cmd/numspell/speller"
)

// Builder constructs the root node of one language's grammar.
// It is called at most once per registration.
type Builder func() speller.Node

type entry struct {
	name  string
	build Builder
	once  sync.Once
	root  speller.Node
}

// Registry maps language tags to grammars. Tags are matched on their base
// language, so "en-GB" and "EN" both find "en". Each grammar is built on
// first use and shared afterwards; a Registry is safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// NewBuiltinRegistry returns a Registry holding English and Russian.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	r.mustRegister("en", "English", English)
	r.mustRegister("ru", "Russian", Russian)
	return r
}

var defaultRegistry = sync.OnceValue(NewBuiltinRegistry)

// Default returns the process-wide registry of built-in grammars.
func Default() *Registry { return defaultRegistry() }

// Build returns the root of the built-in grammar for tag.
func Build(tag string) (speller.Node, error) { return Default().Build(tag) }

// Canonical returns the base language of tag ("en-GB" -> "en").
func Canonical(tag string) (string, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidTag, tag, err)
	}
	base, conf := t.Base()
	if conf == language.No {
		return "", fmt.Errorf("%w: %q has no base language", ErrInvalidTag, tag)
	}
	return base.String(), nil
}

// Register adds a grammar under tag. An empty name is replaced by the
// English display name of the language.
// Returns ErrLanguageAlreadyExists if the base language is taken.
func (r *Registry) Register(tag, name string, build Builder) error {
	key, err := Canonical(tag)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[key]; exists {
		return fmt.Errorf("%w: %s", ErrLanguageAlreadyExists, key)
	}
	r.entries[key] = newEntry(key, name, build)
	return nil
}

// Replace registers build under tag, replacing any existing grammar.
// It reports whether a grammar was replaced.
func (r *Registry) Replace(tag, name string, build Builder) (bool, error) {
	key, err := Canonical(tag)
	if err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, existed := r.entries[key]
	r.entries[key] = newEntry(key, name, build)
	return existed, nil
}

func (r *Registry) mustRegister(tag, name string, build Builder) {
	if err := r.Register(tag, name, build); err != nil {
		panic(err)
	}
}

func newEntry(key, name string, build Builder) *entry {
	if name == "" {
		name = display.English.Languages().Name(language.Make(key))
	}
	return &entry{name: name, build: build}
}

func (r *Registry) lookup(tag string) (*entry, string, error) {
	key, err := Canonical(tag)
	if err != nil {
		return nil, "", err
	}
	r.mu.Lock()
	e, ok := r.entries[key]
	r.mu.Unlock()
	if !ok {
		return nil, key, fmt.Errorf("%w: %s", ErrUnknownLanguage, key)
	}
	return e, key, nil
}

// Build returns the grammar for tag, constructing it on first use.
func (r *Registry) Build(tag string) (speller.Node, error) {
	e, _, err := r.lookup(tag)
	if err != nil {
		return nil, err
	}
	e.once.Do(func() { e.root = e.build() })
	return e.root, nil
}

// Has reports whether a grammar is registered for tag.
func (r *Registry) Has(tag string) bool {
	_, _, err := r.lookup(tag)
	return err == nil
}

// Name returns the display name registered for tag, or "" if unknown.
func (r *Registry) Name(tag string) string {
	e, _, err := r.lookup(tag)
	if err != nil {
		return ""
	}
	return e.name
}

// Tags returns the registered base languages in sorted order.
func (r *Registry) Tags() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	tags := make([]string, 0, len(r.entries))
	for k := range r.entries {
		tags = append(tags, k)
	}
	sort.Strings(tags)
	return tags
}
