package grammar

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// MacroRegistry holds macros shared by every grammar an Engine builds.
// Macros are registered once before building, then looked up by name.
type MacroRegistry struct {
	macros map[string]Macro
}

// NewMacroRegistry returns an empty MacroRegistry.
func NewMacroRegistry() *MacroRegistry {
	return &MacroRegistry{macros: make(map[string]Macro)}
}

// Register adds a macro.
// Returns ErrMacroAlreadyExists if a macro with that name is already registered.
func (r *MacroRegistry) Register(name string, m Macro) error {
	if _, exists := r.macros[name]; exists {
		return ErrMacroAlreadyExists
	}
	r.macros[name] = m
	return nil
}

// Get returns the macro registered under name.
func (r *MacroRegistry) Get(name string) (Macro, bool) {
	m, ok := r.macros[name]
	return m, ok
}

// applyParamDefs checks the caller's params against the declared ones and
// fills in defaults, returning the map used for template substitution.
func applyParamDefs(defs ParamDefs, callerParams map[string]string) (map[string]string, error) {
	for k := range callerParams {
		if _, declared := defs[k]; !declared {
			return nil, fmt.Errorf("%w: %s", ErrUnknownParam, k)
		}
	}

	result := make(map[string]string, len(defs))
	for name, defaultVal := range defs {
		if v, provided := callerParams[name]; provided {
			result[name] = v
		} else if defaultVal != nil {
			result[name] = *defaultVal
		} else {
			return nil, fmt.Errorf("%w: %s", ErrMissingParam, name)
		}
	}
	return result, nil
}

// substituteString executes s as a Go template over params.
// Strings without template markers are returned unchanged, and so is
// everything outside a macro body (params == nil).
func substituteString(s string, params map[string]string) (string, error) {
	if params == nil || !strings.Contains(s, "{{") {
		return s, nil
	}
	t, err := template.New("").Option("missingkey=error").Parse(s)
	if err != nil {
		return "", fmt.Errorf("template parse error in %q: %w", s, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, params); err != nil {
		return "", fmt.Errorf("template execute error in %q: %w", s, err)
	}
	return buf.String(), nil
}

// substituteParams substitutes the enclosing macro's params into the
// values passed to a nested use, so params flow through nested macros.
func substituteParams(with map[string]string, params map[string]string) (map[string]string, error) {
	if len(with) == 0 {
		return with, nil
	}
	out := make(map[string]string, len(with))
	for k, v := range with {
		s, err := substituteString(v, params)
		if err != nil {
			return nil, fmt.Errorf("with[%s]: %w", k, err)
		}
		out[k] = s
	}
	return out, nil
}
