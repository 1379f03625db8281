package grammar

import "errors"

var (
	ErrLanguageAlreadyExists = errors.New("language already registered")
	ErrUnknownLanguage       = errors.New("unknown language")
	ErrInvalidTag            = errors.New("invalid language tag")
	ErrMacroAlreadyExists    = errors.New("macro already exists")
	ErrUnknownMacro          = errors.New("unknown macro")
	ErrUnknownRef            = errors.New("unknown definition")
	ErrCycleDetected         = errors.New("cycle detected")
	ErrInvalidNode           = errors.New("invalid node definition")
	ErrMissingParam          = errors.New("missing required param")
	ErrUnknownParam          = errors.New("unknown param")
)
