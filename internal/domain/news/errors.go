package news

import "fmt"

// ErrKind classifies a section fetch failure.
type ErrKind int

const (
	ErrNetwork ErrKind = iota
	ErrTimeout
	ErrParse
)

// String returns the short status label shown next to a failed section.
func (k ErrKind) String() string {
	switch k {
	case ErrTimeout:
		return "timeout"
	case ErrParse:
		return "parse error"
	default:
		return "network error"
	}
}

// FetchError reports a failed section fetch. It is scoped to a single
// section and never aborts the surrounding refresh.
type FetchError struct {
	Kind    ErrKind
	Section string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Section, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Section, e.Kind)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *FetchError) Unwrap() error { return e.Err }

// ConfigError reports a configuration problem found while building the
// source registry. It is collected and reported once at startup; the
// remaining valid configuration still loads.
type ConfigError struct {
	Name   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Name, e.Reason)
}
