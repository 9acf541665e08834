package caption

import "fmt"

// ScriptFormatError indicates the script text contains no parseable
// speaker-prefixed utterance. Retrying the same input cannot succeed.
type ScriptFormatError struct {
	Reason string
}

func (e *ScriptFormatError) Error() string {
	return fmt.Sprintf("script format: %s", e.Reason)
}

// ConfigError indicates contradictory or out-of-range configuration.
// It is reported before any estimation work begins.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
}
