package cli

import "fmt"

// ConfigurationError indicates missing shop or login context.
// It is fatal: the command aborts before any network call.
type ConfigurationError struct {
	Message string // what is missing
	Hint    string // suggestion for how to fix it
}

func (e *ConfigurationError) Error() string {
	if e.Hint != "" {
		return e.Message + "\n" + e.Hint
	}
	return e.Message
}

// UnknownError is the single externally observable failure of the storefront
// creation pipeline. Phase-specific causes are deliberately not distinguished
// to the end user.
type UnknownError struct{}

func (e *UnknownError) Error() string {
	return "an unknown error occurred, try again or contact support"
}

// PromptError indicates an interactive prompt could not be completed
// (for example stdin was closed mid-read).
type PromptError struct {
	Prompt string // the prompt that failed
	Err    error  // the underlying cause
}

func (e *PromptError) Error() string {
	return fmt.Sprintf("prompt %q failed: %v", e.Prompt, e.Err)
}

func (e *PromptError) Unwrap() error {
	return e.Err
}

// FormatError returns a user-friendly error message.
// It prefixes the error with "error: " for consistent CLI output.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return "error: " + err.Error()
}
