// Package faults classifies every failure that can cross a workflow
// boundary. Raw errors from collaborators are wrapped into one of the
// kinds below before they reach a caller.
package faults

import (
	"github.com/pkg/errors"
)

type Kind string

const (
	// Validation covers missing or malformed submission fields; recovered
	// by re-prompting the user.
	Validation Kind = "validation"
	// Authentication covers absent identities and rejected credentials.
	Authentication Kind = "authentication"
	// Permission covers store-side denials for the current identity,
	// typically an operator misconfiguration rather than a user mistake.
	Permission Kind = "permission"
	// Transient covers connectivity and timeout failures; user-retriable.
	Transient Kind = "transient"
	// AIFormatting covers outright generative-API call failures, as
	// opposed to empty or partial results.
	AIFormatting Kind = "ai_formatting"
	Unknown      Kind = "unknown"
)

type Fault struct {
	Kind Kind
	Code string
	Err  error
}

func (f *Fault) Error() string {
	if f.Err == nil {
		return string(f.Kind) + ": " + f.Code
	}
	return f.Err.Error()
}

func (f *Fault) Unwrap() error {
	return f.Err
}

func New(kind Kind, code string) *Fault {
	return &Fault{Kind: kind, Code: code, Err: errors.New(code)}
}

func Wrap(kind Kind, err error, message string) *Fault {
	return &Fault{Kind: kind, Err: errors.Wrap(err, message)}
}

// KindOf reports the classification of err, or Unknown for anything
// that was never classified.
func KindOf(err error) Kind {
	var fault *Fault
	if errors.As(err, &fault) {
		return fault.Kind
	}
	return Unknown
}

// CodeOf returns the stable code attached at classification time, if any.
func CodeOf(err error) string {
	var fault *Fault
	if errors.As(err, &fault) {
		return fault.Code
	}
	return ""
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
