package scenario

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindNotFound ErrorKind = "not_found"
	KindInvalid  ErrorKind = "invalid"
)

// LoadError wraps a scenario loading failure with the file and a kind.
type LoadError struct {
	Path string
	Kind ErrorKind
	Err  error
}

func (e *LoadError) Error() string {
	base := fmt.Sprintf("scenario.load: %s", e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a *LoadError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Kind == kind
	}
	return false
}

func invalidField(path, field, msg string) *LoadError {
	return &LoadError{Path: path, Kind: KindInvalid, Err: fmt.Errorf("%s: %s", field, msg)}
}
