package container

import (
	"errors"
	"strings"
)

// ErrNotRegistered wraps lookups of a service the container was never given
var ErrNotRegistered = errors.New("not registered")

// MissingError is returned by Validate and names every unwired service
type MissingError struct {
	Deps []string
}

func (e *MissingError) Error() string {
	return "container missing " + strings.Join(e.Deps, ", ")
}
