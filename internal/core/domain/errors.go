package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest marks a mix request rejected before sequencing starts.
	ErrInvalidRequest = errors.New("domain: invalid mix request")
	// ErrUnknownTemplate marks a template name missing from the catalog.
	ErrUnknownTemplate = errors.New("domain: unknown template")
	// ErrInvalidPosition marks a curve query outside [0,1].
	ErrInvalidPosition = errors.New("domain: curve position out of range")
	// ErrInvalidTemplate marks a template whose curve breaks the control point rules.
	ErrInvalidTemplate = errors.New("domain: invalid template")
	// ErrDuplicateTrack is returned when a playlist already holds a track.
	ErrDuplicateTrack = errors.New("domain: duplicate track")
)

// InvalidRequestError explains why a mix request was rejected.
type InvalidRequestError struct {
	Reason string
}

func (e InvalidRequestError) Error() string {
	if e.Reason == "" {
		return ErrInvalidRequest.Error()
	}
	return fmt.Sprintf("invalid mix request: %s", e.Reason)
}

func (e InvalidRequestError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// UnknownTemplateError carries the name that failed to resolve.
type UnknownTemplateError struct {
	Name string
}

func (e UnknownTemplateError) Error() string {
	if e.Name == "" {
		return ErrUnknownTemplate.Error()
	}
	return fmt.Sprintf("unknown template %q", e.Name)
}

func (e UnknownTemplateError) Is(target error) bool {
	return target == ErrUnknownTemplate
}

func invalidRequest(format string, args ...any) error {
	return InvalidRequestError{Reason: fmt.Sprintf(format, args...)}
}
