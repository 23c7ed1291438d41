package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is wrapped by use cases that reject caller input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidPayload is wrapped when a save payload cannot be stored.
	ErrInvalidPayload = errors.New("invalid save payload")
	// ErrSessionClosed is returned by saves on a session that was closed,
	// typically because its stage tree was replaced.
	ErrSessionClosed = errors.New("editing session closed")
)

type SaveErrorCode string

const (
	SaveErrInvalidPayload SaveErrorCode = "INVALID_PAYLOAD"
	SaveErrStorage        SaveErrorCode = "STORAGE_FAILURE"
)

// SaveError reports a failed save. The editing session keeps its snapshot,
// so the same save can be retried.
type SaveError struct {
	Code      SaveErrorCode
	ProjectID string
	Message   string
	Err       error
}

func (e *SaveError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

func NewSaveError(projectID string, err error) *SaveError {
	code := SaveErrStorage
	if errors.Is(err, ErrInvalidPayload) {
		code = SaveErrInvalidPayload
	}
	return &SaveError{
		Code:      code,
		ProjectID: projectID,
		Message:   fmt.Sprintf("could not save project %s: %v", projectID, err),
		Err:       err,
	}
}
