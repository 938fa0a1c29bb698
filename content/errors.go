package content

import (
	"errors"
	"fmt"
)

var ErrImageRequired = errors.New("an image is required")

// Stage is the step of a write that failed.
type Stage string

const (
	StageValidate Stage = "validate"
	StageUpload   Stage = "upload"
	StageStore    Stage = "store"
)

// OpError is returned by every failed admin write.
type OpError struct {
	Kind  Kind
	Op    string
	ID    string
	Stage Stage
	Err   error
}

func (e *OpError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s %s: %s: %v", e.Op, e.Kind, e.ID, e.Stage, e.Err)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Kind, e.Stage, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// StageOf reports the failed stage of err, or "" when err is not an OpError.
func StageOf(err error) Stage {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Stage
	}
	return ""
}
