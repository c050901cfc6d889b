package framepack

import (
	"errors"
	"fmt"
)

// Errors returned by the decoder, wrapped in a [*DecodeError].
var (
	ErrBadMagic          = errors.New("framepack: invalid magic (expected HNFPv1\\0)")
	ErrTruncated         = errors.New("framepack: truncated payload")
	ErrNotPowerOfTwo     = errors.New("framepack: table size must be a power of two")
	ErrInvalidDimensions = errors.New("framepack: invalid dimensions")
	ErrHintMismatch      = errors.New("framepack: header does not match declared dimensions")
)

// Stage names the decode step that failed.
type Stage string

const (
	StageMagic      Stage = "magic"
	StageHeader     Stage = "header"
	StageValidation Stage = "validation"
	StageFrames     Stage = "frames"
)

// DecodeError reports which decode stage rejected the payload.
type DecodeError struct {
	Stage Stage
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v (%s stage)", e.Err, e.Stage)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func stageErr(stage Stage, err error, format string, args ...any) error {
	if format == "" {
		return &DecodeError{Stage: stage, Err: err}
	}
	return &DecodeError{Stage: stage, Err: fmt.Errorf("%w: "+format, append([]any{err}, args...)...)}
}
