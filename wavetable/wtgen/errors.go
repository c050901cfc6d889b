package wtgen

import (
	"errors"
	"fmt"
)

// Sentinels carried inside an [*Error], which supplies the package prefix.
var (
	ErrSchema         = errors.New("unsupported schema")
	ErrNoNodes        = errors.New("program has no nodes")
	ErrUnsupportedOp  = errors.New("unsupported op")
	ErrCodec          = errors.New("unsupported codec")
	ErrMissingPayload = errors.New("missing payload")
)

// Stage names the build step that failed.
type Stage string

const (
	StageParse       Stage = "parse"
	StageSchema      Stage = "schema"
	StageOp          Stage = "op"
	StageCodec       Stage = "codec"
	StageBase64      Stage = "base64"
	StageFramepack   Stage = "framepack"
	StageReconstruct Stage = "reconstruct"
)

// Error reports the stage at which a document was rejected. Framepack
// failures keep their [*framepack.DecodeError] in the chain.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("wtgen: %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func fail(stage Stage, err error) error {
	return &Error{Stage: stage, Err: err}
}
