package export

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed generation.
type ErrorKind int

const (
	KindInvalidInput ErrorKind = iota + 1
	KindTemplate
	KindRender
	KindSave
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindTemplate:
		return "Template"
	case KindRender:
		return "Render"
	case KindSave:
		return "Save"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Pipeline stages, recorded on RenderError.
const (
	StageInput    = "input"
	StageTemplate = "template"
	StageTitle    = "title"
	StagePerson   = "person"
	StageSave     = "save"
)

// RenderError is returned by the renderer and the generator. Message is
// ready to show to a user.
type RenderError struct {
	Kind    ErrorKind
	Stage   string
	Message string
	Err     error
}

func (e *RenderError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s failed", e.Stage)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, stage, message string, err error) *RenderError {
	return &RenderError{Kind: kind, Stage: stage, Message: message, Err: err}
}

// IsKind reports whether err is a RenderError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var re *RenderError
	return errors.As(err, &re) && re.Kind == kind
}
