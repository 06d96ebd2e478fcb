package layerdoc

import (
	"fmt"

	"cuelang.org/go/cue/token"
)

// Error codes for document loading and building.
const (
	CodeNotFound      = "DOC_NOT_FOUND"       // document path missing or unreadable
	CodeUnknownFormat = "DOC_UNKNOWN_FORMAT"  // extension is neither YAML nor CUE
	CodeParse         = "DOC_PARSE"           // YAML/CUE syntax or schema error
	CodeEmptyName     = "DOC_EMPTY_NAME"      // layer with no name
	CodeDuplicate     = "DOC_DUPLICATE_LAYER" // two layers share a name
	CodeUnknownParent = "DOC_UNKNOWN_PARENT"  // parent names no declared layer
	CodeCycle         = "DOC_CYCLE"           // delegation loop between layers
)

// DocError describes a failure while loading or building a document.
type DocError struct {
	Code    string
	Message string

	// Pos is the CUE source position when the document came from CUE;
	// invalid for YAML documents.
	Pos token.Pos

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *DocError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *DocError) Unwrap() error {
	return e.Err
}
