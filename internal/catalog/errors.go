package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog retrieval.
var (
	ErrNotFound      = errors.New("workflow not found")
	ErrInvalidFormat = errors.New("invalid format; use raw|api")
	ErrNotAPIGraph   = errors.New("workflow is a UI workflow, not an API graph")
)

// APIExportHint is the client-facing guidance returned with ErrNotAPIGraph.
const APIExportHint = "Workflow is a UI workflow, not an API graph. Export API and save as *.api.json."

// ReadError reports an unexpected failure reading or parsing a workflow file.
type ReadError struct {
	Name string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
