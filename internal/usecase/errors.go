package usecase

import (
	"fmt"

	"github.com/pkg/errors"
)

// Precondition errors.
var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrUserNotFound   = errors.New("user not found")
	ErrNotFound       = errors.New("not found")
	ErrNoSession      = errors.New("no open editing session")
	ErrInFlight       = errors.New("operation already in progress")
	ErrConfirmDiscard = errors.New("switching back to form mode discards the edited markdown")
	ErrEmptyField     = errors.New("field is empty")
	ErrUnknownTab     = errors.New("unknown tab")
)

// External-call errors. Callers only ever see these generic messages; the
// cause is logged.
var (
	ErrSaveFailed        = errors.New("failed to save resume")
	ErrLoadFailed        = errors.New("failed to load resume")
	ErrImproveFailed     = errors.New("error improving the content using AI")
	ErrCoverLetterFailed = errors.New("failed to generate cover letter")
)

// Export errors.
var (
	ErrRenderTargetMissing = errors.New("render target not found")
	ErrEmptySurface        = errors.New("rendered surface has zero dimensions")
	ErrLayoutNotSettled    = errors.New("document layout did not settle")
)

// ExportError aborts a whole export; no partial file is produced.
type ExportError struct {
	Stage Stage
	Err   error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export failed at %s: %v", e.Stage, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
