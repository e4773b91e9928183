// Package repo implements the gitlet version-control engine: the object
// store wiring, staging area, commit engine, working-tree reconciler,
// checkout/reset, history walker, and merge engine.
package repo

import (
	"github.com/dcgit/gitlet/pkg/object"
)

// Repo represents an opened gitlet repository.
type Repo struct {
	RootDir   string        // working directory root
	GitletDir string        // .gitlet/ directory
	Store     *object.Store // content-addressed object store
}

// UserError is a recoverable, spec-prescribed failure: the CLI façade
// prints its message verbatim to stdout and exits 0. Any other error
// returned from this package signals an internal invariant violation and
// should abort the process with a nonzero exit.
type UserError struct {
	msg string
}

// NewUserError constructs a UserError carrying exactly the prescribed
// message text.
func NewUserError(msg string) *UserError { return &UserError{msg: msg} }

func (e *UserError) Error() string { return e.msg }
