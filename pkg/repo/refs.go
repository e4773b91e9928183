package repo

import (
	"strings"

	"github.com/dcgit/gitlet/pkg/object"
)

// ResolveCommitID resolves a full or abbreviated commit id to the full
// stored id. A prefix that matches more than one stored commit is treated
// as not found rather than picking one arbitrarily — the safer of the two
// behaviors the original assignment left open (see DESIGN.md).
func (r *Repo) ResolveCommitID(idOrPrefix string) (object.Hash, error) {
	if idOrPrefix == "" {
		return "", NewUserError("No commit with that id exists.")
	}
	if r.Store.Has(object.Hash(idOrPrefix)) {
		if _, _, err := r.Store.Read(object.Hash(idOrPrefix)); err == nil {
			return object.Hash(idOrPrefix), nil
		}
	}

	all, err := r.Store.ListCommits()
	if err != nil {
		return "", err
	}

	var match object.Hash
	for _, id := range all {
		if strings.HasPrefix(string(id), idOrPrefix) {
			if match != "" {
				// Ambiguous prefix: at least two stored commits share it.
				return "", NewUserError("No commit with that id exists.")
			}
			match = id
		}
	}
	if match == "" {
		return "", NewUserError("No commit with that id exists.")
	}
	return match, nil
}

// GetCommit resolves and loads a commit by full or abbreviated id.
func (r *Repo) GetCommit(idOrPrefix string) (*object.CommitObj, object.Hash, error) {
	id, err := r.ResolveCommitID(idOrPrefix)
	if err != nil {
		return nil, "", err
	}
	c, err := r.Store.ReadCommit(id)
	if err != nil {
		return nil, "", err
	}
	return c, id, nil
}
