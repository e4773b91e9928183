package repo

import (
	"fmt"
	"time"

	"github.com/dcgit/gitlet/pkg/object"
)

// Commit implements the `commit` operation: fold the staging area into a
// new tree derived from HEAD's, persist it, advance the current branch and
// HEAD, and clear staging. secondParent is set only when Commit is called
// from the merge engine to record a merge commit's second parent.
func (r *Repo) Commit(message string, secondParent object.Hash) (object.Hash, error) {
	stg, err := r.ReadStaging()
	if err != nil {
		return "", err
	}
	if stg.isEmpty() {
		return "", NewUserError("No changes added to the commit.")
	}
	if message == "" {
		return "", NewUserError("Please enter a commit message.")
	}

	h, err := r.readHead()
	if err != nil {
		return "", err
	}
	parentCommit, err := r.Store.ReadCommit(h.Commit)
	if err != nil {
		return "", fmt.Errorf("commit: read HEAD commit %s: %w", h.Commit, err)
	}

	tree := make(map[string]object.Hash, len(parentCommit.Tree))
	for name, hash := range parentCommit.Tree {
		tree[name] = hash
	}
	for name := range stg.Removals {
		delete(tree, name)
	}
	for name, hash := range stg.Additions {
		tree[name] = hash
	}

	now := time.Now()
	c := &object.CommitObj{
		Message:       message,
		TimestampUnix: now.Unix(),
		TimestampZone: now.Format("-0700"),
		Parent1:       h.Commit,
		Parent2:       secondParent,
		Tree:          tree,
	}

	commitID, err := r.Store.WriteCommit(c)
	if err != nil {
		return "", fmt.Errorf("commit: write commit: %w", err)
	}

	if err := r.writeBranch(h.Branch, commitID); err != nil {
		return "", fmt.Errorf("commit: update branch %s: %w", h.Branch, err)
	}
	if err := r.writeHead(h.Branch, commitID); err != nil {
		return "", fmt.Errorf("commit: update head: %w", err)
	}
	if err := r.WriteStaging(newStaging()); err != nil {
		return "", fmt.Errorf("commit: clear staging: %w", err)
	}

	return commitID, nil
}
