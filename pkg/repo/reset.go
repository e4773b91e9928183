package repo

import "fmt"

// Reset implements `reset <commit_id>`: like checking out a branch, but
// targeted at an arbitrary commit and it also advances the current branch
// ref to that commit.
func (r *Repo) Reset(idOrPrefix string) error {
	targetID, err := r.ResolveCommitID(idOrPrefix)
	if err != nil {
		return err
	}
	target, err := r.Store.ReadCommit(targetID)
	if err != nil {
		return fmt.Errorf("reset: read commit %s: %w", targetID, err)
	}

	h, err := r.readHead()
	if err != nil {
		return err
	}
	_, headTree, err := r.headTree()
	if err != nil {
		return err
	}

	if err := r.checkUntrackedInTheWay(headTree, target.Tree); err != nil {
		return err
	}
	if err := r.replaceWorkingTree(headTree, target.Tree); err != nil {
		return err
	}

	if err := r.writeBranch(h.Branch, targetID); err != nil {
		return fmt.Errorf("reset: update branch %s: %w", h.Branch, err)
	}
	if err := r.writeHead(h.Branch, targetID); err != nil {
		return fmt.Errorf("reset: update head: %w", err)
	}
	return r.WriteStaging(newStaging())
}
