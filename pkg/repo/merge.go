package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dcgit/gitlet/pkg/object"
)

// MergeResult reports what a merge did, for the CLI to print.
type MergeResult struct {
	FastForwarded bool
	HadConflicts  bool
	MergeCommit   object.Hash
}

// Merge implements `merge <branch>`: fold other's changes into the current
// branch via a three-way comparison against their latest common ancestor.
func (r *Repo) Merge(other string) (*MergeResult, error) {
	stg, err := r.ReadStaging()
	if err != nil {
		return nil, err
	}
	if !stg.isEmpty() {
		return nil, NewUserError("You have uncommitted changes.")
	}
	if !r.branchExists(other) {
		return nil, NewUserError("A branch with that name does not exist.")
	}
	h, err := r.readHead()
	if err != nil {
		return nil, err
	}
	if other == h.Branch {
		return nil, NewUserError("Cannot merge a branch with itself.")
	}

	otherHead, err := r.readBranch(other)
	if err != nil {
		return nil, fmt.Errorf("merge: read branch %s: %w", other, err)
	}
	currentCommit, err := r.Store.ReadCommit(h.Commit)
	if err != nil {
		return nil, fmt.Errorf("merge: read HEAD commit: %w", err)
	}
	otherCommit, err := r.Store.ReadCommit(otherHead)
	if err != nil {
		return nil, fmt.Errorf("merge: read commit %s: %w", otherHead, err)
	}

	if err := r.checkUntrackedInTheWay(currentCommit.Tree, otherCommit.Tree); err != nil {
		return nil, err
	}

	split, err := r.SplitPoint(h.Commit, otherHead)
	if err != nil {
		return nil, err
	}

	if split == otherHead {
		return nil, NewUserError("Given branch is an ancestor of the current branch.")
	}
	if split == h.Commit {
		if err := r.CheckoutBranch(other); err != nil {
			return nil, err
		}
		if err := r.writeBranch(h.Branch, otherHead); err != nil {
			return nil, fmt.Errorf("merge: fast-forward branch %s: %w", h.Branch, err)
		}
		if err := r.writeHead(h.Branch, otherHead); err != nil {
			return nil, fmt.Errorf("merge: fast-forward head: %w", err)
		}
		return &MergeResult{FastForwarded: true}, nil
	}

	var splitTree map[string]object.Hash
	if split != "" {
		splitCommit, err := r.Store.ReadCommit(split)
		if err != nil {
			return nil, fmt.Errorf("merge: read split commit %s: %w", split, err)
		}
		splitTree = splitCommit.Tree
	}

	allPaths := make(map[string]bool)
	for p := range splitTree {
		allPaths[p] = true
	}
	for p := range currentCommit.Tree {
		allPaths[p] = true
	}
	for p := range otherCommit.Tree {
		allPaths[p] = true
	}

	newStg := newStaging()
	hadConflicts := false

	for p := range allPaths {
		s, sok := splitTree[p]
		c, cok := currentCommit.Tree[p]
		o, ook := otherCommit.Tree[p]

		switch {
		case sok && cok && c == s && ook && o != s:
			// case 1: modified in other only
			if err := r.writeBlobToWD(p, o); err != nil {
				return nil, err
			}
			newStg.Additions[p] = o

		case sok && cok && c != s && ook && o == s:
			// case 2: modified in current only — leave

		case sok && cok && ook && c != s && o != s && c == o:
			// case 3a: same change on both sides — leave

		case sok && cok && ook && c == s && o == s:
			// unchanged on both sides — leave

		case !sok && cok && ook && c == o:
			// added identically on both sides — leave

		case sok && !cok && !ook:
			// case 3b: removed on both sides — leave

		case !sok && cok && !ook:
			// case 4: added only in current — leave

		case !sok && !cok && ook:
			// case 5: added only in other
			if err := r.writeBlobToWD(p, o); err != nil {
				return nil, err
			}
			newStg.Additions[p] = o

		case sok && cok && c == s && !ook:
			// case 6: removed in other, unchanged in current
			abs := filepath.Join(r.RootDir, filepath.FromSlash(p))
			if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
				return nil, fmt.Errorf("merge: remove %q: %w", p, err)
			}
			newStg.Removals[p] = true

		case sok && !cok && ook && o == s:
			// case 7: removed in current, unchanged in other — leave

		default:
			// case 8: conflict
			hadConflicts = true
			var cContent, oContent []byte
			if cok {
				b, err := r.Store.ReadBlob(c)
				if err != nil {
					return nil, fmt.Errorf("merge: read blob %s: %w", c, err)
				}
				cContent = b.Data
			}
			if ook {
				b, err := r.Store.ReadBlob(o)
				if err != nil {
					return nil, fmt.Errorf("merge: read blob %s: %w", o, err)
				}
				oContent = b.Data
			}
			content := conflictContent(cContent, oContent)

			abs := filepath.Join(r.RootDir, filepath.FromSlash(p))
			if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
				return nil, fmt.Errorf("merge: mkdir: %w", err)
			}
			if err := os.WriteFile(abs, content, 0o644); err != nil {
				return nil, fmt.Errorf("merge: write %q: %w", p, err)
			}
			blobID, err := r.Store.WriteBlob(&object.Blob{Data: content})
			if err != nil {
				return nil, fmt.Errorf("merge: write conflict blob %q: %w", p, err)
			}
			newStg.Additions[p] = blobID
		}
	}

	if err := r.WriteStaging(newStg); err != nil {
		return nil, err
	}

	commitID, err := r.Commit(fmt.Sprintf("Merged %s into %s.", other, h.Branch), otherHead)
	if err != nil {
		return nil, err
	}

	return &MergeResult{HadConflicts: hadConflicts, MergeCommit: commitID}, nil
}

// conflictContent renders the literal WD content for a case-8 conflict.
func conflictContent(ours, theirs []byte) []byte {
	out := make([]byte, 0, len(ours)+len(theirs)+32)
	out = append(out, "<<<<<<< HEAD\n"...)
	out = append(out, ours...)
	out = append(out, "=======\n"...)
	out = append(out, theirs...)
	out = append(out, ">>>>>>>\n"...)
	return out
}
