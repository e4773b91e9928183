package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dcgit/gitlet/pkg/object"
)

// CheckoutFile implements `checkout -- <path>`: overwrite WD[path] with the
// blob content HEAD tracks for it. Staging is left untouched.
func (r *Repo) CheckoutFile(path string) error {
	_, headTree, err := r.headTree()
	if err != nil {
		return err
	}
	blobID, ok := headTree[path]
	if !ok {
		return NewUserError("File does not exist in that commit.")
	}
	return r.writeBlobToWD(path, blobID)
}

// CheckoutCommitFile implements `checkout <commit_id> -- <path>`: overwrite
// WD[path] with the blob content the resolved commit tracks for it.
func (r *Repo) CheckoutCommitFile(idOrPrefix, path string) error {
	c, _, err := r.GetCommit(idOrPrefix)
	if err != nil {
		return err
	}
	blobID, ok := c.Tree[path]
	if !ok {
		return NewUserError("File does not exist in that commit.")
	}
	return r.writeBlobToWD(path, blobID)
}

func (r *Repo) writeBlobToWD(path string, blobID object.Hash) error {
	blob, err := r.Store.ReadBlob(blobID)
	if err != nil {
		return fmt.Errorf("checkout: read blob %s: %w", blobID, err)
	}
	abs := filepath.Join(r.RootDir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("checkout: mkdir: %w", err)
	}
	if err := os.WriteFile(abs, blob.Data, 0o644); err != nil {
		return fmt.Errorf("checkout: write %q: %w", path, err)
	}
	return nil
}

// CheckoutBranch implements `checkout <branch>`.
func (r *Repo) CheckoutBranch(name string) error {
	if !r.branchExists(name) {
		return NewUserError("No such branch exists.")
	}
	h, err := r.readHead()
	if err != nil {
		return err
	}
	if name == h.Branch {
		return NewUserError("No need to checkout the current branch.")
	}

	targetCommit, err := r.readBranch(name)
	if err != nil {
		return fmt.Errorf("checkout: read branch %s: %w", name, err)
	}
	target, err := r.Store.ReadCommit(targetCommit)
	if err != nil {
		return fmt.Errorf("checkout: read commit %s: %w", targetCommit, err)
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

	if err := r.writeHead(name, targetCommit); err != nil {
		return fmt.Errorf("checkout: update head: %w", err)
	}
	return r.WriteStaging(newStaging())
}

// replaceWorkingTree writes every file in targetTree and deletes every WD
// file tracked by fromTree but absent from targetTree.
func (r *Repo) replaceWorkingTree(fromTree, targetTree map[string]object.Hash) error {
	for path := range fromTree {
		if _, keep := targetTree[path]; keep {
			continue
		}
		abs := filepath.Join(r.RootDir, filepath.FromSlash(path))
		if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("checkout: remove %q: %w", path, err)
		}
	}
	for path, blobID := range targetTree {
		if err := r.writeBlobToWD(path, blobID); err != nil {
			return err
		}
	}
	return nil
}
