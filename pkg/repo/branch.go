package repo

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dcgit/gitlet/pkg/object"
)

func (r *Repo) branchPath(name string) string {
	return filepath.Join(r.GitletDir, "branches", name)
}

// writeBranch atomically points a branch at a commit, creating it if it
// doesn't already exist.
func (r *Repo) writeBranch(name string, target object.Hash) error {
	return atomicWriteFile(r.branchPath(name), []byte(string(target)+"\n"))
}

// readBranch returns the commit a branch currently points at.
func (r *Repo) readBranch(name string) (object.Hash, error) {
	data, err := os.ReadFile(r.branchPath(name))
	if err != nil {
		return "", err
	}
	return object.Hash(strings.TrimSpace(string(data))), nil
}

func (r *Repo) branchExists(name string) bool {
	_, err := os.Stat(r.branchPath(name))
	return err == nil
}

// ListBranches returns every branch name in lexicographic order.
func (r *Repo) ListBranches() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(r.GitletDir, "branches"))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// CurrentBranch returns the name of the currently checked-out branch.
func (r *Repo) CurrentBranch() (string, error) {
	h, err := r.readHead()
	if err != nil {
		return "", err
	}
	return h.Branch, nil
}

// CreateBranch adds a new branch pointing at the given commit id, per
// `branch <name>`. It does not move HEAD.
func (r *Repo) CreateBranch(name string, target object.Hash) error {
	if r.branchExists(name) {
		return NewUserError("A branch with that name already exists.")
	}
	return r.writeBranch(name, target)
}

// DeleteBranch removes a branch's pointer, per `rm-branch <name>`. It never
// deletes any commit or blob the branch referenced.
func (r *Repo) DeleteBranch(name string) error {
	current, err := r.CurrentBranch()
	if err != nil {
		return err
	}
	if name == current {
		return NewUserError("Cannot remove the current branch.")
	}
	if !r.branchExists(name) {
		return NewUserError("A branch with that name does not exist.")
	}
	return os.Remove(r.branchPath(name))
}
