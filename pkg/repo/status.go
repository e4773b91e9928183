package repo

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dcgit/gitlet/pkg/object"
)

// WorkingTreeStatus is the pure result of comparing the working directory,
// HEAD's tree and the staging area. Each list is lexicographically sorted.
type WorkingTreeStatus struct {
	Staged        []string
	Removed       []string
	Modifications []string
	Untracked     []string
}

// workingFiles lists every ordinary file under the repository root, keyed
// by its repo-relative slash-separated path. The .gitlet directory itself
// is never included.
func (r *Repo) workingFiles() (map[string]bool, error) {
	files := make(map[string]bool)
	err := filepath.WalkDir(r.RootDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(r.RootDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if rel == ".gitlet" {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			files[rel] = true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("status: walk working directory: %w", err)
	}
	return files, nil
}

// Status computes the four status lists per the reconciler's exact rules.
func (r *Repo) Status() (*WorkingTreeStatus, error) {
	stg, err := r.ReadStaging()
	if err != nil {
		return nil, err
	}
	_, headTree, err := r.headTree()
	if err != nil {
		return nil, err
	}
	wd, err := r.workingFiles()
	if err != nil {
		return nil, err
	}

	st := &WorkingTreeStatus{}

	for name := range stg.Additions {
		st.Staged = append(st.Staged, name)
	}
	for name := range stg.Removals {
		st.Removed = append(st.Removed, name)
	}

	modSet := make(map[string]string)
	for p := range wd {
		content, err := os.ReadFile(filepath.Join(r.RootDir, filepath.FromSlash(p)))
		if err != nil {
			continue
		}
		wdHash := object.HashObject(object.TypeBlob, content)

		if headHash, tracked := headTree[p]; tracked {
			if _, isAdd := stg.Additions[p]; !isAdd && wdHash != headHash {
				modSet[p] = "modified"
			}
		}
		if addHash, isAdd := stg.Additions[p]; isAdd && wdHash != addHash {
			modSet[p] = "modified"
		}
	}
	for p := range stg.Additions {
		if !wd[p] {
			modSet[p] = "deleted"
		}
	}
	for p := range headTree {
		if _, removed := stg.Removals[p]; !removed && !wd[p] {
			modSet[p] = "deleted"
		}
	}
	for p, kind := range modSet {
		st.Modifications = append(st.Modifications, fmt.Sprintf("%s (%s)", p, kind))
	}

	for p := range wd {
		_, tracked := headTree[p]
		_, staged := stg.Additions[p]
		_, removed := stg.Removals[p]
		if (!tracked && !staged) || removed {
			st.Untracked = append(st.Untracked, p)
		}
	}

	sort.Strings(st.Staged)
	sort.Strings(st.Removed)
	sort.Strings(st.Modifications)
	sort.Strings(st.Untracked)
	return st, nil
}

// checkUntrackedInTheWay fails if any working-directory file untracked by
// HEAD would be silently overwritten by targetTree. Shared by checkout,
// reset and merge.
func (r *Repo) checkUntrackedInTheWay(headTree, targetTree map[string]object.Hash) error {
	wd, err := r.workingFiles()
	if err != nil {
		return err
	}
	for p := range wd {
		if _, inHead := headTree[p]; inHead {
			continue
		}
		if _, inTarget := targetTree[p]; inTarget {
			return NewUserError("There is an untracked file in the way; delete it, or add and commit it first.")
		}
	}
	return nil
}

// FormatStatus renders the exact `status` command output.
func FormatStatus(current string, branches []string, st *WorkingTreeStatus) string {
	var b strings.Builder
	fmt.Fprintln(&b, "=== Branches ===")
	for _, name := range branches {
		if name == current {
			fmt.Fprintf(&b, "*%s\n", name)
		} else {
			fmt.Fprintln(&b, name)
		}
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "=== Staged Files ===")
	for _, p := range st.Staged {
		fmt.Fprintln(&b, p)
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "=== Removed Files ===")
	for _, p := range st.Removed {
		fmt.Fprintln(&b, p)
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "=== Modifications Not Staged For Commit ===")
	for _, p := range st.Modifications {
		fmt.Fprintln(&b, p)
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "=== Untracked Files ===")
	for _, p := range st.Untracked {
		fmt.Fprintln(&b, p)
	}
	fmt.Fprintln(&b)

	return b.String()
}
