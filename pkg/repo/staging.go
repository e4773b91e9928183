package repo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dcgit/gitlet/pkg/object"
)

// StagingArea is the pending mutation to the next commit: a set of
// additions (filename -> blob id) and a set of removals. The two are
// always disjoint.
type StagingArea struct {
	Additions map[string]object.Hash `json:"additions"`
	Removals  map[string]bool        `json:"removals"`
}

func newStaging() *StagingArea {
	return &StagingArea{
		Additions: make(map[string]object.Hash),
		Removals:  make(map[string]bool),
	}
}

func (s *StagingArea) isEmpty() bool {
	return len(s.Additions) == 0 && len(s.Removals) == 0
}

func (r *Repo) stagingPath() string {
	return filepath.Join(r.GitletDir, "stagingArea")
}

// ReadStaging loads the staging area from .gitlet/stagingArea. If the file
// does not exist, an empty StagingArea is returned (no error).
func (r *Repo) ReadStaging() (*StagingArea, error) {
	data, err := os.ReadFile(r.stagingPath())
	if err != nil {
		if os.IsNotExist(err) {
			return newStaging(), nil
		}
		return nil, fmt.Errorf("read staging: %w", err)
	}
	s := newStaging()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("read staging: unmarshal: %w", err)
	}
	if s.Additions == nil {
		s.Additions = make(map[string]object.Hash)
	}
	if s.Removals == nil {
		s.Removals = make(map[string]bool)
	}
	return s, nil
}

// WriteStaging atomically persists the staging area.
func (r *Repo) WriteStaging(s *StagingArea) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("write staging: marshal: %w", err)
	}
	return atomicWriteFile(r.stagingPath(), data)
}

// repoRelPath resolves p (absolute, or relative to the current working
// directory) to a path relative to the repository root.
func (r *Repo) repoRelPath(p string) (string, error) {
	if filepath.IsAbs(p) {
		rel, err := filepath.Rel(r.RootDir, p)
		if err != nil {
			return "", fmt.Errorf("cannot make %q relative to %q: %w", p, r.RootDir, err)
		}
		return filepath.ToSlash(rel), nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return filepath.ToSlash(filepath.Clean(p)), nil
	}
	abs := filepath.Join(cwd, p)
	rel, err := filepath.Rel(r.RootDir, abs)
	if err != nil || (len(rel) >= 2 && rel[:2] == "..") {
		return filepath.ToSlash(filepath.Clean(p)), nil
	}
	return filepath.ToSlash(rel), nil
}

// Add implements the staging-area `add` operation: read WD content at path,
// compute its blob id, and either stage it or, if it already matches the
// content HEAD tracks, ensure it is untouched by staging.
func (r *Repo) Add(path string) error {
	rel, err := r.repoRelPath(path)
	if err != nil {
		return err
	}

	absPath := filepath.Join(r.RootDir, rel)
	content, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return NewUserError("File does not exist.")
		}
		return fmt.Errorf("add %q: %w", rel, err)
	}

	_, headTree, err := r.headTree()
	if err != nil {
		return err
	}

	blobID, err := r.Store.WriteBlob(&object.Blob{Data: content})
	if err != nil {
		return fmt.Errorf("add %q: write blob: %w", rel, err)
	}

	stg, err := r.ReadStaging()
	if err != nil {
		return err
	}

	if tracked, ok := headTree[rel]; ok && tracked == blobID {
		delete(stg.Additions, rel)
		delete(stg.Removals, rel)
	} else {
		stg.Additions[rel] = blobID
		delete(stg.Removals, rel)
	}

	return r.WriteStaging(stg)
}

// Remove implements the staging-area `rm` operation: unstage a pending
// addition, or if HEAD tracks the file, stage it for removal and delete it
// from the working directory.
func (r *Repo) Remove(path string) error {
	rel, err := r.repoRelPath(path)
	if err != nil {
		return err
	}

	_, headTree, err := r.headTree()
	if err != nil {
		return err
	}

	stg, err := r.ReadStaging()
	if err != nil {
		return err
	}

	_, staged := stg.Additions[rel]
	_, tracked := headTree[rel]

	if !staged && !tracked {
		return NewUserError("No reason to remove the file.")
	}

	if staged {
		delete(stg.Additions, rel)
	}
	if tracked {
		stg.Removals[rel] = true
		absPath := filepath.Join(r.RootDir, rel)
		if err := os.Remove(absPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %q: %w", rel, err)
		}
	}

	return r.WriteStaging(stg)
}

// headTree returns the current HEAD commit id and its tree.
func (r *Repo) headTree() (object.Hash, map[string]object.Hash, error) {
	h, err := r.readHead()
	if err != nil {
		return "", nil, err
	}
	c, err := r.Store.ReadCommit(h.Commit)
	if err != nil {
		return "", nil, fmt.Errorf("read HEAD commit %s: %w", h.Commit, err)
	}
	return h.Commit, c.Tree, nil
}
