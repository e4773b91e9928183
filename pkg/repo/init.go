package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dcgit/gitlet/pkg/object"
)

const defaultBranch = "master"

// epoch is the fixed timestamp of the initial commit every repository is
// born with: Thu Jan 1 00:00:00 1970 UTC.
var epoch = time.Unix(0, 0).UTC()

// Init creates a new gitlet repository at path: a .gitlet/ directory
// holding the object store, one branch ("master") pointing at a real
// initial commit, and empty staging. Returns a UserError if a repository
// already exists there.
func Init(path string) (*Repo, error) {
	gitletDir := filepath.Join(path, ".gitlet")

	if _, err := os.Stat(gitletDir); err == nil {
		return nil, NewUserError("A gitlet version-control system already exists in the current directory.")
	}

	dirs := []string{
		filepath.Join(gitletDir, "commits"),
		filepath.Join(gitletDir, "blobs"),
		filepath.Join(gitletDir, "branches"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	r := &Repo{
		RootDir:   path,
		GitletDir: gitletDir,
		Store:     object.NewStore(gitletDir),
	}

	initial := &object.CommitObj{
		Message:       "initial commit",
		TimestampUnix: epoch.Unix(),
		TimestampZone: "+0000",
		Tree:          map[string]object.Hash{},
	}
	commitID, err := r.Store.WriteCommit(initial)
	if err != nil {
		return nil, fmt.Errorf("init: write initial commit: %w", err)
	}

	if err := r.writeBranch(defaultBranch, commitID); err != nil {
		return nil, fmt.Errorf("init: write branch: %w", err)
	}
	if err := r.writeHead(defaultBranch, commitID); err != nil {
		return nil, fmt.Errorf("init: write head: %w", err)
	}
	if err := r.WriteStaging(newStaging()); err != nil {
		return nil, fmt.Errorf("init: write staging: %w", err)
	}

	return r, nil
}

// Open searches upward from path for a .gitlet/ directory and opens the
// repository. Returns a UserError if none is found, per the CLI's "Not in
// an initialized Gitlet directory." contract.
func Open(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		gitletDir := filepath.Join(cur, ".gitlet")
		info, err := os.Stat(gitletDir)
		if err == nil && info.IsDir() {
			return &Repo{
				RootDir:   cur,
				GitletDir: gitletDir,
				Store:     object.NewStore(gitletDir),
			}, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, NewUserError("Not in an initialized Gitlet directory.")
		}
		cur = parent
	}
}

// head is the persisted {current branch name, head commit id} pair.
type head struct {
	Branch string
	Commit object.Hash
}

func (r *Repo) repoFilePath() string { return filepath.Join(r.GitletDir, "repo") }

// HeadCommit returns the commit id currently checked out.
func (r *Repo) HeadCommit() (object.Hash, error) {
	h, err := r.readHead()
	if err != nil {
		return "", err
	}
	return h.Commit, nil
}

// readHead loads the current branch name and head commit id from
// .gitlet/repo.
func (r *Repo) readHead() (*head, error) {
	data, err := os.ReadFile(r.repoFilePath())
	if err != nil {
		return nil, fmt.Errorf("read head: %w", err)
	}
	h := &head{}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		key, val, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		switch key {
		case "branch":
			h.Branch = val
		case "head":
			h.Commit = object.Hash(val)
		}
	}
	if h.Branch == "" || h.Commit == "" {
		return nil, fmt.Errorf("read head: malformed repo file")
	}
	return h, nil
}

// writeHead atomically persists the current branch name and head commit id.
func (r *Repo) writeHead(branch string, commit object.Hash) error {
	content := fmt.Sprintf("branch %s\nhead %s\n", branch, commit)
	return atomicWriteFile(r.repoFilePath(), []byte(content))
}

// atomicWriteFile writes data to path via a temp file in the same directory
// followed by a rename, so a crash mid-write never leaves a half-written
// file for the next command to read.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
