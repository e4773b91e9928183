package repo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dcgit/gitlet/pkg/object"
)

func TestStatus_StagedNewFile(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("package main\n"))

	st, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(st.Staged) != 1 || st.Staged[0] != "main.go" {
		t.Errorf("Staged = %v, want [main.go]", st.Staged)
	}
	if len(st.Modifications) != 0 {
		t.Errorf("Modifications = %v, want none", st.Modifications)
	}
}

func TestStatus_Untracked(t *testing.T) {
	dir := t.TempDir()
	r, _ := Init(dir)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	st, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(st.Untracked) != 1 || st.Untracked[0] != "notes.txt" {
		t.Errorf("Untracked = %v, want [notes.txt]", st.Untracked)
	}
}

func TestStatus_ModifiedNotStaged(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("v1\n"))
	if _, err := r.Commit("first", ""); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := os.WriteFile(filepath.Join(r.RootDir, "main.go"), []byte("v2\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	st, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(st.Modifications) != 1 || st.Modifications[0] != "main.go (modified)" {
		t.Errorf("Modifications = %v, want [main.go (modified)]", st.Modifications)
	}
}

func TestStatus_DeletedNotStaged(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("v1\n"))
	if _, err := r.Commit("first", ""); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := os.Remove(filepath.Join(r.RootDir, "main.go")); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	st, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(st.Modifications) != 1 || st.Modifications[0] != "main.go (deleted)" {
		t.Errorf("Modifications = %v, want [main.go (deleted)]", st.Modifications)
	}
}

func TestStatus_StagedThenDeletedFromDisk(t *testing.T) {
	r := initRepoWithFile(t, "new.txt", []byte("hello\n"))
	if err := os.Remove(filepath.Join(r.RootDir, "new.txt")); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	st, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(st.Modifications) != 1 || st.Modifications[0] != "new.txt (deleted)" {
		t.Errorf("Modifications = %v, want [new.txt (deleted)]", st.Modifications)
	}
}

func TestStatus_RemovedFileNotAlsoModified(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("v1\n"))
	if _, err := r.Commit("first", ""); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := r.Remove("main.go"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	st, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(st.Removed) != 1 || st.Removed[0] != "main.go" {
		t.Errorf("Removed = %v, want [main.go]", st.Removed)
	}
	for _, m := range st.Modifications {
		if strings.HasPrefix(m, "main.go") {
			t.Errorf("removed file should not also appear in Modifications, got %v", st.Modifications)
		}
	}
}

func TestFormatStatus_ExactSections(t *testing.T) {
	dir := t.TempDir()
	r, _ := Init(dir)

	if err := os.WriteFile(filepath.Join(dir, "staged.txt"), []byte("s\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := r.Add("staged.txt"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "untracked.txt"), []byte("u\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	branches, err := r.ListBranches()
	if err != nil {
		t.Fatalf("ListBranches: %v", err)
	}
	current, err := r.CurrentBranch()
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	st, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}

	out := FormatStatus(current, branches, st)
	wantOrder := []string{
		"=== Branches ===",
		"*master",
		"=== Staged Files ===",
		"staged.txt",
		"=== Removed Files ===",
		"=== Modifications Not Staged For Commit ===",
		"=== Untracked Files ===",
		"untracked.txt",
	}
	lastIdx := -1
	for _, want := range wantOrder {
		idx := strings.Index(out, want)
		if idx == -1 {
			t.Fatalf("output missing %q; got:\n%s", want, out)
		}
		if idx <= lastIdx {
			t.Fatalf("expected %q after previous section; got:\n%s", want, out)
		}
		lastIdx = idx
	}
}

func TestCheckUntrackedInTheWay_BlocksOverwrite(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("v1\n"))
	if _, err := r.Commit("first", ""); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := os.WriteFile(filepath.Join(r.RootDir, "other.go"), []byte("untracked\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, headTree, err := r.headTree()
	if err != nil {
		t.Fatalf("headTree: %v", err)
	}
	targetTree := map[string]object.Hash{"other.go": object.HashBytes([]byte("anything"))}

	err = r.checkUntrackedInTheWay(headTree, targetTree)
	if ue, ok := err.(*UserError); !ok || ue.Error() != "There is an untracked file in the way; delete it, or add and commit it first." {
		t.Fatalf("checkUntrackedInTheWay = %v, want untracked-in-the-way UserError", err)
	}
}

func TestCheckUntrackedInTheWay_AllowsWhenTrackedByHead(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("v1\n"))
	if _, err := r.Commit("first", ""); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	_, headTree, err := r.headTree()
	if err != nil {
		t.Fatalf("headTree: %v", err)
	}

	if err := r.checkUntrackedInTheWay(headTree, headTree); err != nil {
		t.Fatalf("checkUntrackedInTheWay(tracked): %v", err)
	}
}
