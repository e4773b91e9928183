package repo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckoutFile_RestoresFromHead(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("package main\n"))
	if _, err := r.Commit("initial", ""); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	abs := filepath.Join(r.RootDir, "main.go")
	if err := os.WriteFile(abs, []byte("package main\n\nfunc dirty() {}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := r.CheckoutFile("main.go"); err != nil {
		t.Fatalf("CheckoutFile: %v", err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "package main\n" {
		t.Errorf("content = %q, want %q", data, "package main\n")
	}
}

func TestCheckoutFile_NotInCommit(t *testing.T) {
	dir := t.TempDir()
	r, _ := Init(dir)

	err := r.CheckoutFile("nope.go")
	if ue, ok := err.(*UserError); !ok || ue.Error() != "File does not exist in that commit." {
		t.Fatalf("CheckoutFile(missing) = %v, want UserError(File does not exist in that commit.)", err)
	}
}

func TestCheckoutCommitFile_RestoresFromOlderCommit(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("v1\n"))
	h1, err := r.Commit("first", "")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	writeAndAdd(t, r, "main.go", []byte("v2\n"))
	if _, err := r.Commit("second", ""); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if err := r.CheckoutCommitFile(string(h1), "main.go"); err != nil {
		t.Fatalf("CheckoutCommitFile: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(r.RootDir, "main.go"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "v1\n" {
		t.Errorf("content = %q, want %q", data, "v1\n")
	}
}

func TestCheckoutCommitFile_NotInThatCommit(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("v1\n"))
	h1, err := r.Commit("first", "")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	err = r.CheckoutCommitFile(string(h1), "other.go")
	if ue, ok := err.(*UserError); !ok || ue.Error() != "File does not exist in that commit." {
		t.Fatalf("CheckoutCommitFile(missing path) = %v, want UserError(File does not exist in that commit.)", err)
	}
}

func TestCheckoutBranch_NoSuchBranch(t *testing.T) {
	dir := t.TempDir()
	r, _ := Init(dir)

	err := r.CheckoutBranch("ghost")
	if ue, ok := err.(*UserError); !ok || ue.Error() != "No such branch exists." {
		t.Fatalf("CheckoutBranch(ghost) = %v, want UserError(No such branch exists.)", err)
	}
}

func TestCheckoutBranch_CurrentBranch(t *testing.T) {
	dir := t.TempDir()
	r, _ := Init(dir)

	err := r.CheckoutBranch("master")
	if ue, ok := err.(*UserError); !ok || ue.Error() != "No need to checkout the current branch." {
		t.Fatalf("CheckoutBranch(master) = %v, want UserError(No need to checkout the current branch.)", err)
	}
}

func TestCheckoutBranch_ReplacesWorkingTree(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("v1\n"))
	if _, err := r.Commit("first on master", ""); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	head, err := r.readHead()
	if err != nil {
		t.Fatalf("readHead: %v", err)
	}
	if err := r.CreateBranch("feature", head.Commit); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}

	writeAndAdd(t, r, "extra.go", []byte("extra\n"))
	if _, err := r.Commit("add extra on master", ""); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if err := r.CheckoutBranch("feature"); err != nil {
		t.Fatalf("CheckoutBranch(feature): %v", err)
	}

	if _, err := os.Stat(filepath.Join(r.RootDir, "extra.go")); !os.IsNotExist(err) {
		t.Errorf("expected extra.go removed after checkout, stat err=%v", err)
	}

	branch, err := r.CurrentBranch()
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	if branch != "feature" {
		t.Errorf("CurrentBranch = %q, want %q", branch, "feature")
	}

	stg, err := r.ReadStaging()
	if err != nil {
		t.Fatalf("ReadStaging: %v", err)
	}
	if !stg.isEmpty() {
		t.Errorf("staging not cleared after checkout: %+v", stg)
	}
}

func TestCheckoutBranch_UntrackedInTheWay(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("v1\n"))
	if _, err := r.Commit("first", ""); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	head, err := r.readHead()
	if err != nil {
		t.Fatalf("readHead: %v", err)
	}
	if err := r.CreateBranch("feature", head.Commit); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}
	if err := r.CheckoutBranch("feature"); err != nil {
		t.Fatalf("CheckoutBranch(feature): %v", err)
	}
	writeAndAdd(t, r, "extra.go", []byte("on feature\n"))
	if _, err := r.Commit("add extra on feature", ""); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := r.CheckoutBranch("master"); err != nil {
		t.Fatalf("CheckoutBranch(master): %v", err)
	}

	// extra.go now exists untracked by master's HEAD, and feature's tree
	// wants to write it too.
	if err := os.WriteFile(filepath.Join(r.RootDir, "extra.go"), []byte("untracked local copy\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	err = r.CheckoutBranch("feature")
	if ue, ok := err.(*UserError); !ok || ue.Error() != "There is an untracked file in the way; delete it, or add and commit it first." {
		t.Fatalf("CheckoutBranch(feature) = %v, want untracked-in-the-way UserError", err)
	}
}
