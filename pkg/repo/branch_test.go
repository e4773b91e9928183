package repo

import "testing"

func TestBranch_CreateListDelete(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	h, _ := r.readHead()

	if err := r.CreateBranch("feature", h.Commit); err != nil {
		t.Fatalf("CreateBranch(feature): %v", err)
	}

	branches, err := r.ListBranches()
	if err != nil {
		t.Fatalf("ListBranches: %v", err)
	}
	if len(branches) != 2 || branches[0] != "feature" || branches[1] != "master" {
		t.Fatalf("ListBranches = %v, want [feature master]", branches)
	}

	if err := r.DeleteBranch("feature"); err != nil {
		t.Fatalf("DeleteBranch(feature): %v", err)
	}

	branches, err = r.ListBranches()
	if err != nil {
		t.Fatalf("ListBranches after delete: %v", err)
	}
	if len(branches) != 1 || branches[0] != "master" {
		t.Fatalf("ListBranches after delete = %v, want [master]", branches)
	}
}

func TestBranch_CurrentBranch(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	branch, err := r.CurrentBranch()
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	if branch != "master" {
		t.Errorf("CurrentBranch = %q, want %q", branch, "master")
	}
}

func TestBranch_DeleteCurrentBranch_Error(t *testing.T) {
	dir := t.TempDir()
	r, _ := Init(dir)

	err := r.DeleteBranch("master")
	if ue, ok := err.(*UserError); !ok || ue.Error() != "Cannot remove the current branch." {
		t.Fatalf("DeleteBranch(master) = %v, want UserError(Cannot remove the current branch.)", err)
	}
}

func TestBranch_CreateDuplicate_Error(t *testing.T) {
	dir := t.TempDir()
	r, _ := Init(dir)
	h, _ := r.readHead()

	if err := r.CreateBranch("feature", h.Commit); err != nil {
		t.Fatalf("CreateBranch(feature): %v", err)
	}

	err := r.CreateBranch("feature", h.Commit)
	if ue, ok := err.(*UserError); !ok || ue.Error() != "A branch with that name already exists." {
		t.Fatalf("CreateBranch duplicate = %v, want UserError(A branch with that name already exists.)", err)
	}
}

func TestBranch_DeleteNonExistent_Error(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	err = r.DeleteBranch("ghost")
	if ue, ok := err.(*UserError); !ok || ue.Error() != "A branch with that name does not exist." {
		t.Fatalf("DeleteBranch(ghost) = %v, want UserError(A branch with that name does not exist.)", err)
	}
}

func TestBranch_ListIncludesInitialMaster(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	branches, err := r.ListBranches()
	if err != nil {
		t.Fatalf("ListBranches: %v", err)
	}
	if len(branches) != 1 || branches[0] != "master" {
		t.Errorf("ListBranches = %v, want [master]", branches)
	}
}

func TestBranch_CreateWritesCorrectHash(t *testing.T) {
	dir := t.TempDir()
	r, _ := Init(dir)
	h, _ := r.readHead()

	if err := r.CreateBranch("feature", h.Commit); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}

	target, err := r.readBranch("feature")
	if err != nil {
		t.Fatalf("readBranch: %v", err)
	}
	if target != h.Commit {
		t.Errorf("readBranch(feature) = %q, want %q", target, h.Commit)
	}
}
