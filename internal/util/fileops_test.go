package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpg")
	dest := filepath.Join(dir, "sub", "dest.jpg")
	content := []byte("image bytes")

	if err := os.WriteFile(src, content, 0644); err != nil {
		t.Fatal(err)
	}

	n, err := CopyFile(src, dest)
	if err != nil {
		t.Fatalf("CopyFile failed: %v", err)
	}
	if n != int64(len(content)) {
		t.Errorf("Expected %d bytes copied, got %d", len(content), n)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Error("Copied content differs from source")
	}
	if _, err := os.Stat(dest + ".part"); !os.IsNotExist(err) {
		t.Error("Temporary .part file was left behind")
	}
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	dest := filepath.Join(dir, "Tag", "a.jpg")

	if err := os.WriteFile(src, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := MoveFile(src, dest); err != nil {
		t.Fatalf("MoveFile failed: %v", err)
	}

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("Source still exists after move")
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("Destination missing after move: %v", err)
	}
}

func TestLinkOrCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	dest := filepath.Join(dir, "Other", "a.jpg")

	if err := os.WriteFile(src, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := LinkOrCopy(src, dest); err != nil {
		t.Fatalf("LinkOrCopy failed: %v", err)
	}

	srcInfo, _ := os.Stat(src)
	destInfo, err := os.Stat(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !os.SameFile(srcInfo, destInfo) {
		t.Error("Expected a hard link within the same filesystem")
	}
}

func TestAvailableName(t *testing.T) {
	dir := t.TempDir()
	reserved := make(map[string]bool)

	// Free name comes back unchanged
	if got := AvailableName(dir, "a.jpg", reserved); got != "a.jpg" {
		t.Errorf("Expected a.jpg, got %s", got)
	}

	// The first result is now reserved even though nothing is on disk yet
	if got := AvailableName(dir, "a.jpg", reserved); got != "a_1.jpg" {
		t.Errorf("Expected a_1.jpg, got %s", got)
	}

	// On-disk files count as taken too
	if err := os.WriteFile(filepath.Join(dir, "b.jpg"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := AvailableName(dir, "b.jpg", reserved); got != "b_1.jpg" {
		t.Errorf("Expected b_1.jpg, got %s", got)
	}

	// Extensionless names get the suffix at the end
	reserved2 := map[string]bool{filepath.Join(dir, "raw"): true}
	if got := AvailableName(dir, "raw", reserved2); got != "raw_1" {
		t.Errorf("Expected raw_1, got %s", got)
	}
}
