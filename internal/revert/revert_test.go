package revert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/franz/photo-sorter/internal/export"
	"github.com/franz/photo-sorter/internal/project"
	"github.com/franz/photo-sorter/internal/scan"
	"github.com/franz/photo-sorter/internal/stats"
)

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}
}

func exportedProject(t *testing.T, root string, images map[string][]string) *project.Project {
	t.Helper()

	proj := project.NewProject()
	photos := make([]scan.Photo, 0, len(images))
	seen := make(map[string]bool)
	for name, tagList := range images {
		writeFile(t, filepath.Join(root, name), []byte(name))
		proj.Images[name] = &project.ImageEntry{Tags: tagList}
		for _, tag := range tagList {
			if !seen[tag] {
				seen[tag] = true
				proj.Tags = append(proj.Tags, tag)
			}
		}
		photos = append(photos, scan.Photo{Path: filepath.Join(root, name), Name: name})
	}

	// Persist the record the way a live session would before exporting
	if err := os.MkdirAll(project.Dir(root), 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, project.FilePath(root), []byte("{}"))
	if err := stats.Save(root, stats.Build(proj, scan.Names(photos), nil)); err != nil {
		t.Fatal(err)
	}

	plan := export.BuildPlan(root, photos, proj)
	if result := export.Execute(plan); len(result.Errors) != 0 {
		t.Fatalf("Export setup failed: %v", result.Errors)
	}
	return proj
}

func TestRunRestoresExport(t *testing.T) {
	root := t.TempDir()
	proj := exportedProject(t, root, map[string][]string{
		"p1.jpg": {"Family", "Venue"},
		"p2.jpg": {"Venue"},
		"p3.jpg": {},
	})

	result, err := Run(root, root, proj)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("Revert reported errors: %v", result.Errors)
	}
	if result.Restored != 2 {
		t.Errorf("Expected 2 restored, got %d", result.Restored)
	}

	// Every photo is back at the root under its original name
	for _, name := range []string{"p1.jpg", "p2.jpg", "p3.jpg"} {
		data, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			t.Errorf("Photo %s not restored: %v", name, err)
			continue
		}
		if string(data) != name {
			t.Errorf("Restored %s has wrong content", name)
		}
	}

	// Tag folders are gone along with the secondary copies
	for _, dir := range []string{"Family", "Venue"} {
		if _, err := os.Stat(filepath.Join(root, dir)); !os.IsNotExist(err) {
			t.Errorf("Tag folder %s still present", dir)
		}
	}

	// No residual generated files
	if _, err := os.Stat(project.Dir(root)); !os.IsNotExist(err) {
		t.Error("Project directory still present")
	}
	if _, err := os.Stat(stats.Path(root)); !os.IsNotExist(err) {
		t.Error("Stats file still present")
	}
}

func TestRunLeavesNonEmptyTagDirs(t *testing.T) {
	root := t.TempDir()
	proj := exportedProject(t, root, map[string][]string{
		"p1.jpg": {"Family"},
	})

	// A user file placed in the tag folder after the export
	keeper := filepath.Join(root, "Family", "notes.txt")
	writeFile(t, keeper, []byte("mine"))

	result, err := Run(root, root, proj)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("Revert reported errors: %v", result.Errors)
	}

	if _, err := os.Stat(filepath.Join(root, "p1.jpg")); err != nil {
		t.Errorf("Photo not restored: %v", err)
	}
	if _, err := os.Stat(keeper); err != nil {
		t.Errorf("User file was removed: %v", err)
	}
}

func TestRunSkipsMissingFiles(t *testing.T) {
	root := t.TempDir()
	proj := exportedProject(t, root, map[string][]string{
		"p1.jpg": {"Family", "Venue"},
	})

	// The user already moved the exported file away
	if err := os.Remove(filepath.Join(root, "Family", "p1.jpg")); err != nil {
		t.Fatal(err)
	}

	result, err := Run(root, root, proj)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("Missing files must be skipped, not errors: %v", result.Errors)
	}
	if result.Restored != 0 {
		t.Errorf("Expected 0 restored, got %d", result.Restored)
	}
}
