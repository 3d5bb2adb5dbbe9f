package stats

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/franz/photo-sorter/internal/dupes"
	"github.com/franz/photo-sorter/internal/project"
)

func buildTestProject(images map[string][]string) *project.Project {
	p := project.NewProject()
	for name, tagList := range images {
		p.Images[name] = &project.ImageEntry{Tags: tagList}
	}
	return p
}

func TestBuildCategorizedCounts(t *testing.T) {
	proj := buildTestProject(map[string][]string{
		"a.jpg": {"Yes"},
		"b.jpg": {"yes", "Family"}, // curation tags match case-insensitively
		"c.jpg": {"No"},
		"d.jpg": {"Maybe"},
		"e.jpg": {"Family"},
		"f.jpg": {},
	})
	names := []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg", "f.jpg", "unknown.jpg"}

	s := Build(proj, names, nil)

	if s.Total != 7 {
		t.Errorf("Expected total 7, got %d", s.Total)
	}
	if s.Categorized.Yes != 2 || s.Categorized.No != 1 || s.Categorized.Maybe != 1 {
		t.Errorf("Wrong categorized counts: %+v", s.Categorized)
	}
	if s.Duplicates == nil || len(s.Duplicates) != 0 {
		t.Errorf("Nil duplicates should become an empty slice, got %v", s.Duplicates)
	}
}

func TestSaveWritesParsableJSON(t *testing.T) {
	root := t.TempDir()
	proj := buildTestProject(map[string][]string{"a.jpg": {"Yes"}})
	pairs := []dupes.Pair{{Original: "a.jpg", Duplicate: "b.jpg"}}

	if err := Save(root, Build(proj, []string{"a.jpg", "b.jpg"}, pairs)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(Path(root))
	if err != nil {
		t.Fatal(err)
	}
	var loaded Stats
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("Stats file does not parse: %v", err)
	}
	if loaded.Total != 2 || loaded.Categorized.Yes != 1 || len(loaded.Duplicates) != 1 {
		t.Errorf("Round-tripped stats wrong: %+v", loaded)
	}
}
