// Package stats derives rebuildable curation statistics from the project
// and the scanned photo set. Stats are not authoritative: they are safe
// to discard and recompute at any time.
package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/franz/photo-sorter/internal/dupes"
	"github.com/franz/photo-sorter/internal/project"
	"github.com/franz/photo-sorter/internal/tags"
)

// FileName is the stats file written next to the photos
const FileName = "photo_sorter_stats.json"

// Categorized counts photos carrying the yes/no/maybe curation tags.
type Categorized struct {
	Yes   int `json:"yes"`
	No    int `json:"no"`
	Maybe int `json:"maybe"`
}

// Stats is the derived view persisted to FileName.
type Stats struct {
	Total       int          `json:"total"`
	Categorized Categorized  `json:"categorized"`
	Duplicates  []dupes.Pair `json:"duplicates"`
	LastUpdated time.Time    `json:"lastUpdated"`
}

// Build computes stats for the scanned photo names against the project.
// duplicates is carried through from scan-time detection.
func Build(proj *project.Project, photoNames []string, duplicates []dupes.Pair) *Stats {
	s := &Stats{
		Total:       len(photoNames),
		Duplicates:  duplicates,
		LastUpdated: time.Now().UTC(),
	}
	if s.Duplicates == nil {
		s.Duplicates = make([]dupes.Pair, 0)
	}

	for _, name := range photoNames {
		entry, ok := proj.Images[name]
		if !ok {
			continue
		}
		if tags.Contains(entry.Tags, "yes") {
			s.Categorized.Yes++
		}
		if tags.Contains(entry.Tags, "no") {
			s.Categorized.No++
		}
		if tags.Contains(entry.Tags, "maybe") {
			s.Categorized.Maybe++
		}
	}

	return s
}

// Path returns the stats file path for a root.
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// Save writes the stats file. Stats are derived data, so a plain write
// is sufficient; a torn file is simply rebuilt on the next open.
func Save(root string, s *Stats) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(Path(root), data, 0644); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}
	return nil
}
