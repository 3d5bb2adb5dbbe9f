// Package export computes and applies the tag-folder reorganization: a
// pure planning step that derives the exact move and link operations from
// project state, and a two-pass executor that realizes them.
package export

import (
	"path/filepath"
	"strings"

	"github.com/franz/photo-sorter/internal/project"
	"github.com/franz/photo-sorter/internal/scan"
	"github.com/franz/photo-sorter/internal/tags"
	"github.com/franz/photo-sorter/internal/util"
)

// MoveOp moves a photo into its primary-tag folder.
type MoveOp struct {
	Source string
	Dest   string
}

// LinkOp links a moved photo into a secondary-tag folder. Source is the
// corresponding move's destination, so links are only valid after all
// moves complete.
type LinkOp struct {
	Source string
	Dest   string
}

// Plan describes exactly what an export would do. It is valid only
// against the project and filesystem state it was computed from and must
// be recomputed immediately before execution, never cached.
type Plan struct {
	ExportRoot string
	Total      int
	Tagged     int
	Untagged   int
	PerTag     map[string]int
	Moves      []MoveOp
	Links      []LinkOp
}

// BuildPlan computes an export plan without touching the filesystem
// (existing files are only statted for collision-safe naming). Computing
// it twice from identical state yields an identical plan.
func BuildPlan(exportRoot string, photos []scan.Photo, proj *project.Project) *Plan {
	plan := &Plan{
		ExportRoot: exportRoot,
		Total:      len(photos),
		PerTag:     make(map[string]int),
		Moves:      make([]MoveOp, 0),
		Links:      make([]LinkOp, 0),
	}

	// Destinations already claimed by earlier operations in this plan
	reserved := make(map[string]bool)

	// First-seen casing per tag, so per-tag counts accumulate
	// case-insensitively under one display key
	tagKeys := make(map[string]string)
	countTag := func(tag string) {
		lower := strings.ToLower(tag)
		key, ok := tagKeys[lower]
		if !ok {
			key = tag
			tagKeys[lower] = tag
		}
		plan.PerTag[key]++
	}

	for _, photo := range photos {
		entry, ok := proj.Images[photo.Name]
		if !ok || len(entry.Tags) == 0 {
			plan.Untagged++
			continue
		}
		plan.Tagged++

		// Primary tag: the original file moves into its folder
		primary := entry.Tags[0]
		primaryDir := filepath.Join(exportRoot, tags.SanitizeFolderName(primary))
		moveDest := filepath.Join(primaryDir, util.AvailableName(primaryDir, photo.Name, reserved))
		plan.Moves = append(plan.Moves, MoveOp{Source: photo.Path, Dest: moveDest})
		countTag(primary)

		// Secondary tags: link the moved file into each folder
		for _, secondary := range entry.Tags[1:] {
			secondaryDir := filepath.Join(exportRoot, tags.SanitizeFolderName(secondary))
			linkDest := filepath.Join(secondaryDir, util.AvailableName(secondaryDir, photo.Name, reserved))
			plan.Links = append(plan.Links, LinkOp{Source: moveDest, Dest: linkDest})
			countTag(secondary)
		}
	}

	return plan
}
