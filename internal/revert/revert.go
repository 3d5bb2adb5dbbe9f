// Package revert reconstructs the pre-export layout from the persisted
// project record. It is driven entirely by the project, never by walking
// the export folders blindly, so unrelated user files are left alone.
package revert

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/franz/photo-sorter/internal/project"
	"github.com/franz/photo-sorter/internal/stats"
	"github.com/franz/photo-sorter/internal/tags"
	"github.com/franz/photo-sorter/internal/util"
)

// Result holds revert completion counts. Restored counts files moved back
// to the root; Removed counts deleted secondary copies and removed
// tag directories.
type Result struct {
	Restored int
	Removed  int
	Errors   []error
}

// Run undoes an export into exportRoot and deletes the project record.
// Files already absent from their expected export locations are silently
// skipped: revert is idempotent in spirit.
func Run(root, exportRoot string, proj *project.Project) (*Result, error) {
	result := &Result{Errors: make([]error, 0)}
	reserved := make(map[string]bool)

	// Deterministic processing order
	names := make([]string, 0, len(proj.Images))
	for name := range proj.Images {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry := proj.Images[name]
		if entry == nil || len(entry.Tags) == 0 {
			continue
		}

		// Move the original back from its primary-tag folder
		primaryDir := filepath.Join(exportRoot, tags.SanitizeFolderName(entry.Tags[0]))
		src := filepath.Join(primaryDir, name)
		if _, err := os.Lstat(src); err == nil {
			dest := filepath.Join(root, util.AvailableName(root, name, reserved))
			if err := util.MoveFile(src, dest); err != nil {
				util.ErrorLog("Failed to restore %s: %v", name, err)
				result.Errors = append(result.Errors, err)
			} else {
				util.DebugLog("Restored: %s", dest)
				result.Restored++
			}
		}

		// Delete secondary copies; the restored original is the sole copy
		for _, secondary := range entry.Tags[1:] {
			link := filepath.Join(exportRoot, tags.SanitizeFolderName(secondary), name)
			if _, err := os.Lstat(link); err != nil {
				continue
			}
			if err := os.Remove(link); err != nil {
				util.ErrorLog("Failed to remove %s: %v", link, err)
				result.Errors = append(result.Errors, err)
			} else {
				result.Removed++
			}
		}
	}

	// Remove the tag-named directories recorded in the global tag list.
	// Only empty directories are removed: anything still holding files
	// (user data, tags added after the export) is left in place.
	for _, tag := range proj.Tags {
		dir := filepath.Join(exportRoot, tags.SanitizeFolderName(tag))
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		if err := os.Remove(dir); err != nil {
			util.WarnLog("Tag directory not removed (not empty?): %s", dir)
		} else {
			util.DebugLog("Removed directory: %s", dir)
			result.Removed++
		}
	}

	// Delete the generated structure: stats file, project file, backups,
	// and the project directory itself
	if err := os.Remove(stats.Path(root)); err != nil && !os.IsNotExist(err) {
		util.WarnLog("Failed to remove stats file: %v", err)
	}
	if err := os.RemoveAll(project.Dir(root)); err != nil {
		util.ErrorLog("Failed to remove project directory: %v", err)
		result.Errors = append(result.Errors, err)
	}

	util.SuccessLog("Revert complete: %d restored, %d removed, %d errors",
		result.Restored, result.Removed, len(result.Errors))
	return result, nil
}
