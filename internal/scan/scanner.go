// Package scan discovers photos at the top level of a chosen root
// directory. Subdirectories are ignored: the project is scoped to one
// flat root, and export creates tag-named subdirectories of its own.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/franz/photo-sorter/internal/util"
)

// ImageExtensions are the accepted image file extensions (case-insensitive)
var ImageExtensions = []string{
	".jpg",
	".jpeg",
	".png",
	".gif",
	".bmp",
	".tiff",
	".webp",
}

var extensions = func() map[string]bool {
	m := make(map[string]bool, len(ImageExtensions))
	for _, ext := range ImageExtensions {
		m[ext] = true
	}
	return m
}()

// Photo is a discovered image file under the root.
type Photo struct {
	Path    string // absolute path
	Name    string // base file name; project identity
	Size    int64
	ModTime time.Time
}

// Scan lists the photos at the top level of root, in directory
// enumeration order. Callers that need a stable display order pass the
// result through the order package.
func Scan(root string) ([]Photo, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}

	entries, err := os.ReadDir(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to read root directory: %w", err)
	}

	photos := make([]Photo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !IsImage(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			util.WarnLog("Failed to stat %s: %v", entry.Name(), err)
			continue
		}

		photos = append(photos, Photo{
			Path:    filepath.Join(absRoot, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	util.DebugLog("Scanned %s: %d photos", absRoot, len(photos))
	return photos, nil
}

// IsImage checks if a file name has an accepted image extension.
func IsImage(name string) bool {
	return extensions[strings.ToLower(filepath.Ext(name))]
}

// Names returns the base file names of photos, in the same order.
func Names(photos []Photo) []string {
	names := make([]string, len(photos))
	for i, p := range photos {
		names[i] = p.Name
	}
	return names
}
