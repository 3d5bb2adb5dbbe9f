// Package project owns the persistent curation record for one root
// directory: the JSON project file, its backups, and the tag mutation API.
package project

import (
	"path/filepath"
	"time"
)

const (
	// SchemaVersion is the current project file schema version
	SchemaVersion = 1

	// DirName is the project directory created inside the curated root
	DirName = ".photo-sorter"

	// FileName is the project file name inside DirName
	FileName = "project.json"

	// BackupDirName holds rotated copies of the project file
	BackupDirName = "backups"

	// MaxBackups is how many most-recently-modified backups are retained
	MaxBackups = 5
)

// ImageEntry holds the curation state for a single photo, keyed by base
// file name. Tag order is significant: the first tag is the primary tag.
type ImageEntry struct {
	Tags []string `json:"tags"`
}

// Project is the persisted curation state for one root directory.
// The root is always recorded as "." because the project file lives
// inside the directory it describes.
type Project struct {
	Version   int                    `json:"version"`
	Root      string                 `json:"root"`
	Images    map[string]*ImageEntry `json:"images"`
	Tags      []string               `json:"tags"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// NewProject returns a minimal valid empty project.
func NewProject() *Project {
	return &Project{
		Version: SchemaVersion,
		Root:    ".",
		Images:  make(map[string]*ImageEntry),
		Tags:    make([]string, 0),
	}
}

// Clone returns a deep copy of the project, safe to read while the
// store keeps mutating its own copy.
func (p *Project) Clone() *Project {
	c := &Project{
		Version:   p.Version,
		Root:      p.Root,
		Images:    make(map[string]*ImageEntry, len(p.Images)),
		Tags:      append([]string(nil), p.Tags...),
		UpdatedAt: p.UpdatedAt,
	}
	for name, entry := range p.Images {
		c.Images[name] = &ImageEntry{Tags: append([]string(nil), entry.Tags...)}
	}
	return c
}

// Dir returns the project directory for a root.
func Dir(root string) string {
	return filepath.Join(root, DirName)
}

// FilePath returns the project file path for a root.
func FilePath(root string) string {
	return filepath.Join(root, DirName, FileName)
}

// BackupDir returns the backup directory for a root.
func BackupDir(root string) string {
	return filepath.Join(root, DirName, BackupDirName)
}
