package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/franz/photo-sorter/internal/tags"
	"github.com/franz/photo-sorter/internal/util"
)

// SaveDelay is the debounce window for scheduled writes. Repeated
// mutations within the window coalesce into a single disk write.
const SaveDelay = 500 * time.Millisecond

// Store is the single source of truth for one root's Project. It is the
// sole mutator of both the in-memory record and the on-disk file. Tag
// mutations are visible to in-process reads immediately; persistence is
// debounced and guaranteed only after SaveDelay of quiescence (or an
// explicit Flush).
type Store struct {
	root string

	mu        sync.Mutex
	proj      *Project
	saveTimer *time.Timer
	saveDelay time.Duration
	discarded bool
}

// Open ensures the project directory exists, loads the project file (a
// corrupt or unreadable file is discarded and replaced with a fresh
// project rather than surfacing an error), merges any newly discovered
// file names with empty tag lists, and persists the result immediately.
//
// Images are merge-only: entries whose files have vanished from disk are
// kept for the user to reconcile.
//
// A failure to create the project directory or to write the initial file
// is fatal for the open: curation cannot proceed without a writable
// project directory.
func Open(root string, discovered []string) (*Store, error) {
	if err := os.MkdirAll(Dir(root), 0755); err != nil {
		return nil, fmt.Errorf("failed to create project directory: %w", err)
	}

	s := &Store{
		root:      root,
		proj:      load(root),
		saveDelay: SaveDelay,
	}

	merged := 0
	for _, name := range discovered {
		if _, ok := s.proj.Images[name]; !ok {
			s.proj.Images[name] = &ImageEntry{Tags: make([]string, 0)}
			merged++
		}
	}
	if merged > 0 {
		util.DebugLog("Merged %d newly discovered photos into project", merged)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeLocked(); err != nil {
		return nil, fmt.Errorf("failed to write project file: %w", err)
	}
	return s, nil
}

// load parses the project file for root. Any failure yields a fresh
// empty project; corrupt state must never block curation.
func load(root string) *Project {
	data, err := os.ReadFile(FilePath(root))
	if err != nil {
		if !os.IsNotExist(err) {
			util.WarnLog("Failed to read project file, starting fresh: %v", err)
		}
		return NewProject()
	}

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		util.WarnLog("Project file is corrupt, starting fresh: %v", err)
		return NewProject()
	}

	// Fill in anything a hand-edited or older file may be missing
	if p.Images == nil {
		p.Images = make(map[string]*ImageEntry)
	}
	for name, entry := range p.Images {
		if entry == nil {
			p.Images[name] = &ImageEntry{Tags: make([]string, 0)}
		} else if entry.Tags == nil {
			entry.Tags = make([]string, 0)
		}
	}
	if p.Tags == nil {
		p.Tags = make([]string, 0)
	}
	if p.Version == 0 {
		p.Version = SchemaVersion
	}
	p.Root = "."

	return &p
}

// Root returns the root directory this store describes.
func (s *Store) Root() string {
	return s.root
}

// AddTag normalizes rawTag and appends it to fileName's tag list and the
// global tag list, both under case-insensitive uniqueness. The image
// entry is created if absent. An empty normalized tag is a no-op.
// Returns a copy of the image's updated tag list.
func (s *Store) AddTag(fileName, rawTag string) []string {
	tag := tags.Normalize(rawTag)
	if tag == "" {
		return s.Tags(fileName)
	}

	s.mu.Lock()
	entry, ok := s.proj.Images[fileName]
	if !ok {
		entry = &ImageEntry{Tags: make([]string, 0)}
		s.proj.Images[fileName] = entry
	}
	if !tags.Contains(entry.Tags, tag) {
		entry.Tags = append(entry.Tags, tag)
	}
	if !tags.Contains(s.proj.Tags, tag) {
		s.proj.Tags = append(s.proj.Tags, tag)
	}
	updated := append([]string(nil), entry.Tags...)
	s.scheduleSaveLocked()
	s.mu.Unlock()

	return updated
}

// RemoveTag removes the first case-insensitive match of rawTag from
// fileName's tag list. The global tag list is append-only history and is
// left untouched. Missing image or tag is a no-op.
// Returns a copy of the image's updated tag list.
func (s *Store) RemoveTag(fileName, rawTag string) []string {
	tag := tags.Normalize(rawTag)

	s.mu.Lock()
	entry, ok := s.proj.Images[fileName]
	if ok && tag != "" {
		for i, t := range entry.Tags {
			if tags.Equal(t, tag) {
				entry.Tags = append(entry.Tags[:i], entry.Tags[i+1:]...)
				s.scheduleSaveLocked()
				break
			}
		}
	}
	var updated []string
	if ok {
		updated = append([]string(nil), entry.Tags...)
	}
	s.mu.Unlock()

	return updated
}

// Tags returns a defensive copy of fileName's ordered tag list.
func (s *Store) Tags(fileName string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.proj.Images[fileName]
	if !ok {
		return nil
	}
	return append([]string(nil), entry.Tags...)
}

// AllTags returns a defensive copy of the global tag list in insertion order.
func (s *Store) AllTags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.proj.Tags...)
}

// Snapshot returns a deep copy of the current project state.
// Callers that need the persisted file to match (export, revert) must
// call Flush first.
func (s *Store) Snapshot() *Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proj.Clone()
}

// Save schedules a debounced atomic write. Each call resets the window,
// so the write happens once no further mutation occurs for SaveDelay.
func (s *Store) Save() {
	s.mu.Lock()
	s.scheduleSaveLocked()
	s.mu.Unlock()
}

func (s *Store) scheduleSaveLocked() {
	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	s.saveTimer = time.AfterFunc(s.saveDelay, func() {
		if err := s.Flush(); err != nil {
			util.ErrorLog("Debounced project save failed: %v", err)
		}
	})
}

// Flush cancels any pending debounced save and writes the current state
// to disk immediately. Export and revert call this before reading
// project state so they never act on a stale file.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
	if s.discarded {
		return nil
	}
	return s.writeLocked()
}

// Discard cancels any pending write and prevents all future writes.
// Called after revert deletes the project record so the store cannot
// resurrect the file it no longer owns.
func (s *Store) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
	s.discarded = true
}

// Close flushes any pending write.
func (s *Store) Close() error {
	return s.Flush()
}

// writeLocked persists the project atomically: back up the existing file,
// write a temporary sibling, then rename it over the real file. The
// rename is the only step that makes new content visible, so a reader can
// never observe a partially written file. Backup failures are best-effort.
func (s *Store) writeLocked() error {
	s.proj.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(s.proj, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	data = append(data, '\n')

	path := FilePath(s.root)
	if _, err := os.Stat(path); err == nil {
		if err := s.backup(path); err != nil {
			util.WarnLog("Project backup failed: %v", err)
		}
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	util.DebugLog("Project saved: %s", path)
	return nil
}

// backup copies the current project file into the backups directory with
// a timestamp-derived name and prunes all but the MaxBackups newest.
func (s *Store) backup(path string) error {
	dir := BackupDir(s.root)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	name := fmt.Sprintf("project-%s.json", time.Now().Format("20060102150405"))
	if _, err := util.CopyFile(path, filepath.Join(dir, name)); err != nil {
		return err
	}

	return pruneBackups(dir)
}

// pruneBackups keeps only the MaxBackups most-recently-modified backups.
func pruneBackups(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	type backup struct {
		name  string
		mtime time.Time
	}
	backups := make([]backup, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		backups = append(backups, backup{name: e.Name(), mtime: info.ModTime()})
	}

	if len(backups) <= MaxBackups {
		return nil
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].mtime.After(backups[j].mtime)
	})
	for _, old := range backups[MaxBackups:] {
		if err := os.Remove(filepath.Join(dir, old.name)); err != nil {
			util.WarnLog("Failed to prune backup %s: %v", old.name, err)
		}
	}
	return nil
}
