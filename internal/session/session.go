// Package session ties the curation pipeline together behind the
// request/response contract the presentation layer talks to. A Session
// is an explicit object owned by the caller; there is no package-level
// mutable state, and one Session owns the single project store for its
// open root.
package session

import (
	"fmt"

	"github.com/franz/photo-sorter/internal/dupes"
	"github.com/franz/photo-sorter/internal/export"
	"github.com/franz/photo-sorter/internal/meta"
	"github.com/franz/photo-sorter/internal/order"
	"github.com/franz/photo-sorter/internal/project"
	"github.com/franz/photo-sorter/internal/report"
	"github.com/franz/photo-sorter/internal/revert"
	"github.com/franz/photo-sorter/internal/scan"
	"github.com/franz/photo-sorter/internal/stats"
	"github.com/franz/photo-sorter/internal/util"
)

// Config holds session configuration
type Config struct {
	Root       string
	TimeSource meta.TimeSource     // nil disables capture-time ordering
	Detector   *dupes.Detector     // nil uses the default prefix limit
	Logger     *report.EventLogger // nil disables the audit trail
}

// Session serves curation requests for one open root. Requests are
// dispatched one at a time and run to completion; the session performs
// no internal locking of its own beyond what the project store does.
type Session struct {
	root     string
	store    *project.Store
	photos   []scan.Photo
	index    int
	stats    *stats.Stats
	detector *dupes.Detector
	logger   *report.EventLogger
}

// PhotoView is the navigation response for one photo.
type PhotoView struct {
	Photo scan.Photo
	Index int
	Total int
	Tags  []string
}

// OpenInfo summarizes a freshly opened root.
type OpenInfo struct {
	TotalPhotos int
	FirstPhoto  string
	Stats       *stats.Stats
}

// Open scans the root, orders the photos, loads or creates the project,
// and initializes stats. The session is not usable until Open returns.
func Open(cfg *Config) (*Session, *OpenInfo, error) {
	if cfg.Root == "" {
		return nil, nil, fmt.Errorf("%w: root directory is required", util.ErrInvalidConfig)
	}
	if cfg.TimeSource == nil {
		cfg.TimeSource = meta.Null()
	}
	if cfg.Detector == nil {
		cfg.Detector = dupes.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = report.NullLogger()
	}

	photos, err := scan.Scan(cfg.Root)
	if err != nil {
		return nil, nil, err
	}
	photos = order.Sort(photos, cfg.TimeSource)

	store, err := project.Open(cfg.Root, scan.Names(photos))
	if err != nil {
		return nil, nil, err
	}

	s := &Session{
		root:     cfg.Root,
		store:    store,
		photos:   photos,
		detector: cfg.Detector,
		logger:   cfg.Logger,
	}

	duplicates := s.detector.Detect(photos)
	s.stats = stats.Build(store.Snapshot(), scan.Names(photos), duplicates)
	if err := stats.Save(cfg.Root, s.stats); err != nil {
		util.WarnLog("Failed to write stats file: %v", err)
	}

	s.logger.LogScan(cfg.Root, len(photos))

	info := &OpenInfo{TotalPhotos: len(photos), Stats: s.stats}
	if len(photos) > 0 {
		info.FirstPhoto = photos[0].Name
	}
	return s, info, nil
}

// Photos returns the ordered photo list.
func (s *Session) Photos() []scan.Photo {
	return s.photos
}

// Current returns the photo at the navigation cursor.
func (s *Session) Current() (*PhotoView, error) {
	return s.view(s.index)
}

// Next advances the cursor and returns the photo there.
func (s *Session) Next() (*PhotoView, error) {
	if s.index+1 < len(s.photos) {
		s.index++
	}
	return s.view(s.index)
}

// Prev moves the cursor back and returns the photo there.
func (s *Session) Prev() (*PhotoView, error) {
	if s.index > 0 {
		s.index--
	}
	return s.view(s.index)
}

func (s *Session) view(i int) (*PhotoView, error) {
	if len(s.photos) == 0 {
		return nil, util.ErrNotFound
	}
	p := s.photos[i]
	return &PhotoView{
		Photo: p,
		Index: i,
		Total: len(s.photos),
		Tags:  s.store.Tags(p.Name),
	}, nil
}

// AddTag adds a tag to a photo by base name and returns the updated tag
// list. Stats are updated incrementally after every mutation.
func (s *Session) AddTag(fileName, tag string) ([]string, error) {
	if _, err := s.lookup(fileName); err != nil {
		return nil, err
	}
	updated := s.store.AddTag(fileName, tag)
	s.logger.LogTag(fileName, tag, true)
	s.refreshStats()
	return updated, nil
}

// RemoveTag removes a tag from a photo and returns the updated tag list.
func (s *Session) RemoveTag(fileName, tag string) ([]string, error) {
	if _, err := s.lookup(fileName); err != nil {
		return nil, err
	}
	updated := s.store.RemoveTag(fileName, tag)
	s.logger.LogTag(fileName, tag, false)
	s.refreshStats()
	return updated, nil
}

// Tags returns the current tag list for a photo.
func (s *Session) Tags(fileName string) ([]string, error) {
	if _, err := s.lookup(fileName); err != nil {
		return nil, err
	}
	return s.store.Tags(fileName), nil
}

// AllTags returns every tag ever assigned in this project, for
// autocomplete.
func (s *Session) AllTags() []string {
	return s.store.AllTags()
}

// Stats returns the current derived statistics.
func (s *Session) Stats() *stats.Stats {
	return s.stats
}

// ExportDryRun computes an export plan without filesystem mutation.
// Pending project writes are flushed first so the plan never reflects
// stale state.
func (s *Session) ExportDryRun(exportRoot string) (*export.Plan, error) {
	if err := s.store.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush project before planning: %w", err)
	}
	return export.BuildPlan(exportRoot, s.photos, s.store.Snapshot()), nil
}

// ExportExecute recomputes the plan from current state and applies it.
// The photo list is rescanned afterwards: the root's contents have
// changed under the session.
func (s *Session) ExportExecute(exportRoot string) (*export.Result, error) {
	plan, err := s.ExportDryRun(exportRoot)
	if err != nil {
		return nil, err
	}

	result := export.Execute(plan)
	for _, op := range plan.Moves {
		s.logger.LogExport(op.Source, op.Dest, "move", nil)
	}
	for _, op := range plan.Links {
		s.logger.LogExport(op.Source, op.Dest, "link", nil)
	}

	s.rescan()
	return result, nil
}

// Revert undoes a previous export into exportRoot and deletes the
// project record. The session is left on a freshly scanned, empty-tag
// view of the root.
func (s *Session) Revert(exportRoot string) (*revert.Result, error) {
	if err := s.store.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush project before revert: %w", err)
	}

	result, err := revert.Run(s.root, exportRoot, s.store.Snapshot())
	if err != nil {
		return nil, err
	}
	// The project record is gone; the store must not resurrect it
	s.store.Discard()
	s.logger.LogRevert(result.Restored, result.Removed)

	s.rescan()
	return result, nil
}

// Close flushes any pending project write.
func (s *Session) Close() error {
	return s.store.Close()
}

func (s *Session) lookup(fileName string) (scan.Photo, error) {
	for _, p := range s.photos {
		if p.Name == fileName {
			return p, nil
		}
	}
	return scan.Photo{}, fmt.Errorf("%w: %s", util.ErrNotFound, fileName)
}

func (s *Session) refreshStats() {
	duplicates := s.stats.Duplicates
	s.stats = stats.Build(s.store.Snapshot(), scan.Names(s.photos), duplicates)
	if err := stats.Save(s.root, s.stats); err != nil {
		util.WarnLog("Failed to write stats file: %v", err)
	}
}

func (s *Session) rescan() {
	photos, err := scan.Scan(s.root)
	if err != nil {
		util.WarnLog("Rescan after filesystem change failed: %v", err)
		return
	}
	s.photos = photos
	if s.index >= len(photos) {
		s.index = 0
	}
}
