// Package order computes the deterministic display order for a photo
// set, independent of filesystem enumeration order.
package order

import (
	"sort"
	"time"

	"github.com/franz/photo-sorter/internal/meta"
	"github.com/franz/photo-sorter/internal/scan"
	"github.com/franz/photo-sorter/internal/util"
)

// Sort orders photos by capture timestamp (ascending; photos with a
// capture timestamp sort before any without), then file modification
// time, then natural file name comparison. The input slice is not
// modified; a newly ordered slice is returned.
func Sort(photos []scan.Photo, src meta.TimeSource) []scan.Photo {
	if src == nil {
		src = meta.Null()
	}

	type keyed struct {
		photo      scan.Photo
		capture    time.Time
		hasCapture bool
	}

	items := make([]keyed, len(photos))
	for i, p := range photos {
		t, ok := src.CaptureTime(p.Path)
		items[i] = keyed{photo: p, capture: t, hasCapture: ok}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]

		// Capture-timestamp tier: timestamped photos come first
		if a.hasCapture != b.hasCapture {
			return a.hasCapture
		}
		if a.hasCapture && !a.capture.Equal(b.capture) {
			return a.capture.Before(b.capture)
		}

		// Modification-time tier
		if !a.photo.ModTime.Equal(b.photo.ModTime) {
			return a.photo.ModTime.Before(b.photo.ModTime)
		}

		// Natural name tier
		return util.NaturalLess(a.photo.Name, b.photo.Name)
	})

	sorted := make([]scan.Photo, len(items))
	for i, item := range items {
		sorted[i] = item.photo
	}
	return sorted
}
