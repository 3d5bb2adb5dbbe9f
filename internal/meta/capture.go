// Package meta provides the capture-time capability used for photo
// ordering. Extraction is best-effort: a file without usable metadata
// simply reports no capture time.
package meta

import (
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/franz/photo-sorter/internal/util"
)

// TimeSource extracts the capture timestamp embedded in a photo.
// Implementations must never fail hard: a photo the source cannot read
// reports (zero, false) and falls through to the caller's fallbacks.
type TimeSource interface {
	CaptureTime(path string) (time.Time, bool)
}

// exifSource reads EXIF DateTimeOriginal/DateTime tags.
type exifSource struct{}

// NewEXIF returns a TimeSource backed by EXIF metadata.
func NewEXIF() TimeSource {
	return exifSource{}
}

func (exifSource) CaptureTime(path string) (time.Time, bool) {
	f, err := os.Open(path)
	if err != nil {
		util.DebugLog("EXIF open failed for %s: %v", path, err)
		return time.Time{}, false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		// Normal for images without EXIF data
		return time.Time{}, false
	}

	dt, err := x.DateTime()
	if err != nil {
		return time.Time{}, false
	}
	return dt, true
}

// nullSource reports no capture time for any photo. Used when metadata
// extraction is disabled; ordering then rests on mtime and file name.
type nullSource struct{}

// Null returns a TimeSource that never reports a capture time.
func Null() TimeSource {
	return nullSource{}
}

func (nullSource) CaptureTime(string) (time.Time, bool) {
	return time.Time{}, false
}
