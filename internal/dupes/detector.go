// Package dupes flags probable duplicate photos by content without
// reading entire large files: each photo is fingerprinted by an MD5
// digest of its leading 10 MiB. Files over the prefix limit that differ
// only afterwards are accepted false positives of the heuristic.
package dupes

import (
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/franz/photo-sorter/internal/scan"
	"github.com/franz/photo-sorter/internal/util"
)

// PrefixLimit bounds how much of each file is read for fingerprinting
const PrefixLimit = 10 << 20 // 10 MiB

// Pair records a duplicate: the first photo seen with a fingerprint is
// the original, every later photo with the same fingerprint a duplicate.
type Pair struct {
	Original  string `json:"original"`
	Duplicate string `json:"duplicate"`
}

// Detector computes bounded-prefix fingerprints
type Detector struct {
	limit int64
}

// New creates a Detector with the default prefix limit.
func New() *Detector {
	return &Detector{limit: PrefixLimit}
}

// NewWithLimit creates a Detector with a custom prefix limit (tests).
func NewWithLimit(limit int64) *Detector {
	if limit <= 0 {
		limit = PrefixLimit
	}
	return &Detector{limit: limit}
}

// Fingerprint hashes the first PrefixLimit bytes of the file via a single
// bounded positional read. On any read failure it returns a synthetic
// fingerprint derived from the path and current time, with ok=false, so
// the file is never silently skipped but never falsely matched either.
func (d *Detector) Fingerprint(path string) (fp string, ok bool) {
	f, err := os.Open(path)
	if err != nil {
		return fallbackFingerprint(path), false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fallbackFingerprint(path), false
	}

	size := info.Size()
	if size > d.limit {
		size = d.limit
	}

	buf := make([]byte, size)
	if _, err := f.ReadAt(buf, 0); err != nil && err != io.EOF {
		return fallbackFingerprint(path), false
	}

	return fmt.Sprintf("%x", md5.Sum(buf)), true
}

// fallbackFingerprint builds a unique per-call fingerprint for an
// unreadable file.
func fallbackFingerprint(path string) string {
	h := md5.New()
	fmt.Fprintf(h, "%s:%d", path, time.Now().UnixNano())
	return fmt.Sprintf("unreadable-%x", h.Sum(nil))
}

// Detect fingerprints all photos and reports same-fingerprint pairs in
// scan order. Error-fallback fingerprints never match anything.
func (d *Detector) Detect(photos []scan.Photo) []Pair {
	var bar *progressbar.ProgressBar
	if util.IsTerminal(os.Stderr.Fd()) && !util.IsQuiet() && len(photos) > 0 {
		bar = progressbar.NewOptions(len(photos),
			progressbar.OptionSetDescription("Fingerprinting"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(200*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}

	seen := make(map[string]string, len(photos)) // fingerprint -> original name
	pairs := make([]Pair, 0)

	for _, p := range photos {
		fp, ok := d.Fingerprint(p.Path)
		if bar != nil {
			bar.Add(1)
		}
		if !ok {
			util.WarnLog("Could not fingerprint %s, excluded from duplicate matching", p.Name)
			continue
		}

		if original, dup := seen[fp]; dup {
			pairs = append(pairs, Pair{Original: original, Duplicate: p.Name})
			continue
		}
		seen[fp] = p.Name
	}

	if bar != nil {
		bar.Finish()
	}

	if len(pairs) > 0 {
		util.InfoLog("Duplicate detection: %d probable duplicates", len(pairs))
	}
	return pairs
}
