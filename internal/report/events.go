// Package report writes a JSONL audit trail of curation events. Export
// and revert destructively reorganize user files, so every operation that
// touches the project or the filesystem leaves a line here.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EventType represents the type of event
type EventType string

const (
	EventScan   EventType = "scan"
	EventTag    EventType = "tag"
	EventUntag  EventType = "untag"
	EventPlan   EventType = "plan"
	EventExport EventType = "export"
	EventRevert EventType = "revert"
	EventError  EventType = "error"
)

// EventLevel represents the severity level
type EventLevel string

const (
	LevelDebug   EventLevel = "debug"
	LevelInfo    EventLevel = "info"
	LevelWarning EventLevel = "warning"
	LevelError   EventLevel = "error"
)

var levelPriority = map[EventLevel]int{
	LevelDebug:   0,
	LevelInfo:    1,
	LevelWarning: 2,
	LevelError:   3,
}

// Event represents a single curation event
type Event struct {
	Timestamp time.Time  `json:"ts"`
	Level     EventLevel `json:"level"`
	Event     EventType  `json:"event"`
	Photo     string     `json:"photo,omitempty"`
	Tag       string     `json:"tag,omitempty"`
	SrcPath   string     `json:"src_path,omitempty"`
	DestPath  string     `json:"dest_path,omitempty"`
	Count     int        `json:"count,omitempty"`
	Reason    string     `json:"reason,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// EventLogger writes events to a JSONL file
type EventLogger struct {
	file     *os.File
	encoder  *json.Encoder
	mu       sync.Mutex
	path     string
	minLevel EventLevel
}

// NewEventLogger creates an event logger writing into outputDir.
// minLevel determines which events are written.
func NewEventLogger(outputDir string, minLevel EventLevel) (*EventLogger, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	path := filepath.Join(outputDir, fmt.Sprintf("events-%s.jsonl", timestamp))

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create event log: %w", err)
	}

	return &EventLogger{
		file:     file,
		encoder:  json.NewEncoder(file),
		path:     path,
		minLevel: minLevel,
	}, nil
}

// NullLogger returns a logger that silently drops all events.
func NullLogger() *EventLogger {
	return &EventLogger{}
}

// Path returns the log file path, or "" for a null logger.
func (l *EventLogger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Log writes an event to the JSONL file
func (l *EventLogger) Log(event *Event) error {
	if l == nil || l.file == nil {
		return nil // Silently ignore if logger not initialized
	}

	if levelPriority[event.Level] < levelPriority[l.minLevel] {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if err := l.encoder.Encode(event); err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	return nil
}

// LogScan records a completed root scan.
func (l *EventLogger) LogScan(root string, count int) {
	l.Log(&Event{Level: LevelInfo, Event: EventScan, SrcPath: root, Count: count})
}

// LogTag records a tag mutation.
func (l *EventLogger) LogTag(photo, tag string, added bool) {
	evt := EventTag
	if !added {
		evt = EventUntag
	}
	l.Log(&Event{Level: LevelInfo, Event: evt, Photo: photo, Tag: tag})
}

// LogExport records one applied export operation.
func (l *EventLogger) LogExport(srcPath, destPath, reason string, err error) {
	event := &Event{
		Level:    LevelInfo,
		Event:    EventExport,
		SrcPath:  srcPath,
		DestPath: destPath,
		Reason:   reason,
	}
	if err != nil {
		event.Level = LevelError
		event.Error = err.Error()
	}
	l.Log(event)
}

// LogRevert records revert completion counts.
func (l *EventLogger) LogRevert(restored, removed int) {
	l.Log(&Event{Level: LevelInfo, Event: EventRevert, Count: restored + removed,
		Reason: fmt.Sprintf("restored=%d removed=%d", restored, removed)})
}

// Close closes the underlying log file.
func (l *EventLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
