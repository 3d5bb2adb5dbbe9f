package report

import (
	"bufio"
	"encoding/json"
	"os"
	"testing"
)

func TestEventLoggerWritesJSONL(t *testing.T) {
	logger, err := NewEventLogger(t.TempDir(), LevelInfo)
	if err != nil {
		t.Fatalf("NewEventLogger failed: %v", err)
	}

	logger.LogScan("/photos", 12)
	logger.LogTag("a.jpg", "Family", true)
	logger.LogTag("a.jpg", "Family", false)
	// Below the minimum level, dropped
	logger.Log(&Event{Level: LevelDebug, Event: EventPlan})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	f, err := os.Open(logger.Path())
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Event
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("Line does not parse as an event: %v", err)
		}
		events = append(events, e)
	}

	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	if events[0].Event != EventScan || events[0].Count != 12 {
		t.Errorf("Wrong scan event: %+v", events[0])
	}
	if events[1].Event != EventTag || events[2].Event != EventUntag {
		t.Errorf("Wrong tag events: %+v, %+v", events[1], events[2])
	}
	for _, e := range events {
		if e.Timestamp.IsZero() {
			t.Errorf("Event missing timestamp: %+v", e)
		}
	}
}

func TestNullLoggerIsSafe(t *testing.T) {
	logger := NullLogger()
	logger.LogScan("/photos", 1)
	logger.LogExport("a", "b", "move", nil)
	logger.LogRevert(1, 2)
	if err := logger.Close(); err != nil {
		t.Errorf("Null logger Close failed: %v", err)
	}
	if logger.Path() != "" {
		t.Errorf("Null logger should have no path, got %q", logger.Path())
	}
}
