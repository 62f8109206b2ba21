package models

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "< 1 min"},
		{"thirty seconds", 30 * time.Second, "< 1 min"},
		{"just under a minute", 59*time.Second + 999*time.Millisecond, "< 1 min"},
		{"exactly one minute", time.Minute, "1 min"},
		{"five minutes", 5 * time.Minute, "5 min"},
		{"fifty-nine minutes", 59 * time.Minute, "59 min"},
		{"exactly one hour", time.Hour, "1h"},
		{"ninety minutes", 90 * time.Minute, "1h 30min"},
		{"two hours five", 125 * time.Minute, "2h 5min"},
		{"three hours even", 3 * time.Hour, "3h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.d); got != tt.want {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestEventDuration(t *testing.T) {
	start := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	end := start.Add(42 * time.Minute)

	open := Event{Timestamp: start}
	if !open.Open() {
		t.Error("event without end timestamp should be open")
	}
	if _, ok := open.Duration(); ok {
		t.Error("open event should have no duration")
	}
	if open.DurationLabel() != "open" {
		t.Errorf("open event label = %q, want \"open\"", open.DurationLabel())
	}

	closed := Event{Timestamp: start, EndTimestamp: &end}
	if closed.Open() {
		t.Error("event with end timestamp should be closed")
	}
	d, ok := closed.Duration()
	if !ok || d != 42*time.Minute {
		t.Errorf("Duration() = (%v, %v), want (42m, true)", d, ok)
	}
	ms, ok := closed.DurationMs()
	if !ok || ms != 42*60*1000 {
		t.Errorf("DurationMs() = (%d, %v), want (2520000, true)", ms, ok)
	}
	if ms < 0 {
		t.Error("derived duration must be non-negative")
	}
	if closed.DurationLabel() != "42 min" {
		t.Errorf("closed event label = %q, want \"42 min\"", closed.DurationLabel())
	}
}
