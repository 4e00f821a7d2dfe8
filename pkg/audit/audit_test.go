package audit

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileLoggerLogAndQuery(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.log")

	logger, err := NewFileLogger(path, RotationConfig{})
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	defer logger.Close()

	ev1 := NewEvent("alice", "", "/etc/quagga/Quagga.conf").
		WithPass(1).
		WithCommand([]string{"-c", "conf t", "-c", "no router ospf"}, 1).
		WithSuccess()
	ev2 := NewEvent("alice", "leaf01:22", "/etc/quagga/Quagga.conf").
		WithPass(2).
		WithCommand([]string{"-c", "conf t", "-c", "router bgp 10"}, 3).
		WithError(errors.New("command rejected"))

	for _, ev := range []*Event{ev1, ev2} {
		if err := logger.Log(ev); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	events, err := logger.Query(Filter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].User != "alice" || events[0].Pass != 1 {
		t.Errorf("unexpected first event: %+v", events[0])
	}
	if events[1].Attempts != 3 || events[1].Success {
		t.Errorf("unexpected second event: %+v", events[1])
	}
}

func TestFileLoggerQueryFilters(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.log")

	logger, err := NewFileLogger(path, RotationConfig{})
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	defer logger.Close()

	local := NewEvent("root", "", "Quagga.conf").WithSuccess()
	remote := NewEvent("root", "spine01:22", "Quagga.conf").WithError(errors.New("unconfigurable"))
	if err := logger.Log(local); err != nil {
		t.Fatal(err)
	}
	if err := logger.Log(remote); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 2},
		{"by host", Filter{Host: "spine01:22"}, 1},
		{"success only", Filter{SuccessOnly: true}, 1},
		{"failure only", Filter{FailureOnly: true}, 1},
		{"by user no match", Filter{User: "nobody"}, 0},
		{"limit", Filter{Limit: 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := logger.Query(tt.filter)
			if err != nil {
				t.Fatalf("Query: %v", err)
			}
			if len(events) != tt.want {
				t.Errorf("got %d events, want %d", len(events), tt.want)
			}
		})
	}
}

func TestFileLoggerRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.log")

	logger, err := NewFileLogger(path, RotationConfig{MaxSize: 1, MaxBackups: 2})
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	defer logger.Close()

	for i := 0; i < 5; i++ {
		ev := NewEvent("root", "", "Quagga.conf").WithSuccess()
		if err := logger.Log(ev); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	matches, err := filepath.Glob(filepath.Join(dir, "audit.log.*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) == 0 {
		t.Error("expected rotated log files")
	}
}

func TestDefaultLoggerNoopWhenUnset(t *testing.T) {
	ev := NewEvent("root", "", "Quagga.conf")
	if err := Log(ev); err != nil {
		t.Errorf("Log without default logger should be a no-op, got %v", err)
	}
	events, err := Query(Filter{})
	if err != nil {
		t.Errorf("Query without default logger: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
}

func TestSetDefaultLogger(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.log")

	logger, err := NewFileLogger(path, RotationConfig{})
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	defer logger.Close()

	SetDefaultLogger(logger)
	defer SetDefaultLogger(nil)

	if err := Log(NewEvent("root", "", "Quagga.conf").WithSuccess()); err != nil {
		t.Fatalf("Log: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading audit log: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected audit log entry")
	}
}

func TestEventBuilder(t *testing.T) {
	before := time.Now()
	ev := NewEvent("admin", "leaf01", "frr.conf").
		WithPass(2).
		WithCommand([]string{"-c", "conf t"}, 4).
		WithDuration(250 * time.Millisecond).
		WithError(errors.New("rejected"))

	if ev.ID == "" {
		t.Error("expected generated event ID")
	}
	if ev.Timestamp.Before(before) {
		t.Error("timestamp not set")
	}
	if ev.Success {
		t.Error("WithError must clear success")
	}
	if ev.Attempts != 4 || ev.Pass != 2 || ev.Duration != 250*time.Millisecond {
		t.Errorf("unexpected event: %+v", ev)
	}
}
