package logging

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

type countingHandler struct {
	min   slog.Level
	count int
	err   error
}

func (h *countingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.min
}

func (h *countingHandler) Handle(_ context.Context, _ slog.Record) error {
	h.count++
	return h.err
}

func (h *countingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *countingHandler) WithGroup(string) slog.Handler      { return h }

func infoRecord() slog.Record {
	return slog.NewRecord(time.Now(), slog.LevelInfo, "test", 0)
}

func TestMultiHandlerRespectsTargetLevels(t *testing.T) {
	info := &countingHandler{min: slog.LevelInfo}
	errOnly := &countingHandler{min: slog.LevelError}
	m := NewMultiHandler(info, errOnly)

	if err := m.Handle(context.Background(), infoRecord()); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if info.count != 1 {
		t.Errorf("info target handled %d records, want 1", info.count)
	}
	if errOnly.count != 0 {
		t.Errorf("error-only target handled %d records, want 0", errOnly.count)
	}
}

func TestMultiHandlerDeliversPastFailures(t *testing.T) {
	failing := &countingHandler{min: slog.LevelInfo, err: errors.New("sink down")}
	healthy := &countingHandler{min: slog.LevelInfo}
	m := NewMultiHandler(failing, healthy)

	if err := m.Handle(context.Background(), infoRecord()); err == nil {
		t.Error("expected the sink error to surface")
	}
	if healthy.count != 1 {
		t.Errorf("healthy target handled %d records, want 1", healthy.count)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
