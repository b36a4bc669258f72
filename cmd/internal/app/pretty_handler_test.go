package app

import (
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestPrettyHandlerOutput(t *testing.T) {
	var buf strings.Builder
	log := slog.New(newPrettyHandler(&buf, slog.LevelDebug))

	log.Info("server.start", "addr", ":8080")

	out := buf.String()
	if !strings.Contains(out, "server.start") {
		t.Fatalf("missing message: %q", out)
	}
	if !strings.Contains(out, "addr") || !strings.Contains(out, ":8080") {
		t.Fatalf("missing attr: %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatal("line must end with newline")
	}
}

func TestPrettyHandlerLevelFilter(t *testing.T) {
	var buf strings.Builder
	log := slog.New(newPrettyHandler(&buf, slog.LevelWarn))

	log.Info("dropped")
	log.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info must be filtered: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn must pass: %q", out)
	}
}

func TestPrettyHandlerGroupsAndAttrs(t *testing.T) {
	var buf strings.Builder
	log := slog.New(newPrettyHandler(&buf, slog.LevelDebug)).
		With("service", "recipehub").
		WithGroup("db")

	log.Info("query", "table", "accounts")

	out := buf.String()
	if !strings.Contains(out, "service") {
		t.Fatalf("missing bound attr: %q", out)
	}
	if !strings.Contains(out, "db.table") {
		t.Fatalf("group prefix missing: %q", out)
	}
}

func TestPrettyHandlerEnabled(t *testing.T) {
	h := newPrettyHandler(&strings.Builder{}, slog.LevelInfo)
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("debug must be disabled at info level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("error must be enabled at info level")
	}
}
