package loghandler

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestMultiHandler_FansOutToEveryHandler(t *testing.T) {
	var a, b bytes.Buffer
	m := NewMultiHandler(newTestHandler(&a, false), newTestHandler(&b, false))

	r := slog.NewRecord(fixedTime(), slog.LevelInfo, "reload complete", 0)
	if err := m.Handle(context.Background(), r); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(a.String(), "reload complete") || !strings.Contains(b.String(), "reload complete") {
		t.Errorf("expected both handlers to receive the record, got %q and %q", a.String(), b.String())
	}
}

func TestMultiHandler_SkipsHandlersBelowTheirLevel(t *testing.T) {
	var a, b bytes.Buffer
	quiet := NewHandler(&a, &Options{Level: slog.LevelError})
	verbose := NewHandler(&b, &Options{Level: slog.LevelDebug})
	m := NewMultiHandler(quiet, verbose)

	r := slog.NewRecord(fixedTime(), slog.LevelInfo, "reload complete", 0)
	if err := m.Handle(context.Background(), r); err != nil {
		t.Fatal(err)
	}

	if a.Len() != 0 {
		t.Errorf("expected the error-only handler to stay silent, got %q", a.String())
	}
	if b.Len() == 0 {
		t.Error("expected the debug handler to receive the record")
	}
}

func TestMultiHandler_FiltersNilHandlers(t *testing.T) {
	var buf bytes.Buffer
	m := NewMultiHandler(newTestHandler(&buf, false), nil)
	if len(m.handlers) != 1 {
		t.Fatalf("expected nil handler to be filtered, got %d handlers", len(m.handlers))
	}

	r := slog.NewRecord(fixedTime(), slog.LevelInfo, "msg", 0)
	if err := m.Handle(context.Background(), r); err != nil {
		t.Fatal(err)
	}
}

func TestMultiHandler_EnabledIfAnyHandlerIsEnabled(t *testing.T) {
	quiet := NewHandler(&bytes.Buffer{}, &Options{Level: slog.LevelError})
	verbose := NewHandler(&bytes.Buffer{}, &Options{Level: slog.LevelDebug})
	m := NewMultiHandler(quiet, verbose)

	if !m.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected MultiHandler to report enabled when any wrapped handler is")
	}
}

func TestMultiHandler_WithAttrsAppliesToEveryHandler(t *testing.T) {
	var a, b bytes.Buffer
	m := NewMultiHandler(newTestHandler(&a, false), newTestHandler(&b, false))
	withAttrs := m.WithAttrs([]slog.Attr{slog.String("component", "sync")})

	r := slog.NewRecord(fixedTime(), slog.LevelInfo, "msg", 0)
	if err := withAttrs.Handle(context.Background(), r); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(a.String(), "component=sync") || !strings.Contains(b.String(), "component=sync") {
		t.Errorf("expected prebound attr on both handlers, got %q and %q", a.String(), b.String())
	}
}

func TestMultiHandler_WithGroupAppliesToEveryHandler(t *testing.T) {
	var a, b bytes.Buffer
	m := NewMultiHandler(newTestHandler(&a, false), newTestHandler(&b, false))
	grouped := m.WithGroup("lock")

	r := slog.NewRecord(fixedTime(), slog.LevelInfo, "msg", 0)
	r.AddAttrs(slog.String("path", "/repo/.lock"))
	if err := grouped.Handle(context.Background(), r); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(a.String(), "lock.path=") || !strings.Contains(b.String(), "lock.path=") {
		t.Errorf("expected grouped attr on both handlers, got %q and %q", a.String(), b.String())
	}
}
