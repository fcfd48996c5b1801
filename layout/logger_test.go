package layout

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestSetLoggerReceivesSearchSummary(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	_, err := Layout(Request{Text: "hello", Width: 200, Height: 100, BorderPercent: 2, Measurer: &monoMeasurer{}})
	if err != nil {
		t.Fatalf("Layout error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "font size search") || !strings.Contains(out, "probes=") {
		t.Fatalf("expected search summary in log, got %q", out)
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("nil logger should restore the silent default")
	}
}
