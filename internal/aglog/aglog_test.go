// Public domain.

package aglog_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/agilescience/agtools/internal/aglog"
)

func TestCritical(t *testing.T) {
	var buf bytes.Buffer
	l := aglog.New(&buf, slog.LevelWarn)
	l.Info("hidden")
	aglog.Critical(l, "catalog unreadable", "file", "x.multi")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatal("info logged at warn level:", out)
	}
	if !strings.Contains(out, "level=CRITICAL") || !strings.Contains(out, "file=x.multi") {
		t.Fatal(out)
	}
}

func TestLevelFor(t *testing.T) {
	for v, want := range map[int]slog.Level{
		-1: slog.LevelWarn,
		0:  slog.LevelWarn,
		1:  slog.LevelInfo,
		2:  slog.LevelDebug,
		3:  slog.LevelDebug,
	} {
		if got := aglog.LevelFor(v); got != want {
			t.Errorf("LevelFor(%d) = %v, want %v", v, got, want)
		}
	}
}
