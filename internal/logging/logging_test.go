package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hopper/internal/games/runner"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    log.Level
		wantErr bool
	}{
		{"", log.InfoLevel, false},
		{"debug", log.DebugLevel, false},
		{"WARN", log.WarnLevel, false},
		{"error", log.ErrorLevel, false},
		{"loud", log.InfoLevel, true},
	}

	for _, tc := range tests {
		got, err := ParseLevel(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, expected %v", tc.in, got, tc.want)
		}
	}
}

func TestLifecycleNotifier(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "test", log.InfoLevel)
	n := Lifecycle(logger, "user", "alice")

	n.Notify(runner.Event{From: runner.StateIdle, To: runner.StateRunning, Reason: runner.ReasonStart})
	if buf.Len() != 0 {
		t.Errorf("start should log at debug only, got %q", buf.String())
	}

	n.Notify(runner.Event{From: runner.StateRunning, To: runner.StateEnded, Reason: runner.ReasonCollision, Score: 7})
	out := buf.String()
	for _, want := range []string{"run ended", "collision", "score=7", "user=alice", "test"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}
