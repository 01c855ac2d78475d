package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name           string
		verbose, quiet bool
		wantDebug      bool
		wantInfo       bool
	}{
		{"default", false, false, false, true},
		{"verbose", true, false, true, true},
		{"quiet", false, true, false, false},
		{"quiet wins", true, true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(&buf, tt.verbose, tt.quiet)
			log.Debug("debug-line")
			log.Info("info-line")
			log.Error("error-line")

			out := buf.String()
			if got := strings.Contains(out, "debug-line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "info-line"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tt.wantInfo)
			}
			if !strings.Contains(out, "error-line") {
				t.Error("error not logged")
			}
		})
	}
}

func TestLogNotifier(t *testing.T) {
	var logBuf, out bytes.Buffer
	n := LogNotifier{Logger: New(&logBuf, false, false), Out: &out}
	n.Notice("Default styling could not be located.")

	if !strings.Contains(logBuf.String(), "Default styling could not be located.") {
		t.Errorf("log = %q", logBuf.String())
	}
	if out.String() != "Default styling could not be located.\n" {
		t.Errorf("out = %q", out.String())
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Notice("a")
	r.Notice("b")
	got := r.Notices()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Notices = %v", got)
	}
	got[0] = "changed"
	if r.Notices()[0] != "a" {
		t.Error("Notices exposes internal slice")
	}
}
