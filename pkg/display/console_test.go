package display

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSeverityPrefixes(t *testing.T) {
	buf := &bytes.Buffer{}
	d := NewWriterDisplay(buf, strings.NewReader(""))

	d.Infof("downloader %s", "present")
	d.Warningf("missing %s", "ffmpeg")
	d.Errorf("fetch failed")

	out := buf.String()
	for _, want := range []string{"[INFO]", "downloader present", "[WARN]", "missing ffmpeg", "[ERROR]", "fetch failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPromptReturnsTrimmedLine(t *testing.T) {
	buf := &bytes.Buffer{}
	d := NewWriterDisplay(buf, strings.NewReader("  yes \n"))

	ans, err := d.Prompt("Proceed?")
	if err != nil {
		t.Fatalf("Prompt: %v", err)
	}
	if ans != "yes" {
		t.Errorf("answer = %q, want %q", ans, "yes")
	}
	if !strings.Contains(buf.String(), "Proceed?") {
		t.Errorf("question not written: %s", buf.String())
	}
}

func TestPromptNotLoggedToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "mrig.log")
	d, err := New(ToFile, logPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	dc := d.(*consoleDisplay)
	dc.in = strings.NewReader("ok\n")
	dc.out = &bytes.Buffer{}

	d.Infof("logged line")
	if _, err := d.Prompt("a question"); err != nil {
		t.Fatalf("Prompt: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "logged line") {
		t.Errorf("log file missing info line: %s", b)
	}
	if strings.Contains(string(b), "a question") {
		t.Errorf("prompt leaked into log file: %s", b)
	}
}

func TestFileSinkAppends(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "mrig.log")
	for i := 0; i < 2; i++ {
		d, err := New(ToFile, logPath)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		d.Infof("run")
		if err := d.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}
	b, _ := os.ReadFile(logPath)
	if got := strings.Count(string(b), "run"); got != 2 {
		t.Errorf("expected 2 appended lines, got %d:\n%s", got, b)
	}
}

func TestTaskProgressThrottled(t *testing.T) {
	buf := &bytes.Buffer{}
	d := NewWriterDisplay(buf, strings.NewReader(""))
	task := d.StartTask("fetch")
	for p := 0; p <= 100; p += 2 {
		task.Progress(p, "")
	}
	task.Done()

	lines := strings.Count(buf.String(), "\n")
	if lines > 13 {
		t.Errorf("progress not throttled: %d lines", lines)
	}
	if !strings.Contains(buf.String(), "fetch: done") {
		t.Errorf("missing done line: %s", buf.String())
	}
}
