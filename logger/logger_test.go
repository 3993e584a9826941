package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestInit_CreatesNumberedLogFiles(t *testing.T) {
	dir := t.TempDir()

	first := NewLogger()
	if err := first.Init(dir); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	first.Log("hello")
	first.Close()

	second := NewLogger()
	if err := second.Init(dir); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer second.Close()

	matches, _ := filepath.Glob(filepath.Join(dir, "birthdayppt_*.log"))
	if len(matches) != 2 {
		t.Fatalf("expected 2 log files, got %v", matches)
	}
	if !strings.HasSuffix(second.Path(), "_2.log") {
		t.Errorf("second run should be numbered 2, got %s", second.Path())
	}
}

func TestLogLineFormat(t *testing.T) {
	dir := t.TempDir()
	l := NewLogger()
	if err := l.Init(dir); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	path := l.Path()
	l.Logf("slides=%d", 3)
	l.Warnf("color %s", "schemeClr")
	l.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !regexp.MustCompile(`(?m)^\[\d{2}:\d{2}:\d{2}\.\d{3}\] slides=3$`).MatchString(content) {
		t.Errorf("info line not in expected format:\n%s", content)
	}
	if !strings.Contains(content, "WARNING color schemeClr") {
		t.Errorf("warning line missing:\n%s", content)
	}
	if !strings.Contains(content, "App Started") || !strings.Contains(content, "App stopped") {
		t.Errorf("start/stop markers missing:\n%s", content)
	}
}

func TestConsoleTeeAndRunID(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger()
	l.SetConsole(&buf)
	l.SetRunID("abc")
	l.Log("generate")
	l.Debugf("hidden")
	l.SetDebug(true)
	l.Debugf("shown")

	out := buf.String()
	if !strings.Contains(out, "generate run=abc") {
		t.Errorf("run id missing: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug output should be off by default: %q", out)
	}
	if !strings.Contains(out, "DEBUG shown") {
		t.Errorf("debug output missing: %q", out)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Log("x")
	l.Logf("x %d", 1)
	l.Warnf("x")
	l.Errorf("x")
	l.Debugf("x")
}
