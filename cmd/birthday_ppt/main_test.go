package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"birthdayppt/config"
	"birthdayppt/export"
	"birthdayppt/i18n"
	"birthdayppt/pptx"

	"github.com/xuri/excelize/v2"
)

func fixedNow() time.Time {
	return time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
}

// isolate points the config lookup at an empty home directory.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", os.Getenv("HOME"))
	t.Setenv(config.EnvTemplate, "")
	t.Setenv(config.EnvLanguage, config.DefaultLanguage)
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr, fixedNow)
	return code, stdout.String(), stderr.String()
}

func writeSheet(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "birthdays.xlsx")
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("failed to build cell name: %v", err)
		}
		r := row
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatalf("failed to set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save sheet: %v", err)
	}
	return path
}

func januarySheet(t *testing.T) string {
	return writeSheet(t, [][]interface{}{
		{"이름", "성별", "생년월일"},
		{"김영희", "여", "1992-01-22"},
		{"홍길동", "남", "1990-01-15"},
	})
}

func TestRun_Usage(t *testing.T) {
	isolate(t)
	if code, _, stderr := runCLI(t); code != 2 || !strings.Contains(stderr, "Usage:") {
		t.Errorf("no args: code %d, stderr %q", code, stderr)
	}
	if code, _, stderr := runCLI(t, "bake"); code != 2 || !strings.Contains(stderr, `unknown command "bake"`) {
		t.Errorf("unknown command: code %d, stderr %q", code, stderr)
	}
	if code, stdout, _ := runCLI(t, "help"); code != 0 || !strings.Contains(stdout, "generate") {
		t.Errorf("help: code %d, stdout %q", code, stdout)
	}
}

func TestRun_Generate(t *testing.T) {
	isolate(t)
	out := t.TempDir()

	code, stdout, stderr := runCLI(t, "generate", "-excel", januarySheet(t), "-out", out)
	if code != 0 {
		t.Fatalf("code %d, stderr %q", code, stderr)
	}
	path := filepath.Join(out, export.OutputName(1))
	if want := i18n.T("generate.success", path); strings.TrimSpace(stdout) != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
	pkg, err := pptx.Open(path)
	if err != nil {
		t.Fatalf("failed to open deck: %v", err)
	}
	if pkg.SlideCount() != 3 {
		t.Errorf("slides = %d, want 3", pkg.SlideCount())
	}
}

func TestRun_Generate_Verbose(t *testing.T) {
	isolate(t)
	code, _, stderr := runCLI(t, "generate", "-v", "-excel", januarySheet(t), "-out", t.TempDir())
	if code != 0 {
		t.Fatalf("code %d, stderr %q", code, stderr)
	}
	if !strings.Contains(stderr, "{month}") {
		t.Errorf("verbose run did not log the template analysis:\n%s", stderr)
	}
}

func TestRun_Generate_Errors(t *testing.T) {
	isolate(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing excel flag", []string{"generate"}, "-excel is required"},
		{"no data rows", []string{"generate", "-excel", writeSheet(t, [][]interface{}{{"이름", "성별", "생년월일"}}), "-out", t.TempDir()}, i18n.T("app.no_birthdays")},
		{"missing column", []string{"generate", "-excel", writeSheet(t, [][]interface{}{{"이름", "생년월일"}, {"홍길동", "1990-01-15"}}), "-out", t.TempDir()}, "성별"},
		{"missing output dir", []string{"generate", "-excel", januarySheet(t), "-out", filepath.Join(t.TempDir(), "gone")}, "gone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			if code != 1 || !strings.Contains(stderr, tt.want) {
				t.Errorf("code %d, stderr %q, want %q", code, stderr, tt.want)
			}
		})
	}
}

func TestRun_Check(t *testing.T) {
	isolate(t)
	code, stdout, stderr := runCLI(t, "check", "-dump", "-excel", januarySheet(t))
	if code != 0 {
		t.Fatalf("code %d, stderr %q", code, stderr)
	}
	for _, want := range []string{
		"이름 | 성별 | 생년월일",
		i18n.T("validate.success"),
		i18n.T("app.month_detected", 1),
		"홍길동\t남\t1990-01-15\t36",
		"김영희\t여\t1992-01-22\t34",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
	// Sorted by day of month.
	if strings.Index(stdout, "홍길동\t") > strings.Index(stdout, "김영희\t") {
		t.Errorf("people not sorted by birthday:\n%s", stdout)
	}
}

func TestRun_Check_Month(t *testing.T) {
	isolate(t)
	path := januarySheet(t)

	code, stdout, stderr := runCLI(t, "check", "-month", "1", "-excel", path)
	if code != 0 {
		t.Fatalf("code %d, stderr %q", code, stderr)
	}
	if !strings.Contains(stdout, "홍길동\t") || !strings.Contains(stdout, "김영희\t") {
		t.Errorf("January listing misses people:\n%s", stdout)
	}

	code, stdout, _ = runCLI(t, "check", "-month", "3", "-excel", path)
	if code != 0 {
		t.Fatalf("code = %d, want 0", code)
	}
	if !strings.Contains(stdout, i18n.T("app.no_birthdays")) || strings.Contains(stdout, "홍길동") {
		t.Errorf("March listing = %q", stdout)
	}

	if code, _, stderr := runCLI(t, "check", "-month", "13", "-excel", path); code != 1 || !strings.Contains(stderr, "-month") {
		t.Errorf("month 13: code %d, stderr %q", code, stderr)
	}
}

func TestRun_Check_MixedMonths(t *testing.T) {
	isolate(t)
	path := writeSheet(t, [][]interface{}{
		{"이름", "성별", "생년월일"},
		{"홍길동", "남", "1990-01-15"},
		{"김영희", "여", "1992-02-22"},
	})
	if code, _, _ := runCLI(t, "check", "-excel", path); code != 1 {
		t.Errorf("code = %d, want 1", code)
	}
}

func TestRun_TemplateAndInspect(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "template.pptx")

	if code, _, stderr := runCLI(t, "template", path); code != 0 {
		t.Fatalf("template: code %d, stderr %q", code, stderr)
	}
	pkg, err := pptx.Open(path)
	if err != nil {
		t.Fatalf("failed to open template: %v", err)
	}
	if pkg.SlideCount() != 2 {
		t.Errorf("slides = %d, want 2", pkg.SlideCount())
	}

	code, written, stderr := runCLI(t, "inspect", "-template", path)
	if code != 0 {
		t.Fatalf("inspect: code %d, stderr %q", code, stderr)
	}
	_, bundled, _ := runCLI(t, "inspect")
	if written != bundled {
		t.Errorf("written template differs from the bundled one:\n%s\n---\n%s", written, bundled)
	}
	for _, want := range []string{i18n.T("inspect.slide_count", 2), "{name}", "{month}"} {
		if !strings.Contains(written, want) {
			t.Errorf("inspect output missing %q:\n%s", want, written)
		}
	}

	if code, _, _ := runCLI(t, "template"); code != 1 {
		t.Errorf("template without path: code %d, want 1", code)
	}
}
