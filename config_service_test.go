package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"birthdayppt/config"
)

func newTestConfigService(t *testing.T) *ConfigService {
	t.Helper()
	cs := NewConfigService(func(msg string) { t.Log(msg) })
	cs.SetStorageDir(filepath.Join(t.TempDir(), "BirthdayPPT"))
	cs.locale = func() string { return "ko_KR.UTF-8" }
	return cs
}

func TestConfigService_Initialize(t *testing.T) {
	cs := newTestConfigService(t)
	if err := cs.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	dir, _ := cs.GetStorageDir()
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("storage dir missing after Initialize: %v", err)
	}
	if cs.Name() != "config" || cs.Shutdown() != nil {
		t.Error("unexpected Name or Shutdown result")
	}
}

func TestConfigService_GetStorageDir_Default(t *testing.T) {
	dir, err := NewConfigService(nil).GetStorageDir()
	if err != nil {
		t.Fatalf("GetStorageDir failed: %v", err)
	}
	want, _ := config.DefaultStorageDir()
	if dir != want {
		t.Errorf("GetStorageDir() = %q, want %q", dir, want)
	}
}

func TestConfigService_GetConfig_Defaults(t *testing.T) {
	cs := newTestConfigService(t)
	cfg, err := cs.GetConfig()
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if cfg.Language != config.DefaultLanguage || cfg.FontFamily != config.DefaultFontFamily {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.TemplatePath != "" {
		t.Errorf("TemplatePath = %q, want the bundled template", cfg.TemplatePath)
	}
}

func TestConfigService_SaveAndNotify(t *testing.T) {
	cs := newTestConfigService(t)
	var notified []config.Config
	cs.OnConfigChanged(func(cfg config.Config) { notified = append(notified, cfg) })

	cfg, _ := cs.GetConfig()
	cfg.FontFamily = "나눔고딕"
	cfg.Language = "English"
	if err := cs.SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := cs.GetConfig()
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if loaded.FontFamily != "나눔고딕" || loaded.Language != "English" {
		t.Errorf("loaded = %+v", loaded)
	}
	if len(notified) != 1 || notified[0].FontFamily != "나눔고딕" {
		t.Errorf("callbacks got %+v", notified)
	}
}

func TestConfigService_SaveRejectsMissingTemplate(t *testing.T) {
	cs := newTestConfigService(t)
	cfg, _ := cs.GetConfig()
	cfg.TemplatePath = filepath.Join(t.TempDir(), "nope.pptx")

	err := cs.SaveConfig(cfg)
	if err == nil || !strings.Contains(err.Error(), "template file does not exist") {
		t.Fatalf("err = %v", err)
	}
	if _, statErr := os.Stat(config.Path(cs.storageDir)); !os.IsNotExist(statErr) {
		t.Error("config file was written")
	}
}

func TestConfigService_RememberDirs(t *testing.T) {
	cs := newTestConfigService(t)
	if err := cs.RememberDirs("/data/excel", ""); err != nil {
		t.Fatalf("RememberDirs failed: %v", err)
	}
	if err := cs.RememberDirs("", "/data/out"); err != nil {
		t.Fatalf("RememberDirs failed: %v", err)
	}
	cfg, _ := cs.GetConfig()
	if cfg.LastExcelDir != "/data/excel" || cfg.LastSaveDir != "/data/out" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestConfigService_EffectiveConfigUsesEnv(t *testing.T) {
	cs := newTestConfigService(t)
	t.Setenv(config.EnvFont, "굴림")
	t.Setenv(config.EnvDetailedLog, "true")

	cfg, err := cs.GetEffectiveConfig()
	if err != nil {
		t.Fatalf("GetEffectiveConfig failed: %v", err)
	}
	if cfg.FontFamily != "굴림" || !cfg.DetailedLog {
		t.Errorf("cfg = %+v", cfg)
	}
	stored, _ := cs.GetConfig()
	if stored.FontFamily != config.DefaultFontFamily {
		t.Errorf("stored font = %q, env must not leak into GetConfig", stored.FontFamily)
	}
}

func TestConfigService_InitializeLoadsDotEnv(t *testing.T) {
	cs := newTestConfigService(t)
	dir, _ := cs.GetStorageDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(config.EnvLanguage+"=English\n"), 0644); err != nil {
		t.Fatal(err)
	}
	// t.Setenv restores the variable afterwards; unsetting lets the file win.
	t.Setenv(config.EnvLanguage, "")
	os.Unsetenv(config.EnvLanguage)

	if err := cs.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if got := os.Getenv(config.EnvLanguage); got != "English" {
		t.Errorf("%s = %q, want English", config.EnvLanguage, got)
	}
}

func TestConfigService_GetConfig_LanguageFromLocale(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"ko_KR.UTF-8", config.DefaultLanguage},
		{"ko-KR", config.DefaultLanguage},
		{"en_US.UTF-8", "English"},
		{"en-GB", "English"},
		{"ja-JP", config.DefaultLanguage},
		{"", config.DefaultLanguage},
	}
	for _, tt := range tests {
		cs := newTestConfigService(t)
		cs.locale = func() string { return tt.locale }
		cfg, err := cs.GetConfig()
		if err != nil {
			t.Fatalf("GetConfig failed: %v", err)
		}
		if cfg.Language != tt.want {
			t.Errorf("locale %q: Language = %q, want %q", tt.locale, cfg.Language, tt.want)
		}
	}

	// A saved config keeps its language whatever the locale.
	cs := newTestConfigService(t)
	cfg := config.Default("")
	if err := cs.SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	cs.locale = func() string { return "en_US" }
	if got, _ := cs.GetConfig(); got.Language != config.DefaultLanguage {
		t.Errorf("saved Language = %q, want %q", got.Language, config.DefaultLanguage)
	}
}
