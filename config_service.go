package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"birthdayppt/config"
)

// ConfigService 설정 파일(~/BirthdayPPT/config.json)과 환경 변수 재정의를 관리한다.
type ConfigService struct {
	storageDir string
	logger     func(string)
	callbacks  []func(config.Config)
	locale     func() string
	mu         sync.RWMutex
}

// NewConfigService 새 ConfigService 를 만든다.
func NewConfigService(logger func(string)) *ConfigService {
	return &ConfigService{logger: logger, locale: systemLocale}
}

// Name 서비스 이름
func (cs *ConfigService) Name() string {
	return "config"
}

// Initialize 저장 폴더를 만들고 .env 파일을 읽어 들인다.
func (cs *ConfigService) Initialize(ctx context.Context) error {
	dir, err := cs.GetStorageDir()
	if err != nil {
		return WrapError("config", "Initialize", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return WrapError("config", "Initialize", WrapOperationError("create storage dir", err))
	}
	if err := config.LoadEnvFiles(filepath.Join(dir, ".env"), ".env"); err != nil {
		return WrapError("config", "Initialize", WrapOperationError("load .env", err))
	}
	cs.log(fmt.Sprintf("ConfigService initialized, storage dir: %s", dir))
	return nil
}

// Shutdown 할 일 없음
func (cs *ConfigService) Shutdown() error {
	return nil
}

// GetStorageDir 저장 폴더 (기본값 ~/BirthdayPPT)
func (cs *ConfigService) GetStorageDir() (string, error) {
	cs.mu.RLock()
	sd := cs.storageDir
	cs.mu.RUnlock()
	if sd != "" {
		return sd, nil
	}
	return config.DefaultStorageDir()
}

// SetStorageDir 저장 폴더를 바꾼다 (테스트용)
func (cs *ConfigService) SetStorageDir(dir string) {
	cs.mu.Lock()
	cs.storageDir = dir
	cs.mu.Unlock()
}

// GetConfig 디스크의 설정을 읽는다. 파일이 없으면 기본값에 시스템 로캘의 언어.
func (cs *ConfigService) GetConfig() (config.Config, error) {
	dir, err := cs.GetStorageDir()
	if err != nil {
		return config.Config{}, WrapError("config", "GetConfig", err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return config.Config{}, WrapError("config", "GetConfig", err)
	}
	if _, err := os.Stat(config.Path(dir)); os.IsNotExist(err) && cs.locale != nil {
		cfg.Language = languageForLocale(cs.locale())
	}
	return cfg, nil
}

// GetEffectiveConfig 디스크 설정에 BIRTHDAY_PPT_* 환경 변수를 덮어쓴 설정
func (cs *ConfigService) GetEffectiveConfig() (config.Config, error) {
	cfg, err := cs.GetConfig()
	if err != nil {
		return config.Config{}, err
	}
	return config.ApplyEnv(cfg, nil), nil
}

// SaveConfig 설정을 검사해 저장하고 등록된 콜백을 호출한다.
func (cs *ConfigService) SaveConfig(cfg config.Config) error {
	if cfg.TemplatePath != "" {
		info, err := os.Stat(cfg.TemplatePath)
		if err != nil {
			return WrapError("config", "SaveConfig", fmt.Errorf("template file does not exist: %s", cfg.TemplatePath))
		}
		if info.IsDir() {
			return WrapError("config", "SaveConfig", fmt.Errorf("template path is a directory: %s", cfg.TemplatePath))
		}
	}

	dir, err := cs.GetStorageDir()
	if err != nil {
		return WrapError("config", "SaveConfig", err)
	}
	if err := config.Save(dir, cfg); err != nil {
		return WrapError("config", "SaveConfig", err)
	}
	cs.log("Configuration saved to disk")

	cs.NotifyConfigChanged(cfg)
	return nil
}

// RememberDirs 마지막으로 쓴 엑셀/저장 폴더를 기록한다. 빈 값은 무시한다.
func (cs *ConfigService) RememberDirs(excelDir, saveDir string) error {
	cfg, err := cs.GetConfig()
	if err != nil {
		return err
	}
	if excelDir != "" {
		cfg.LastExcelDir = excelDir
	}
	if saveDir != "" {
		cfg.LastSaveDir = saveDir
	}
	return cs.SaveConfig(cfg)
}

// OnConfigChanged 설정 변경 콜백을 등록한다.
func (cs *ConfigService) OnConfigChanged(callback func(config.Config)) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.callbacks = append(cs.callbacks, callback)
}

// NotifyConfigChanged 등록된 콜백을 모두 호출한다.
func (cs *ConfigService) NotifyConfigChanged(cfg config.Config) {
	cs.mu.RLock()
	cbs := make([]func(config.Config), len(cs.callbacks))
	copy(cbs, cs.callbacks)
	cs.mu.RUnlock()

	for _, cb := range cbs {
		cb(cfg)
	}
}

func (cs *ConfigService) log(msg string) {
	if cs.logger != nil {
		cs.logger(msg)
	}
}
