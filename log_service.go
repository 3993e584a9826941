package main

import (
	"context"

	"birthdayppt/config"
	"birthdayppt/i18n"
	"birthdayppt/logger"

	"github.com/google/uuid"
)

// LogService 설정의 로그 폴더로 파일 로그를 열고 언어 설정을 맞춘다.
type LogService struct {
	configService *ConfigService
	logger        *logger.Logger
}

// NewLogService 새 LogService 를 만든다.
func NewLogService(cs *ConfigService, l *logger.Logger) *LogService {
	return &LogService{configService: cs, logger: l}
}

// Name 서비스 이름
func (s *LogService) Name() string {
	return "log"
}

// Initialize 로그 파일을 열고 실행 ID 를 붙인다.
func (s *LogService) Initialize(ctx context.Context) error {
	cfg, err := s.configService.GetEffectiveConfig()
	if err != nil {
		return WrapError("log", "Initialize", err)
	}
	s.apply(cfg)
	s.logger.SetRunID(uuid.NewString()[:8])
	if err := s.logger.Init(cfg.LogDir); err != nil {
		return WrapError("log", "Initialize", err)
	}
	s.configService.OnConfigChanged(func(cfg config.Config) {
		s.apply(config.ApplyEnv(cfg, nil))
	})
	return nil
}

func (s *LogService) apply(cfg config.Config) {
	i18n.SyncLanguage(cfg.Language)
	s.logger.SetDebug(cfg.DetailedLog)
}

// Shutdown 로그 파일을 닫는다.
func (s *LogService) Shutdown() error {
	s.logger.Close()
	return nil
}
