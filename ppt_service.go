package main

import (
	"context"
	"fmt"
	"sync"

	"birthdayppt/birthday"
	"birthdayppt/config"
	"birthdayppt/export"
)

// PPTService 현재 설정으로 만든 export.BirthdayPPTService 를 들고 있다가
// 설정이 바뀌면 새로 만든다.
type PPTService struct {
	configService *ConfigService
	log           export.Logger
	logger        func(string)

	mu  sync.RWMutex
	gen *export.BirthdayPPTService
}

// NewPPTService 새 PPTService 를 만든다.
func NewPPTService(cs *ConfigService, log export.Logger, logger func(string)) *PPTService {
	return &PPTService{configService: cs, log: log, logger: logger}
}

// Name 서비스 이름
func (s *PPTService) Name() string {
	return "ppt"
}

// Initialize 현재 설정으로 생성기를 준비하고 설정 변경을 구독한다.
func (s *PPTService) Initialize(ctx context.Context) error {
	cfg, err := s.configService.GetEffectiveConfig()
	if err != nil {
		return WrapError("ppt", "Initialize", err)
	}
	s.apply(cfg)
	s.configService.OnConfigChanged(func(cfg config.Config) {
		// 환경 변수 재정의를 다시 입힌다
		s.apply(config.ApplyEnv(cfg, nil))
	})
	return nil
}

// Shutdown 할 일 없음
func (s *PPTService) Shutdown() error {
	return nil
}

func (s *PPTService) apply(cfg config.Config) {
	gen := export.NewBirthdayPPTService(cfg, s.log)
	s.mu.Lock()
	s.gen = gen
	s.mu.Unlock()
	if s.logger != nil {
		template := cfg.TemplatePath
		if template == "" {
			template = "(bundled)"
		}
		s.logger(fmt.Sprintf("PPT generator configured: template=%s font=%s", template, cfg.FontFamily))
	}
}

// Generate 덱을 만들어 saveDir 에 저장하고 경로를 돌려준다.
func (s *PPTService) Generate(month int, people []birthday.Person, saveDir string) (string, error) {
	s.mu.RLock()
	gen := s.gen
	s.mu.RUnlock()
	if gen == nil {
		return "", WrapError("ppt", "Generate", fmt.Errorf("service not initialized"))
	}
	path, err := gen.GeneratePPT(month, people, saveDir)
	return path, WrapError("ppt", "Generate", err)
}
