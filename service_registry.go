package main

import (
	"context"
	"fmt"
	"sync"
)

// Service 앱 서비스의 생명주기 인터페이스
type Service interface {
	// Name 로그와 오류에 쓰는 서비스 이름
	Name() string
	// Initialize 모든 서비스가 등록된 뒤 등록 순서대로 호출된다
	Initialize(ctx context.Context) error
	// Shutdown 자원을 해제한다
	Shutdown() error
}

type serviceEntry struct {
	service  Service
	critical bool // 초기화 실패 시 앱 시작 중단
}

// ServiceRegistry 등록 순서를 기억하는 서비스 목록
type ServiceRegistry struct {
	ctx      context.Context
	logger   func(string)
	services []serviceEntry
	byName   map[string]Service
	mu       sync.RWMutex
}

// NewServiceRegistry 새 레지스트리를 만든다. logger 는 nil 이어도 된다.
func NewServiceRegistry(ctx context.Context, logger func(string)) *ServiceRegistry {
	return &ServiceRegistry{
		ctx:    ctx,
		logger: logger,
		byName: make(map[string]Service),
	}
}

// Register 일반 서비스를 등록한다. 이름이 겹치면 오류.
func (r *ServiceRegistry) Register(svc Service) error {
	return r.register(svc, false)
}

// RegisterCritical 초기화에 실패하면 시작을 막는 서비스를 등록한다.
func (r *ServiceRegistry) RegisterCritical(svc Service) error {
	return r.register(svc, true)
}

func (r *ServiceRegistry) register(svc Service, critical bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := svc.Name()
	if _, exists := r.byName[name]; exists {
		return WrapError("ServiceRegistry", "Register", fmt.Errorf("service %q already registered", name))
	}
	r.services = append(r.services, serviceEntry{service: svc, critical: critical})
	r.byName[name] = svc
	return nil
}

// Get 이름으로 서비스를 찾는다.
func (r *ServiceRegistry) Get(name string) (Service, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	svc, ok := r.byName[name]
	return svc, ok
}

// Names 등록 순서대로 서비스 이름을 돌려준다.
func (r *ServiceRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.services))
	for i, e := range r.services {
		names[i] = e.service.Name()
	}
	return names
}

func (r *ServiceRegistry) snapshot() []serviceEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]serviceEntry(nil), r.services...)
}

// InitializeAll 등록 순서대로 초기화한다. 중요 서비스가 실패하면 바로
// 오류를 돌려주고, 일반 서비스의 실패는 로그만 남긴다.
func (r *ServiceRegistry) InitializeAll() error {
	for _, entry := range r.snapshot() {
		name := entry.service.Name()
		if err := entry.service.Initialize(r.ctx); err != nil {
			if entry.critical {
				r.log(fmt.Sprintf("Critical service %q failed to initialize: %v", name, err))
				return WrapError("ServiceRegistry", "InitializeAll", fmt.Errorf("critical service %q failed: %w", name, err))
			}
			r.log(fmt.Sprintf("Service %q failed to initialize: %v", name, err))
		}
	}
	return nil
}

// ShutdownAll 등록의 역순으로 종료한다. 오류는 로그만 남기고 계속한다.
func (r *ServiceRegistry) ShutdownAll() {
	entries := r.snapshot()
	for i := len(entries) - 1; i >= 0; i-- {
		svc := entries[i].service
		if err := svc.Shutdown(); err != nil {
			r.log(fmt.Sprintf("Service %q shutdown error: %v", svc.Name(), err))
		}
	}
}

func (r *ServiceRegistry) log(msg string) {
	if r.logger != nil {
		r.logger(msg)
	}
}
