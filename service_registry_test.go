package main

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

type mockService struct {
	name        string
	initErr     error
	shutdownErr error
	events      *[]string
}

func (m *mockService) Name() string { return m.name }

func (m *mockService) Initialize(ctx context.Context) error {
	if m.events != nil {
		*m.events = append(*m.events, "init:"+m.name)
	}
	return m.initErr
}

func (m *mockService) Shutdown() error {
	if m.events != nil {
		*m.events = append(*m.events, "shutdown:"+m.name)
	}
	return m.shutdownErr
}

func newTestLogger() (func(string), *[]string) {
	var logs []string
	return func(msg string) { logs = append(logs, msg) }, &logs
}

func TestRegister_DuplicateName(t *testing.T) {
	reg := NewServiceRegistry(context.Background(), nil)
	if err := reg.Register(&mockService{name: "config"}); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	err := reg.RegisterCritical(&mockService{name: "config"})
	var se *ServiceError
	if !errors.As(err, &se) || se.Operation != "Register" {
		t.Fatalf("err = %v, want a Register ServiceError", err)
	}
	if got := reg.Names(); !reflect.DeepEqual(got, []string{"config"}) {
		t.Errorf("Names() = %v", got)
	}
}

func TestGet(t *testing.T) {
	reg := NewServiceRegistry(context.Background(), nil)
	svc := &mockService{name: "ppt"}
	_ = reg.Register(svc)

	got, ok := reg.Get("ppt")
	if !ok || got != svc {
		t.Errorf("Get(ppt) = %v, %v", got, ok)
	}
	if _, ok := reg.Get("missing"); ok {
		t.Error("Get(missing) found a service")
	}
}

func TestInitializeAll_NonCriticalFailureContinues(t *testing.T) {
	var events []string
	logger, logs := newTestLogger()
	reg := NewServiceRegistry(context.Background(), logger)
	_ = reg.RegisterCritical(&mockService{name: "config", events: &events})
	_ = reg.Register(&mockService{name: "ppt", initErr: fmt.Errorf("no template"), events: &events})
	_ = reg.Register(&mockService{name: "extra", events: &events})

	if err := reg.InitializeAll(); err != nil {
		t.Fatalf("InitializeAll failed: %v", err)
	}
	want := []string{"init:config", "init:ppt", "init:extra"}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
	if len(*logs) != 1 || !strings.Contains((*logs)[0], "no template") {
		t.Errorf("logs = %v", *logs)
	}
}

func TestInitializeAll_CriticalFailureStops(t *testing.T) {
	var events []string
	cause := fmt.Errorf("disk full")
	reg := NewServiceRegistry(context.Background(), nil)
	_ = reg.RegisterCritical(&mockService{name: "config", initErr: cause, events: &events})
	_ = reg.Register(&mockService{name: "ppt", events: &events})

	err := reg.InitializeAll()
	if !errors.Is(err, cause) {
		t.Fatalf("err = %v, want it to wrap %v", err, cause)
	}
	if !reflect.DeepEqual(events, []string{"init:config"}) {
		t.Errorf("events = %v", events)
	}
}

func TestShutdownAll_ReverseOrderAndContinues(t *testing.T) {
	var events []string
	logger, logs := newTestLogger()
	reg := NewServiceRegistry(context.Background(), logger)
	_ = reg.Register(&mockService{name: "config", events: &events})
	_ = reg.Register(&mockService{name: "ppt", shutdownErr: fmt.Errorf("busy"), events: &events})

	reg.ShutdownAll()
	want := []string{"shutdown:ppt", "shutdown:config"}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
	if len(*logs) != 1 || !strings.Contains((*logs)[0], "busy") {
		t.Errorf("logs = %v", *logs)
	}
}

func TestRegistry_OrderProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		names := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z]{1,8}`), 1, 10, func(s string) string { return s }).Draw(t, "names")

		var events []string
		reg := NewServiceRegistry(context.Background(), nil)
		for _, n := range names {
			if err := reg.Register(&mockService{name: n, events: &events}); err != nil {
				t.Fatalf("Register(%q) failed: %v", n, err)
			}
		}
		if err := reg.InitializeAll(); err != nil {
			t.Fatalf("InitializeAll failed: %v", err)
		}
		reg.ShutdownAll()

		if len(events) != 2*len(names) {
			t.Fatalf("got %d events, want %d", len(events), 2*len(names))
		}
		for i, n := range names {
			if events[i] != "init:"+n {
				t.Fatalf("event %d = %q, want init:%s", i, events[i], n)
			}
			if events[len(events)-1-i] != "shutdown:"+n {
				t.Fatalf("shutdown order wrong at %s: %v", n, events)
			}
		}
	})
}
