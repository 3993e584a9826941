package main

import (
	"errors"
	"fmt"
	"testing"

	"birthdayppt/birthday"
	"birthdayppt/export"
)

func TestServiceError_Error(t *testing.T) {
	tests := []struct {
		name      string
		service   string
		operation string
		err       error
		want      string
	}{
		{"basic", "config", "Load", fmt.Errorf("file not found"), "[config.Load] file not found"},
		{"empty service", "", "Save", fmt.Errorf("disk full"), "[.Save] disk full"},
		{"empty operation", "ppt", "", fmt.Errorf("timeout"), "[ppt.] timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se := &ServiceError{Service: tt.service, Operation: tt.operation, Err: tt.err}
			if got := se.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	if WrapError("config", "Load", nil) != nil {
		t.Error("WrapError(nil) should be nil")
	}
	sentinel := errors.New("sentinel")
	err := WrapError("config", "Load", sentinel)
	if !errors.Is(err, sentinel) {
		t.Error("errors.Is lost the wrapped error")
	}
	var se *ServiceError
	if !errors.As(err, &se) || se.Service != "config" {
		t.Errorf("errors.As = %+v", se)
	}
}

func TestWrapOperationError(t *testing.T) {
	if WrapOperationError("load config", nil) != nil {
		t.Error("nil error should stay nil")
	}
	sentinel := errors.New("boom")
	err := WrapOperationError("load config", sentinel)
	if err.Error() != "failed to load config: boom" || !errors.Is(err, sentinel) {
		t.Errorf("err = %v", err)
	}
}

func TestUserMessage(t *testing.T) {
	validation := &birthday.ValidationError{Kind: birthday.KindMixedMonths, Message: "생년월일이 여러 달에 걸쳐 있습니다: 1월, 2월"}
	render := &export.RenderError{Kind: export.KindSave, Stage: export.StageSave, Message: "저장 경로가 존재하지 않습니다: /x"}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", WrapError("app", "SelectExcelFile", validation), validation.Message},
		{"render", WrapError("ppt", "Generate", render), render.Message},
		{"service", WrapError("config", "Load", errors.New("bad json")), "bad json"},
		{"plain", errors.New("plain"), "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := userMessage(tt.err); got != tt.want {
				t.Errorf("userMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
