package main

import (
	"errors"
	"fmt"

	"birthdayppt/birthday"
	"birthdayppt/export"
)

// ServiceError 서비스 이름과 작업을 붙인 오류
type ServiceError struct {
	Service   string // 서비스 이름
	Operation string // 작업 이름
	Err       error  // 원래 오류
}

// Error 형식: [Service.Operation] error message
func (e *ServiceError) Error() string {
	return fmt.Sprintf("[%s.%s] %v", e.Service, e.Operation, e.Err)
}

// Unwrap errors.Is/errors.As 체인 조회 지원
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// WrapError 서비스 컨텍스트를 붙인다. err 가 nil 이면 nil.
func WrapError(service, operation string, err error) error {
	if err == nil {
		return nil
	}
	return &ServiceError{Service: service, Operation: operation, Err: err}
}

// WrapOperationError wraps an error with a consistent "failed to {operation}: %w" format.
func WrapOperationError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// userMessage returns the text shown in a dialog for err. Validation and
// generation errors already carry a translated message; anything else is
// shown as is.
func userMessage(err error) string {
	var ve *birthday.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var re *export.RenderError
	if errors.As(err, &re) {
		return re.Error()
	}
	var se *ServiceError
	if errors.As(err, &se) && se.Err != nil {
		return se.Err.Error()
	}
	return err.Error()
}
