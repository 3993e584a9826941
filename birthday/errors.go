package birthday

import (
	"fmt"
	"sort"
	"strings"

	"birthdayppt/i18n"
)

// ErrorKind classifies why a sheet was rejected.
type ErrorKind int

const (
	KindMissingColumns ErrorKind = iota + 1
	KindInvalidDateFormat
	KindMixedMonths
	KindUnreadable
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissingColumns:
		return "MissingColumns"
	case KindInvalidDateFormat:
		return "InvalidDateFormat"
	case KindMixedMonths:
		return "MixedMonths"
	case KindUnreadable:
		return "Unreadable"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// InvalidDate is one birth-date cell that did not parse.
type InvalidDate struct {
	Name  string
	Value string
}

// ValidationError is returned by Validate. Message is ready to show to a user.
type ValidationError struct {
	Kind    ErrorKind
	Message string
	Missing []string      // KindMissingColumns
	Invalid []InvalidDate // KindInvalidDateFormat
	Months  []int         // KindMixedMonths, ascending
	Err     error         // KindUnreadable
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func missingColumnsError(missing []string) *ValidationError {
	return &ValidationError{
		Kind:    KindMissingColumns,
		Message: i18n.T("validate.missing_columns", strings.Join(missing, ", ")),
		Missing: missing,
	}
}

func invalidDatesError(invalid []InvalidDate) *ValidationError {
	lines := make([]string, len(invalid))
	for i, d := range invalid {
		lines[i] = d.Name + ": " + d.Value
	}
	return &ValidationError{
		Kind:    KindInvalidDateFormat,
		Message: i18n.T("validate.invalid_dates", strings.Join(lines, "\n")),
		Invalid: invalid,
	}
}

func mixedMonthsError(set map[int]struct{}) *ValidationError {
	months := make([]int, 0, len(set))
	for m := range set {
		months = append(months, m)
	}
	sort.Ints(months)
	names := make([]string, len(months))
	for i, m := range months {
		names[i] = fmt.Sprintf("%d월", m)
	}
	return &ValidationError{
		Kind:    KindMixedMonths,
		Message: i18n.T("validate.mixed_months", strings.Join(names, ", ")),
		Months:  months,
	}
}

func unreadableError(err error) *ValidationError {
	return &ValidationError{
		Kind:    KindUnreadable,
		Message: i18n.T("validate.read_failed", err.Error()),
		Err:     err,
	}
}
