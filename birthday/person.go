package birthday

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Required spreadsheet columns, in the order they are reported.
const (
	ColumnName      = "이름"
	ColumnGender    = "성별"
	ColumnBirthDate = "생년월일"
)

// RequiredColumns lists the columns every birthday sheet must carry.
var RequiredColumns = []string{ColumnName, ColumnGender, ColumnBirthDate}

// DateLayout is the only accepted birth-date cell format.
const DateLayout = "2006-01-02"

// Person is one birthday person ready for rendering.
type Person struct {
	Name      string    `label:"이름" validate:"required"`
	Gender    string    `label:"성별"`
	BirthDate time.Time `label:"생년월일" validate:"required"`
	Age       int       `label:"나이" validate:"gt=0"`
}

// Day returns the day of month of the birth date.
func (p Person) Day() int {
	return p.BirthDate.Day()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		return fld.Name
	})
	return v
}

// Check reports the fields of p that are missing or out of range, labelled
// with their column names. A nil error means p can be rendered.
func (p Person) Check() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &FieldError{Fields: fields}
}

// FieldError lists the fields of a Person that failed validation.
type FieldError struct {
	Fields []string
}

func (e *FieldError) Error() string {
	return strings.Join(e.Fields, ", ")
}
