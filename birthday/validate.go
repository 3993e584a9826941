package birthday

import (
	"time"

	"birthdayppt/sheet"
)

// Row is a data row whose birth-date cell parsed.
type Row struct {
	Name      string
	Gender    string
	BirthDate time.Time
}

// ValidatedTable holds the rows of a sheet that passed Validate and the one
// month all birth dates fall in. Month is 0 when the sheet has no data rows.
type ValidatedTable struct {
	Rows  []Row
	Month time.Month
}

// Validate checks the required columns, the birth-date format and that all
// birth dates share a month. It does not modify t.
func Validate(t *sheet.Table) (*ValidatedTable, error) {
	idx := make(map[string]int, len(RequiredColumns))
	var missing []string
	for _, col := range RequiredColumns {
		i := t.ColumnIndex(col)
		if i < 0 {
			missing = append(missing, col)
			continue
		}
		idx[col] = i
	}
	if len(missing) > 0 {
		return nil, missingColumnsError(missing)
	}

	vt := &ValidatedTable{Rows: make([]Row, 0, t.Len())}
	var invalid []InvalidDate
	months := make(map[int]struct{})
	for r := 0; r < t.Len(); r++ {
		name := t.Cell(r, idx[ColumnName])
		value := t.Cell(r, idx[ColumnBirthDate])
		date, err := time.Parse(DateLayout, value)
		if err != nil {
			invalid = append(invalid, InvalidDate{Name: name, Value: value})
			continue
		}
		months[int(date.Month())] = struct{}{}
		vt.Rows = append(vt.Rows, Row{
			Name:      name,
			Gender:    t.Cell(r, idx[ColumnGender]),
			BirthDate: date,
		})
	}
	if len(invalid) > 0 {
		return nil, invalidDatesError(invalid)
	}
	if len(months) > 1 {
		return nil, mixedMonthsError(months)
	}
	for m := range months {
		vt.Month = time.Month(m)
	}
	return vt, nil
}

// ValidateFile reads the first sheet of the spreadsheet at path and validates it.
func ValidateFile(path string) (*ValidatedTable, error) {
	t, err := sheet.Read(path)
	if err != nil {
		return nil, unreadableError(err)
	}
	return Validate(t)
}
