package birthday

import (
	"sort"
	"time"
)

// Extract turns validated rows into people ordered by birthday within the
// year (month, then day of month). Rows with the same birthday keep their
// sheet order. Age is the Korean count: now's year minus the birth year plus one.
func Extract(vt *ValidatedTable, now time.Time) []Person {
	people := make([]Person, 0)
	if vt == nil {
		return people
	}
	for _, row := range vt.Rows {
		people = append(people, Person{
			Name:      row.Name,
			Gender:    row.Gender,
			BirthDate: row.BirthDate,
			Age:       KoreanAge(row.BirthDate, now),
		})
	}
	sort.SliceStable(people, func(i, j int) bool {
		return birthdayKey(people[i].BirthDate) < birthdayKey(people[j].BirthDate)
	})
	return people
}

func birthdayKey(t time.Time) int {
	return int(t.Month())*100 + t.Day()
}

// KoreanAge counts the birth year as age one.
func KoreanAge(birth, now time.Time) int {
	return now.Year() - birth.Year() + 1
}

// ByMonth returns the people born in month, keeping their order.
func ByMonth(people []Person, month time.Month) []Person {
	out := make([]Person, 0)
	for _, p := range people {
		if p.BirthDate.Month() == month {
			out = append(out, p)
		}
	}
	return out
}
