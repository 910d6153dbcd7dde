// Package calendar validates, formats and repairs the YYYY-MM-DD date strings
// exchanged with the store and the clients.
package calendar

import (
	"encoding/json"
	"fmt"
	"time"
)

const layout = "2006-01-02"

// Date is a calendar day without time of day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Invalid is the zero Date returned for any input that is not a real calendar day.
var Invalid = Date{}

// IsValid reports whether d names a real day.
func (d Date) IsValid() bool {
	if d.Year < 1 || d.Year > 9999 || d.Month < time.January || d.Month > time.December {
		return false
	}
	return d.Day >= 1 && d.Day <= DaysIn(d.Year, d.Month)
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String returns the canonical YYYY-MM-DD form.
func (d Date) String() string {
	return Format(d)
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(int(d.Month), int(other.Month))
	default:
		return cmpInt(d.Day, other.Day)
	}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if !d.IsValid() {
		return []byte("null"), nil
	}
	return json.Marshal(Format(d))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Invalid
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, ok := Parse(raw)
	if !ok {
		return fmt.Errorf("invalid calendar date %q", raw)
	}
	*d = parsed
	return nil
}

// DaysIn returns the number of days of month in year, leap years included.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Parse strictly parses a YYYY-MM-DD string. It never fails loudly: any
// malformed input, including a day past the end of its month, yields
// (Invalid, false).
func Parse(raw string) (Date, bool) {
	y, m, d, ok := split(raw)
	if !ok {
		return Invalid, false
	}
	date := Date{Year: y, Month: time.Month(m), Day: d}
	if !date.IsValid() {
		return Invalid, false
	}
	return date, true
}

// Format serializes d for storage. Invalid dates format as the empty string.
func Format(d Date) string {
	if !d.IsValid() {
		return ""
	}
	return d.Time().Format(layout)
}

// Repair clamps a day-of-month overflow to the last day of the stated month:
// "2025-07-32" becomes "2025-07-31", "2025-06-31" becomes "2025-06-30".
// It returns the repaired value and true only when raw had exactly that
// defect; well-formed values and values broken in any other way come back
// unchanged with false.
func Repair(raw string) (string, bool) {
	y, m, d, ok := split(raw)
	if !ok || y < 1 || m < 1 || m > 12 {
		return raw, false
	}
	last := DaysIn(y, time.Month(m))
	if d <= last {
		return raw, false
	}
	return Format(Date{Year: y, Month: time.Month(m), Day: last}), true
}

// split checks the YYYY-MM-DD shape and returns the numeric parts without
// range-checking month or day.
func split(raw string) (year, month, day int, ok bool) {
	if len(raw) != len(layout) || raw[4] != '-' || raw[7] != '-' {
		return 0, 0, 0, false
	}
	year, ok = digits(raw[0:4])
	if !ok {
		return 0, 0, 0, false
	}
	month, ok = digits(raw[5:7])
	if !ok {
		return 0, 0, 0, false
	}
	day, ok = digits(raw[8:10])
	if !ok || day < 1 {
		return 0, 0, 0, false
	}
	return year, month, day, true
}

func digits(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
