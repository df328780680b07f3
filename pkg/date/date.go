// Package date provides an immutable calendar date used for birth dates of
// generated users.
package date

import (
	"crypto/rand"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"usertables-generator/pkg/random"
)

const (
	// LowestYear is the first year a random date can fall into.
	LowestYear = 1918
	// YearSpan is the number of years covered by random dates, starting at LowestYear.
	YearSpan = 100

	// Layout is the textual form of a Date: DD-MM-YYYY with a 1-based month.
	Layout = "02-01-2006"
)

// Date is a calendar date without time of day or location.
// The zero value is not a valid date; use IsZero to detect it.
type Date struct {
	year  int
	month time.Month
	day   int
}

// New creates a Date and rejects combinations that do not exist in the
// calendar, such as February 30.
func New(year int, month time.Month, day int) (Date, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, fmt.Errorf("invalid date: %04d-%02d-%02d", year, int(month), day)
	}
	return Date{year: year, month: month, day: day}, nil
}

// Random returns a date whose year lies in [LowestYear, LowestYear+YearSpan).
// Year and day of year are drawn from crypto/rand.
func Random() Date {
	d, err := RandomFrom(rand.Reader)
	if err != nil {
		// crypto/rand failure is unrecoverable
		panic(err)
	}
	return d
}

// RandomFrom is Random with the randomness read from r.
func RandomFrom(r io.Reader) (Date, error) {
	n, err := random.IntnFrom(r, YearSpan)
	if err != nil {
		return Date{}, err
	}
	year := LowestYear + n
	offset, err := random.IntnFrom(r, DaysIn(year))
	if err != nil {
		return Date{}, err
	}
	return dayOfYear(year, offset), nil
}

// dayOfYear returns January 1 of year plus offset days.
func dayOfYear(year, offset int) Date {
	return fromTime(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset))
}

// FromUnix converts whole seconds since the Unix epoch to the UTC date.
func FromUnix(seconds int64) Date {
	return fromTime(time.Unix(seconds, 0).UTC())
}

// Parse reads a date in Layout form.
func Parse(s string) (Date, error) {
	t, err := time.ParseInLocation(Layout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("failed to parse date %q: %w", s, err)
	}
	return fromTime(t), nil
}

func fromTime(t time.Time) Date {
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// DaysIn returns the number of days in the given year.
func DaysIn(year int) int {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}

// Year returns the year.
func (d Date) Year() int { return d.year }

// Month returns the month (January = 1).
func (d Date) Month() time.Month { return d.month }

// Day returns the day of month.
func (d Date) Day() int { return d.day }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d.year == 0 && d.month == 0 && d.day == 0 }

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// CountPassedYears returns the number of whole years between d and today.
func (d Date) CountPassedYears() int {
	return d.CountPassedYearsAt(time.Now())
}

// CountPassedYearsAt returns the number of whole years between d and the
// calendar date of now. A birthday that has not yet occurred in now's year
// does not count.
func (d Date) CountPassedYearsAt(now time.Time) int {
	diff := now.Year() - d.year
	if d.month > now.Month() || (d.month == now.Month() && d.day > now.Day()) {
		diff--
	}
	return diff
}

// String formats d as DD-MM-YYYY.
func (d Date) String() string {
	return fmt.Sprintf("%02d-%02d-%04d", d.day, int(d.month), d.year)
}

// MarshalJSON encodes d as a DD-MM-YYYY string, or null for the zero Date.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a DD-MM-YYYY string or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// GormDataType tells gorm to create a DATE column.
func (Date) GormDataType() string {
	return "date"
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time(), nil
}

// scanLayouts are the textual forms drivers return for DATE columns.
var scanLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = fromTime(v)
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into date", src)
	}
}

func (d *Date) scanString(s string) error {
	for _, layout := range scanLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*d = fromTime(t)
			return nil
		}
	}
	return fmt.Errorf("cannot scan %q into date", s)
}
