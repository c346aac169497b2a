package core

import "time"

// DateLayout is the canonical on-disk date form.
const DateLayout = "2006-01-02"

// Date is a calendar date at UTC midnight. The zero value means "absent":
// a date is either fully valid or not there at all.
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// IsEmpty reports whether the date is absent.
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month (1-12).
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// InMonth reports whether the date falls within the given year and month.
// Absent dates are in no month.
func (d Date) InMonth(year, month int) bool {
	return !d.IsEmpty() && d.Year() == year && d.Month() == month
}

// String renders the canonical form, or "" when absent.
func (d Date) String() string {
	if d.IsEmpty() {
		return ""
	}
	return d.Format(DateLayout)
}

// LastDayOfMonth returns the number of days in the given month.
func LastDayOfMonth(year, month int) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDay clamps a day-of-month into [1, last day of the given month].
func ClampDay(day, year, month int) int {
	if day < 1 {
		return 1
	}
	if last := LastDayOfMonth(year, month); day > last {
		return last
	}
	return day
}

// AddMonths moves a date forward by the given number of months, preserving
// the day-of-month when possible and clamping to the last valid day
// otherwise (Jan 31 + 1 month -> Feb 28/29).
func (d Date) AddMonths(months int) Date {
	if d.IsEmpty() {
		return d
	}
	anchor := time.Date(d.Year(), time.Month(d.Month()+months), 1, 0, 0, 0, 0, time.UTC)
	day := ClampDay(d.Day(), anchor.Year(), int(anchor.Month()))
	return NewDate(anchor.Year(), int(anchor.Month()), day)
}
