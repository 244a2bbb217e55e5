package helpers

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

const (
	DateLayout     = "02/01/2006"
	DateTimeLayout = "02/01/2006 15:04"
	ISODateLayout  = "2006-01-02"
)

// Clock returns the current time. Handlers take one so tests can pin "today".
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now().UTC()
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ToDate(t time.Time) datatypes.Date {
	return datatypes.Date(Day(t))
}

func FromDate(d datatypes.Date) time.Time {
	return Day(time.Time(d))
}

func ParseISODate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(ISODateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// GetWeekDates returns Monday and Sunday of the week containing date.
func GetWeekDates(date time.Time) (start, end time.Time) {
	day := Day(date)
	sinceMonday := (int(day.Weekday()) + 6) % 7
	start = day.AddDate(0, 0, -sinceMonday)
	end = start.AddDate(0, 0, 6)
	return start, end
}

func FormatPeriod(start, end time.Time) string {
	return fmt.Sprintf("%s to %s", start.Format(DateLayout), end.Format(DateLayout))
}
