package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekDates(t *testing.T) {
	t.Run(`midweek check`, func(t *testing.T) {
		start, end := GetWeekDates(date(2024, time.March, 6))
		require.Equal(t, date(2024, time.March, 4), start)
		require.Equal(t, date(2024, time.March, 10), end)
	})

	t.Run(`monday and sunday check`, func(t *testing.T) {
		start, end := GetWeekDates(date(2024, time.March, 4))
		require.Equal(t, date(2024, time.March, 4), start)
		require.Equal(t, date(2024, time.March, 10), end)

		start, end = GetWeekDates(time.Date(2024, time.March, 10, 23, 59, 0, 0, time.UTC))
		require.Equal(t, date(2024, time.March, 4), start)
		require.Equal(t, date(2024, time.March, 10), end)
	})

	t.Run(`week across month check`, func(t *testing.T) {
		start, end := GetWeekDates(date(2024, time.March, 1))
		require.Equal(t, date(2024, time.February, 26), start)
		require.Equal(t, date(2024, time.March, 3), end)
	})
}

func TestDates(t *testing.T) {
	t.Run(`day truncation check`, func(t *testing.T) {
		require.Equal(t, date(2024, time.March, 6), Day(time.Date(2024, time.March, 6, 17, 45, 3, 9, time.UTC)))
		require.Equal(t, date(2024, time.March, 6), FromDate(ToDate(date(2024, time.March, 6))))
	})

	t.Run(`period check`, func(t *testing.T) {
		require.Equal(t, "04/03/2024 to 10/03/2024", FormatPeriod(date(2024, time.March, 4), date(2024, time.March, 10)))
	})

	t.Run(`iso parse check`, func(t *testing.T) {
		parsed, err := ParseISODate("2024-03-04")
		require.Nil(t, err)
		require.Equal(t, date(2024, time.March, 4), parsed)
		_, err = ParseISODate("04/03/2024")
		require.NotNil(t, err)
	})
}
