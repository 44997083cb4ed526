package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func TestAddMonthsClamped(t *testing.T) {
	cases := []struct {
		name   string
		from   time.Time
		months int
		want   time.Time
	}{
		{"same month", date(2026, time.January, 15), 0, date(2026, time.January, 15)},
		{"simple advance", date(2026, time.January, 15), 1, date(2026, time.February, 15)},
		{"jan 31 clamps to feb 28", date(2026, time.January, 31), 1, date(2026, time.February, 28)},
		{"jan 31 leap year clamps to feb 29", date(2028, time.January, 31), 1, date(2028, time.February, 29)},
		{"clamp does not stick: march recovers 31", date(2026, time.January, 31), 2, date(2026, time.March, 31)},
		{"may 31 to june 30", date(2026, time.May, 31), 1, date(2026, time.June, 30)},
		{"year rollover", date(2026, time.November, 30), 3, date(2027, time.February, 28)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AddMonthsClamped(tc.from, tc.months))
		})
	}
}

func TestInstallmentDueDates(t *testing.T) {
	t.Run("each installment counts from the sale date", func(t *testing.T) {
		dates := InstallmentDueDates(date(2026, time.January, 31), 4)

		require.Len(t, dates, 4)
		assert.Equal(t, date(2026, time.January, 31), dates[0])
		assert.Equal(t, date(2026, time.February, 28), dates[1])
		// Fevereiro travou em 28, mas março volta ao dia original.
		assert.Equal(t, date(2026, time.March, 31), dates[2])
		assert.Equal(t, date(2026, time.April, 30), dates[3])
	})

	t.Run("single installment is the sale date", func(t *testing.T) {
		dates := InstallmentDueDates(date(2026, time.June, 10), 1)

		require.Len(t, dates, 1)
		assert.Equal(t, date(2026, time.June, 10), dates[0])
	})
}

func TestMonthWindow(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	at := time.Date(2026, time.February, 14, 18, 30, 0, 0, loc)
	start, end := MonthWindow(at)

	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, loc), end)
}
