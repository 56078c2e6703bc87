package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextMonthlyOccurrence(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"mid month", date(2024, 3, 15), date(2024, 4, 15)},
		{"leap february clamp", date(2024, 1, 31), date(2024, 2, 29)},
		{"non-leap february clamp", date(2023, 1, 31), date(2023, 2, 28)},
		{"thirty day month clamp", date(2024, 3, 31), date(2024, 4, 30)},
		{"year rollover", date(2024, 12, 31), date(2025, 1, 31)},
		{"time of day dropped", time.Date(2024, 5, 10, 17, 45, 0, 0, time.UTC), date(2024, 6, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.NextMonthlyOccurrence(tt.in))
		})
	}
}

func TestNextMonthlyOccurrence_DoesNotSpringBack(t *testing.T) {
	d := date(2024, 1, 31)

	d = domain.NextMonthlyOccurrence(d)
	assert.Equal(t, date(2024, 2, 29), d)

	d = domain.NextMonthlyOccurrence(d)
	assert.Equal(t, date(2024, 3, 29), d)
}

func TestTruncateToDate(t *testing.T) {
	in := time.Date(2024, 7, 4, 23, 59, 59, 999, time.UTC)
	assert.Equal(t, date(2024, 7, 4), domain.TruncateToDate(in))
}

func TestParseDate(t *testing.T) {
	d, err := domain.ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, date(2024, 2, 29), d)

	_, err = domain.ParseDate("29/02/2024")
	assert.Error(t, err)
}

func TestScheduledTransfer_IsDue(t *testing.T) {
	st := domain.ScheduledTransfer{ScheduledDate: date(2024, 6, 1)}

	assert.True(t, st.IsDue(time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)))
	assert.False(t, st.IsDue(date(2024, 6, 2)))
	assert.False(t, st.IsDue(date(2024, 5, 31)))
}
