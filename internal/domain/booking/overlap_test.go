package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(h, m int) time.Time {
	return time.Date(2025, 1, 10, h, m, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"identical windows", at(9, 0), at(10, 0), at(9, 0), at(10, 0), true},
		{"partial overlap tail", at(9, 0), at(10, 0), at(9, 30), at(10, 30), true},
		{"partial overlap head", at(9, 30), at(10, 30), at(9, 0), at(10, 0), true},
		{"contained", at(9, 0), at(12, 0), at(10, 0), at(11, 0), true},
		{"containing", at(10, 0), at(11, 0), at(9, 0), at(12, 0), true},
		{"back to back, first ends when second starts", at(9, 0), at(10, 0), at(10, 0), at(11, 0), false},
		{"back to back, second ends when first starts", at(10, 0), at(11, 0), at(9, 0), at(10, 0), false},
		{"disjoint before", at(8, 0), at(9, 0), at(10, 0), at(11, 0), false},
		{"disjoint after", at(12, 0), at(13, 0), at(10, 0), at(11, 0), false},
		{"one minute overlap", at(9, 0), at(10, 1), at(10, 0), at(11, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
		})
	}
}

func TestIsActive(t *testing.T) {
	assert.True(t, IsActive(StatusScheduled))
	assert.True(t, IsActive(StatusConfirmed))
	assert.False(t, IsActive(StatusCompleted))
	assert.False(t, IsActive(StatusCancelled))
	assert.False(t, IsActive(StatusNoShow))
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{"scheduled", "confirmed", "completed", "cancelled", "no_show"} {
		assert.True(t, IsValidStatus(s), s)
	}
	assert.False(t, IsValidStatus("pending"))
	assert.False(t, IsValidStatus(""))
}
