package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewBillRecord_FormatsDueDateAndDescription(t *testing.T) {
	due := time.Date(2026, time.March, 7, 23, 59, 0, 0, time.UTC)
	b := NewBillRecord(CategoryUtilities, 42, due)

	assert.Equal(t, "2026-03-07", b.DueDate)
	assert.Equal(t, "Test bill for Utilities", b.Description)
	assert.Equal(t, 42, b.Amount)
}

func TestPeriodValid(t *testing.T) {
	for _, p := range DefaultPeriods {
		assert.True(t, p.Valid(), "period %s", p)
	}
	assert.False(t, Period("day").Valid())
	assert.False(t, Period("").Valid())
}

func TestAccessToken(t *testing.T) {
	assert.True(t, AccessToken("").Empty())
	assert.Equal(t, "Bearer abc", AccessToken("abc").BearerHeader())
}
