package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsAdult_BirthdayBoundary(t *testing.T) {
	dob := date(2000, 6, 15)

	dayBefore := date(2018, 6, 14)
	assert.False(t, IsAdult(&dob, dayBefore), "day before the 18th birthday")

	birthday := date(2018, 6, 15)
	assert.True(t, IsAdult(&dob, birthday), "the 18th birthday itself")

	dayAfter := date(2018, 6, 16)
	assert.True(t, IsAdult(&dob, dayAfter))
}

func TestIsAdult_MonthBoundary(t *testing.T) {
	dob := date(2000, 12, 1)

	assert.False(t, IsAdult(&dob, date(2018, 11, 30)))
	assert.True(t, IsAdult(&dob, date(2018, 12, 1)))
}

func TestIsAdult_NilAndFutureDob(t *testing.T) {
	assert.False(t, IsAdult(nil, date(2026, 1, 1)))

	future := date(2030, 1, 1)
	assert.False(t, IsAdult(&future, date(2026, 1, 1)))
}

func TestCanViewAdult(t *testing.T) {
	dob := date(1990, 1, 1)
	today := date(2026, 9, 1)

	p := Profile{DateOfBirth: &dob, ShowAdultContent: true}
	assert.True(t, p.CanViewAdult(today))

	p.ShowAdultContent = false
	assert.False(t, p.CanViewAdult(today), "preference disabled")

	p.ShowAdultContent = true
	p.DobChangePending = true
	assert.False(t, p.CanViewAdult(today), "pending DOB change closes the gate")

	minor := Profile{ShowAdultContent: true}
	minorDob := date(2010, 1, 1)
	minor.DateOfBirth = &minorDob
	assert.False(t, minor.CanViewAdult(today))
}
