package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrors_ErrorAndToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "valid email is required"},
		{Field: "password", Message: "password is required"},
	}

	assert.Equal(t, "email: valid email is required; password: password is required", errs.Error())

	m := errs.ToMap()
	assert.Len(t, m, 2)
	assert.Equal(t, "password is required", m["password"])
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.False(t, IsEmpty("x"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("maya@example.com"))
	assert.True(t, IsValidEmail("maya.chen+hr@sub.example.co"))
	assert.False(t, IsValidEmail("maya@"))
	assert.False(t, IsValidEmail("not-an-email"))
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2026-03-02")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), date)

	_, ok = IsValidDate("02/03/2026")
	assert.False(t, ok)

	_, ok = IsValidDate("2026-13-40")
	assert.False(t, ok)
}

func TestParseTimestamp(t *testing.T) {
	ts, ok := ParseTimestamp("2026-03-02 09:15:00")
	assert.True(t, ok)
	assert.Equal(t, 9, ts.Hour())

	ts, ok = ParseTimestamp("2026-03-02T09:15:00Z")
	assert.True(t, ok)
	assert.Equal(t, 15, ts.Minute())

	_, ok = ParseTimestamp("yesterday")
	assert.False(t, ok)
}

func TestIsInSlice(t *testing.T) {
	roles := []string{"admin", "manager", "employee"}
	assert.True(t, IsInSlice("manager", roles))
	assert.False(t, IsInSlice("owner", roles))
}
