package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate_Valid(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2024-01-31")
	assert.NoError(t, err)
	assert.Equal(t, "2024-01-31", d.String())
	assert.False(t, d.IsZero())
}

func TestParseDate_EmptyIsUnset(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("")
	assert.NoError(t, err)
	assert.True(t, d.IsZero())
	assert.Equal(t, "", d.String())
}

func TestParseDate_RejectsOtherLayouts(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"31-01-2024", "2024/01/31", "yesterday", "2024-13-01"} {
		_, err := ParseDate(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	d := NewDate(2024, time.January, 31)

	data, err := json.Marshal(d)
	assert.NoError(t, err)
	assert.Equal(t, `"2024-01-31"`, string(data))

	var back Date
	assert.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, d.Equal(back))
}

func TestDate_ZeroMarshalsAsEmptyString(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Date{})
	assert.NoError(t, err)
	assert.Equal(t, `""`, string(data))

	var back Date
	assert.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.IsZero())
}

func TestDate_UnmarshalRejectsNonString(t *testing.T) {
	t.Parallel()

	var d Date
	assert.Error(t, json.Unmarshal([]byte("20240131"), &d))
}

func TestDate_Ordering(t *testing.T) {
	t.Parallel()

	a := NewDate(2024, time.March, 1)
	b := NewDate(2024, time.March, 2)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Equal(b))
}
