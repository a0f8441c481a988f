package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", d.String())
	assert.Equal(t, time.UTC, d.Time().Location())

	_, err = ParseDate("10.01.2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDateFromTime_DropsClock(t *testing.T) {
	loc := time.FixedZone("PHT", 8*3600)
	d := DateFromTime(time.Date(2024, 1, 10, 23, 59, 0, 0, loc))
	assert.True(t, d.Equal(MustParseDate("2024-01-10")))
}

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want int
	}{
		{name: "three days", from: "2024-01-10", to: "2024-01-13", want: 3},
		{name: "same day", from: "2024-01-10", to: "2024-01-10", want: 0},
		{name: "across month", from: "2024-01-30", to: "2024-02-02", want: 3},
		{name: "leap day", from: "2024-02-28", to: "2024-03-01", want: 2},
		{name: "backwards", from: "2024-01-13", to: "2024-01-10", want: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MustParseDate(tt.from).DaysUntil(MustParseDate(tt.to)))
		})
	}
}

func TestAddDaysAndCompare(t *testing.T) {
	d := MustParseDate("2024-01-10")
	next := d.AddDays(1)

	assert.Equal(t, "2024-01-11", next.String())
	assert.True(t, next.After(d))
	assert.True(t, d.Before(next))
	assert.False(t, d.Equal(next))
}

func TestDate_Scan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-10", d.String())

	require.NoError(t, d.Scan([]byte("2024-02-01T00:00:00Z")))
	assert.Equal(t, "2024-02-01", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		End Date `json:"end"`
	}

	raw, err := json.Marshal(payload{End: MustParseDate("2024-01-13")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"end":"2024-01-13"}`, string(raw))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"end":"2024-03-05"}`), &p))
	assert.Equal(t, "2024-03-05", p.End.String())

	assert.Error(t, json.Unmarshal([]byte(`{"end":"05/03/2024"}`), &p))
}
