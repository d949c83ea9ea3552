package timeofday

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMinutesWraps(t *testing.T) {
	cases := []struct {
		in   TimeOfDay
		add  int
		want TimeOfDay
	}{
		{New(10, 0), 15, New(10, 15)},
		{New(10, 50), 15, New(11, 5)},
		{New(23, 50), 20, New(0, 10)},
		{New(22, 0), 3 * 60, New(1, 0)},
		{New(0, 10), -20, New(23, 50)},
		{New(12, 0), MinutesPerDay, New(12, 0)},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.in.AddMinutes(c.add), "%s + %d", c.in, c.add)
	}
}

func TestMinutesUntil(t *testing.T) {
	assert.Equal(t, 90, New(8, 0).MinutesUntil(New(9, 30)))
	assert.Equal(t, 20, New(23, 50).MinutesUntil(New(0, 10)))
	assert.Equal(t, 0, New(7, 7).MinutesUntil(New(7, 7)))
}

func TestCompare(t *testing.T) {
	assert.Equal(t, -1, New(8, 0).Compare(New(8, 1)))
	assert.Equal(t, 1, New(9, 0).Compare(New(8, 59)))
	assert.Equal(t, 0, New(9, 0).Compare(New(9, 0)))
	assert.True(t, New(9, 1).After(New(9, 0)))
	assert.False(t, New(9, 0).After(New(9, 0)))
	assert.True(t, Midnight.Before(New(0, 1)))
}

func TestParse(t *testing.T) {
	v, err := Parse("07:05")
	require.NoError(t, err)
	assert.Equal(t, New(7, 5), v)
	assert.Equal(t, "07:05", v.String())

	_, err = Parse("24:00")
	assert.Error(t, err)
	_, err = Parse("noon")
	assert.Error(t, err)
}

func TestJSONRoundTripAsText(t *testing.T) {
	b, err := json.Marshal(struct {
		At TimeOfDay `json:"at"`
	}{New(18, 45)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"18:45"}`, string(b))

	var out struct {
		At TimeOfDay `json:"at"`
	}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, New(18, 45), out.At)
}

func TestFixedClock(t *testing.T) {
	c := FixedClock(New(6, 30))
	assert.Equal(t, New(6, 30), c.Now())
}
