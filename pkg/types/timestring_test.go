package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("10:00")
	require.NoError(t, err)
	assert.Equal(t, "10:00", ts.String())

	_, err = NewTimeStringFromString("25:99")
	require.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("10:00:00")
	require.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Compare(t *testing.T) {
	a := TimeString("09:00")
	b := TimeString("10:30")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsAfter(a))
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("10:00")

	shifted, err := ts.AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, "11:00", shifted.String())

	shifted, err = ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, "11:30", shifted.String())
}

func TestTimeString_AddMinutesCrossesMidnight(t *testing.T) {
	ts := TimeString("23:30")

	_, err := ts.AddMinutes(60)
	require.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Hour(t *testing.T) {
	hour, err := TimeString("15:45").Hour()
	require.NoError(t, err)
	assert.Equal(t, 15, hour)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// TIME колонка возвращает секунды
	require.NoError(t, ts.Scan("10:00:00"))
	assert.Equal(t, "10:00", ts.String())

	require.NoError(t, ts.Scan([]byte("18:30")))
	assert.Equal(t, "18:30", ts.String())

	require.NoError(t, ts.Scan(time.Date(2026, 1, 1, 9, 15, 0, 0, time.UTC)))
	assert.Equal(t, "09:15", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	require.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)
}
