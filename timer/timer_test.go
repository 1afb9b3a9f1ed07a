package timer_test

import (
	"testing"
	"time"

	"deedles.dev/wlpaperd/output"
	"deedles.dev/wlpaperd/timer"
	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func TestCheck(t *testing.T) {
	tm := timer.New(&output.Output{Path: "a.jpg", Duration: time.Minute}, epoch)

	assert.False(t, tm.Check(epoch.Add(30*time.Second)))
	assert.True(t, tm.Check(epoch.Add(time.Minute)))

	due, ok := tm.Due()
	assert.True(t, ok)
	assert.Equal(t, epoch.Add(2*time.Minute), due)

	// Stays expired until consumed.
	assert.True(t, tm.Check(epoch.Add(61*time.Second)))
	assert.True(t, tm.Consume(false, true))
	assert.False(t, tm.Expired())
}

func TestNoRotation(t *testing.T) {
	tm := timer.New(&output.Output{Path: "a.jpg"}, epoch)

	_, ok := tm.Due()
	assert.False(t, ok)
	assert.False(t, tm.Check(epoch.Add(24*time.Hour)))
	assert.Zero(t, tm.Interval())
}

func TestConsume(t *testing.T) {
	tm := timer.New(&output.Output{Path: "a.jpg", Duration: time.Minute}, epoch)

	assert.False(t, tm.Consume(false, true))
	assert.True(t, tm.Consume(true, true))

	tm.Expire()
	assert.False(t, tm.Consume(true, false), "not ready")
	assert.True(t, tm.Expired(), "flag must survive a refused consume")
	assert.True(t, tm.Consume(false, true))
	assert.False(t, tm.Expired())
}

func TestUpdate(t *testing.T) {
	tm := timer.New(&output.Output{Path: "a.jpg", Duration: time.Hour}, epoch)

	later := epoch.Add(10 * time.Minute)
	tm.Update(&output.Output{Path: "b", Duration: time.Minute}, later)
	assert.Equal(t, time.Minute, tm.Interval())

	due, ok := tm.Due()
	assert.True(t, ok)
	assert.Equal(t, later.Add(time.Minute), due)
}
