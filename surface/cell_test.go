package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellLastWins(t *testing.T) {
	var c Cell
	assert.Equal(t, EventNone, c.Take().Kind)

	assert.True(t, c.Record(Event{Kind: EventConfigure, Width: 100, Height: 100}))
	assert.True(t, c.Record(Event{Kind: EventConfigure, Width: 200, Height: 200}))
	assert.Equal(t, Event{Kind: EventConfigure, Width: 200, Height: 200}, c.Take())
	assert.Equal(t, EventNone, c.Take().Kind)
}

func TestCellClosedIsTerminal(t *testing.T) {
	sequences := [][]Event{
		{{Kind: EventClosed}},
		{{Kind: EventConfigure, Width: 1, Height: 1}, {Kind: EventClosed}},
		{{Kind: EventClosed}, {Kind: EventConfigure, Width: 1, Height: 1}},
		{{Kind: EventClosed}, {Kind: EventClosed}, {Kind: EventConfigure, Width: 3, Height: 4}},
	}

	for _, seq := range sequences {
		var c Cell
		for _, ev := range seq {
			c.Record(ev)
		}

		assert.True(t, c.Closed())
		assert.Equal(t, EventClosed, c.Take().Kind)
		assert.False(t, c.Record(Event{Kind: EventConfigure, Width: 5, Height: 5}))
		assert.Equal(t, EventClosed, c.Take().Kind)
	}
}
