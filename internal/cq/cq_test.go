package cq_test

import (
	"testing"

	"deedles.dev/wlpaperd/internal/cq"
	"github.com/stretchr/testify/assert"
)

func TestQueue(t *testing.T) {
	q := cq.New[int]()
	defer q.Stop()

	for i := range 3 {
		assert.True(t, q.Push(i))
	}
	assert.Equal(t, []int{0, 1, 2}, <-q.Get())

	select {
	case v := <-q.Get():
		t.Fatalf("got %v from empty queue", v)
	default:
	}
}
