package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualFiresInTimeOrder(t *testing.T) {
	start := time.Unix(0, 0)
	m := NewManual(start)
	var fired []time.Duration
	record := func() { fired = append(fired, m.Now().Sub(start)) }

	m.AfterFunc(30*time.Millisecond, record)
	m.AfterFunc(10*time.Millisecond, record)
	m.AfterFunc(20*time.Millisecond, record)

	m.Advance(25 * time.Millisecond)
	assert := assert.New(t)
	assert.Equal([]time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, fired)
	assert.Equal(1, m.Pending())
	assert.Equal(25*time.Millisecond, m.Now().Sub(start))

	m.Advance(time.Second)
	assert.Len(fired, 3)
	assert.Equal(0, m.Pending())
}

func TestManualFiresNestedCallbacks(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	count := 0
	m.AfterFunc(time.Millisecond, func() {
		count++
		m.AfterFunc(time.Millisecond, func() { count++ })
	})
	m.Advance(5 * time.Millisecond)
	assert.Equal(t, 2, count)
}

func TestManualTiesKeepScheduleOrder(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		m.AfterFunc(time.Millisecond, func() { order = append(order, i) })
	}
	m.Advance(time.Millisecond)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}
