package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampSeats(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		want      int
	}{
		{"within range", 3, 3},
		{"below lower bound", 0, 1},
		{"negative", -5, 1},
		{"above hard cap", 15, 10},
		{"exactly at cap", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampSeats(tt.requested))
		})
	}
}

// The clamp only enforces the stepper bounds; a request beyond the event's
// availability must survive it untouched so checkout can reject it.
func TestClampSeats_DoesNotShrinkToAvailability(t *testing.T) {
	assert.Equal(t, 2, ClampSeats(2))
	assert.Equal(t, 8, ClampSeats(8))
}

func TestSeatCounter_StartsAtOne(t *testing.T) {
	c := NewSeatCounter()
	assert.Equal(t, 1, c.Count())
}

func TestSeatCounter_IncrementClampsAtTen(t *testing.T) {
	c := NewSeatCounter()
	for i := 0; i < 25; i++ {
		c.Increment()
	}
	assert.Equal(t, 10, c.Count())
}

func TestSeatCounter_DecrementClampsAtOne(t *testing.T) {
	c := NewSeatCounter()
	c.Increment()
	for i := 0; i < 25; i++ {
		c.Decrement()
	}
	assert.Equal(t, 1, c.Count())
}

func TestSeatCounter_BoundedUnderAnySequence(t *testing.T) {
	c := NewSeatCounter()
	ops := []func() int{c.Increment, c.Increment, c.Decrement, c.Increment, c.Decrement, c.Decrement, c.Increment}
	for i := 0; i < 200; i++ {
		count := ops[i%len(ops)]()
		assert.GreaterOrEqual(t, count, 1)
		assert.LessOrEqual(t, count, MaxTicketsPerBooking)
	}
}

func TestSeatCounter_SetClampsClientInput(t *testing.T) {
	c := NewSeatCounter()
	assert.Equal(t, 7, c.Set(7))
	assert.Equal(t, 10, c.Set(99))
	assert.Equal(t, 1, c.Set(-1))
}

func TestSeatCounter_ResetReturnsToOne(t *testing.T) {
	c := NewSeatCounter()
	c.Set(6)
	c.Reset()
	assert.Equal(t, 1, c.Count())
}
