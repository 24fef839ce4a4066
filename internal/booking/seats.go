package booking

// MaxTicketsPerBooking caps a single checkout regardless of availability.
const MaxTicketsPerBooking = 10

// ClampSeats is the single validation point for a requested ticket count:
// clamp(requested, 1, MaxTicketsPerBooking). Called at every mutation point so
// the invariant is enforced in one place. Availability is deliberately not
// part of the clamp: asking for more seats than the event has left must be
// rejected at checkout, never silently shrunk to fit.
func ClampSeats(requested int) int {
	if requested < 1 {
		return 1
	}
	if requested > MaxTicketsPerBooking {
		return MaxTicketsPerBooking
	}
	return requested
}

// SeatCounter tracks the requested ticket quantity for one checkout.
// Count stays within [1, MaxTicketsPerBooking] after any call sequence.
type SeatCounter struct {
	count int
}

func NewSeatCounter() *SeatCounter {
	return &SeatCounter{count: 1}
}

func (c *SeatCounter) Count() int {
	return c.count
}

func (c *SeatCounter) Increment() int {
	c.count = ClampSeats(c.count + 1)
	return c.count
}

func (c *SeatCounter) Decrement() int {
	c.count = ClampSeats(c.count - 1)
	return c.count
}

// Set clamps an arbitrary requested count, e.g. one posted by a client.
func (c *SeatCounter) Set(requested int) int {
	c.count = ClampSeats(requested)
	return c.count
}

// Reset returns the counter to 1.
func (c *SeatCounter) Reset() {
	c.count = 1
}
