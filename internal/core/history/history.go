// Package history keeps the most-recent-first lists of recorded sessions.
package history

// Capacity is the number of sessions a History retains.
const Capacity = 3

// History is a bounded, most-recent-first list of session lengths in seconds.
// The zero value is an empty history with the default capacity.
type History struct {
	values   []int
	capacity int
}

// New returns a History seeded with values, keeping at most Capacity of them.
func New(values ...int) *History {
	return NewWithCapacity(Capacity, values...)
}

// NewWithCapacity returns a History that keeps at most capacity values.
func NewWithCapacity(capacity int, values ...int) *History {
	if capacity <= 0 {
		capacity = Capacity
	}
	hist := &History{capacity: capacity}
	if len(values) > capacity {
		values = values[:capacity]
	}
	hist.values = append(make([]int, 0, capacity), values...)
	return hist
}

// Record prepends value and drops the oldest entry when full.
func (hist *History) Record(value int) {
	limit := hist.limit()
	if len(hist.values) >= limit {
		hist.values = hist.values[:limit-1]
	}
	hist.values = append([]int{value}, hist.values...)
}

// Clear removes every entry.
func (hist *History) Clear() {
	hist.values = hist.values[:0]
}

// Values returns a copy of the entries, newest first.
func (hist *History) Values() []int {
	return append([]int{}, hist.values...)
}

// Padded returns exactly the capacity number of entries, filling missing slots with zero.
func (hist *History) Padded() []int {
	padded := make([]int, hist.limit())
	copy(padded, hist.values)
	return padded
}

// Latest returns the newest entry.
func (hist *History) Latest() (int, bool) {
	if len(hist.values) == 0 {
		return 0, false
	}
	return hist.values[0], true
}

// Len returns the number of stored entries.
func (hist *History) Len() int {
	return len(hist.values)
}

func (hist *History) limit() int {
	if hist.capacity <= 0 {
		return Capacity
	}
	return hist.capacity
}

// Laps is an unbounded most-recent-first list of stopwatch lap snapshots.
type Laps struct {
	values []int
}

// Record prepends value.
func (laps *Laps) Record(value int) {
	laps.values = append([]int{value}, laps.values...)
}

// Clear removes every lap.
func (laps *Laps) Clear() {
	laps.values = nil
}

// Values returns a copy of all laps, newest first.
func (laps *Laps) Values() []int {
	return append([]int{}, laps.values...)
}

// Head returns at most n of the newest laps.
func (laps *Laps) Head(n int) []int {
	if n > len(laps.values) {
		n = len(laps.values)
	}
	if n < 0 {
		n = 0
	}
	return append([]int{}, laps.values[:n]...)
}

// Len returns the number of laps.
func (laps *Laps) Len() int {
	return len(laps.values)
}
