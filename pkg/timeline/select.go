package timeline

import "fmt"

// CountError reports a request for more entries than were matched.
type CountError struct {
	Requested int
	Available int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("requested the last %d entries but only %d matched (use --clamp to print all)",
		e.Requested, e.Available)
}

// Select returns the last n entries, keeping their order. A non-positive n
// selects everything. When n exceeds len(entries) Select fails with a
// *CountError unless clamp is set, in which case everything is returned.
func Select[T any](entries []T, n int, clamp bool) ([]T, error) {
	if n <= 0 {
		return entries, nil
	}
	if n > len(entries) {
		if clamp {
			return entries, nil
		}
		return nil, &CountError{Requested: n, Available: len(entries)}
	}
	return entries[len(entries)-n:], nil
}
