// Package backoff holds the retry delay table used by the outbox relay.
package backoff

import "time"

// Schedule is an ordered list of delays; attempt n waits Schedule[n-1],
// and every attempt past the end reuses the last entry.
type Schedule []time.Duration

func Default() Schedule {
	return Schedule{
		5 * time.Second,
		10 * time.Second,
		30 * time.Second,
		60 * time.Second,
		300 * time.Second,
	}
}

func (s Schedule) Delay(attempt int) time.Duration {
	if len(s) == 0 {
		return 0
	}

	idx := attempt - 1
	if idx < 0 {
		idx = 0
	}
	if idx > len(s)-1 {
		idx = len(s) - 1
	}

	return s[idx]
}

// Valid reports whether every delay is positive.
func (s Schedule) Valid() bool {
	if len(s) == 0 {
		return false
	}

	for _, d := range s {
		if d <= 0 {
			return false
		}
	}

	return true
}
