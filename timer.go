package apilytics

import "time"

// timer measures how long a request takes to handle. time.Now carries a
// monotonic clock reading, so the elapsed value is non-negative even if
// the wall clock steps backwards.
type timer struct {
	start time.Time
}

func newTimer() timer {
	return timer{start: time.Now()}
}

// elapsedMillis returns the milliseconds elapsed since the timer was
// started. It can be called any number of times.
func (t timer) elapsedMillis() float64 {
	return float64(time.Since(t.start)) / float64(time.Millisecond)
}
