package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Fixed is a Clock that can be moved by hand.
type Fixed struct {
	At time.Time
}

func (f *Fixed) Now() time.Time { return f.At }

func (f *Fixed) Advance(d time.Duration) { f.At = f.At.Add(d) }
