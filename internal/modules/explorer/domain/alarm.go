package domain

import "time"

type AlarmKind int

const (
	// AlarmDispatch fires once the exit animation is over.
	AlarmDispatch AlarmKind = iota + 1
	// AlarmDebounce fires when the pending topic may be set and fetched.
	AlarmDebounce
	// AlarmSettle ends the enter animation.
	AlarmSettle
)

func (k AlarmKind) String() string {
	switch k {
	case AlarmDispatch:
		return "dispatch"
	case AlarmDebounce:
		return "debounce"
	case AlarmSettle:
		return "settle"
	}
	return "unknown"
}

// Alarm is a timed transition handed to a scheduler and fed back to the
// controller when due. Epoch ties it to the controller generation that
// created it; a reset bumps the generation and strands older alarms.
type Alarm struct {
	Kind  AlarmKind
	Epoch uint64
	Nav   NavKind
	Topic string
	Token uint64
}

// Timings are the fixed delays of the navigation sequence.
type Timings struct {
	ExitDelay time.Duration
	Debounce  time.Duration
	EnterHold time.Duration
}

func DefaultTimings() Timings {
	return Timings{
		ExitDelay: 300 * time.Millisecond,
		Debounce:  200 * time.Millisecond,
		EnterHold: 300 * time.Millisecond,
	}
}

type PathRequest struct {
	Seq   uint64
	Topic string
	Level string
}

type LearningPath struct {
	Topic   string
	Summary string
	Links   []string
}

type PathResult struct {
	Seq  uint64
	Path LearningPath
	Err  error
}

type SummaryRequest struct {
	Topic string
	Level string
}

type SummaryResult struct {
	Topic   string
	Level   string
	Summary string
	Missing bool
	Err     error
}

// SummaryState is the lazily fetched summary of one subtopic card.
type SummaryState struct {
	Loading bool
	Text    string
	Missing bool
	Err     error
}
