package domain

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseExit
	PhaseEnter
)

func (p Phase) String() string {
	switch p {
	case PhaseExit:
		return "exit"
	case PhaseEnter:
		return "enter"
	}
	return "idle"
}

type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Animation is the idle -> exit -> enter -> idle sequence. Each Enter hands
// out a token; only the matching Settle returns to idle, so a late settle
// from an older transition cannot cut a newer one short.
type Animation struct {
	phase     Phase
	direction Direction
	token     uint64
}

func (a Animation) Phase() Phase         { return a.phase }
func (a Animation) Direction() Direction { return a.direction }

func (a *Animation) Exit(dir Direction) {
	a.direction = dir
	a.phase = PhaseExit
}

func (a *Animation) Enter() uint64 {
	a.token++
	a.phase = PhaseEnter
	return a.token
}

func (a *Animation) Settle(token uint64) bool {
	if a.phase != PhaseEnter || token != a.token {
		return false
	}
	a.phase = PhaseIdle
	return true
}

// Reset goes straight to idle and invalidates any pending settle.
func (a *Animation) Reset() {
	a.token++
	a.phase = PhaseIdle
}

// Offset is the horizontal cue for the content: the old content leaves
// against the travel direction and the new content comes in along it.
func (a Animation) Offset() int {
	sign := 1
	if a.direction == Backward {
		sign = -1
	}
	switch a.phase {
	case PhaseExit:
		return -sign
	case PhaseEnter:
		return sign
	}
	return 0
}
