package domain

// NavKind tags the user action that owns the navigation in flight.
type NavKind int

const (
	NavSearch NavKind = iota + 1
	NavExplore
	NavBreadcrumb
)

func (k NavKind) String() string {
	switch k {
	case NavSearch:
		return "search"
	case NavExplore:
		return "explore"
	case NavBreadcrumb:
		return "breadcrumb"
	}
	return "none"
}

// NavigationGate admits one navigation at a time, whatever its kind.
// A second attempt while one is held is dropped, never queued.
type NavigationGate struct {
	held NavKind
}

func (g *NavigationGate) TryAcquire(kind NavKind) bool {
	if g.held != 0 {
		return false
	}
	g.held = kind
	return true
}

// Release clears the gate when kind owns it.
func (g *NavigationGate) Release(kind NavKind) {
	if g.held == kind {
		g.held = 0
	}
}

// Held reports the kind in flight, if any.
func (g NavigationGate) Held() (NavKind, bool) {
	return g.held, g.held != 0
}

func (g *NavigationGate) Reset() { g.held = 0 }
