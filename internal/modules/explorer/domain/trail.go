package domain

// Trail is the breadcrumb history with a cursor on the active entry.
// Cursor is -1 exactly when the trail is empty.
type Trail struct {
	entries []string
	cursor  int
}

func NewTrail() Trail {
	return Trail{cursor: -1}
}

func (t Trail) Len() int    { return len(t.entries) }
func (t Trail) Cursor() int { return t.cursor }

// At returns the entry at index, or false when index is out of range.
func (t Trail) At(index int) (string, bool) {
	if index < 0 || index >= len(t.entries) {
		return "", false
	}
	return t.entries[index], true
}

// Active returns the entry under the cursor.
func (t Trail) Active() (string, bool) {
	return t.At(t.cursor)
}

// Entries returns a copy of the trail.
func (t Trail) Entries() []string {
	out := make([]string, len(t.entries))
	copy(out, t.entries)
	return out
}

// Push drops every entry after the cursor, appends topic and moves the
// cursor onto it.
func (t *Trail) Push(topic string) {
	keep := t.cursor + 1
	next := make([]string, keep, keep+1)
	copy(next, t.entries[:keep])
	t.entries = append(next, topic)
	t.cursor = len(t.entries) - 1
}

// MoveTo places the cursor on index. Out of range indexes are ignored.
func (t *Trail) MoveTo(index int) bool {
	if index < 0 || index >= len(t.entries) {
		return false
	}
	t.cursor = index
	return true
}

// Seed starts an empty trail with topic. It is a no-op on a non-empty trail.
func (t *Trail) Seed(topic string) bool {
	if len(t.entries) > 0 {
		return false
	}
	t.entries = []string{topic}
	t.cursor = 0
	return true
}

func (t *Trail) Clear() {
	t.entries = nil
	t.cursor = -1
}
