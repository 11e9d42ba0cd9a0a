package dto

type Entry struct {
	Topic          string
	Main           bool
	Expanded       bool
	Summary        string
	SummaryLoading bool
	SummaryMissing bool
	SummaryErr     error
}

type Snapshot struct {
	Loading   bool
	Err       error
	Entries   []Entry
	Trail     []string
	Cursor    int
	Current   string
	Pending   string
	Level     string
	Direction string
	Phase     string
	Offset    int
	Busy      bool
}
