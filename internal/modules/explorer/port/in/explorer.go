package in

import (
	"kex/internal/modules/explorer/domain"
	"kex/internal/modules/explorer/dto"
)

// Explorer is the navigation core driven by a single event loop. The
// action methods report false when the action was ignored.
type Explorer interface {
	Search(text string) bool
	Explore(topic string) bool
	JumpToBreadcrumb(index int) bool
	Reset()
	ToggleSummary(topic string) bool
	SetLevel(level string)

	Fire(alarm domain.Alarm)
	ResolvePath(result domain.PathResult)
	ResolveSummary(result domain.SummaryResult)

	Snapshot() dto.Snapshot
}
