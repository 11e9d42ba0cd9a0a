package out

import (
	"time"

	"kex/internal/modules/explorer/domain"
)

// Scheduler delivers alarm back to the controller after the delay, on the
// same loop that drives every other controller call.
type Scheduler interface {
	Schedule(after time.Duration, alarm domain.Alarm)
}

// Fetcher starts remote lookups without blocking. Results are handed back
// through the controller's Resolve methods.
type Fetcher interface {
	FetchPath(req domain.PathRequest)
	FetchSummary(req domain.SummaryRequest)
}
