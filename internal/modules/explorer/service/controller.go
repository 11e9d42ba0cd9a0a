package service

import (
	"strings"

	"kex/internal/modules/explorer/domain"
	"kex/internal/modules/explorer/dto"
	explorerout "kex/internal/modules/explorer/port/out"
	"kex/internal/platform/logger"
)

// Controller owns the navigation state of one explorer session. It is not
// safe for concurrent use: every call, including alarm and fetch
// deliveries, must come from the same loop.
type Controller struct {
	sched   explorerout.Scheduler
	fetch   explorerout.Fetcher
	timings domain.Timings
	log     *logger.Logger

	trail      domain.Trail
	current    string
	pending    string
	level      string
	gate       domain.NavigationGate
	anim       domain.Animation
	disclosure domain.Disclosure
	summaries  map[summaryKey]domain.SummaryState

	epoch   uint64
	seq     uint64
	loading bool
	err     error
	path    *domain.LearningPath
}

type summaryKey struct {
	topic string
	level string
}

func NewController(sched explorerout.Scheduler, fetch explorerout.Fetcher, timings domain.Timings, level string, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{
		sched:      sched,
		fetch:      fetch,
		timings:    timings,
		log:        log,
		trail:      domain.NewTrail(),
		level:      level,
		disclosure: domain.Disclosure{},
		summaries:  map[summaryKey]domain.SummaryState{},
	}
}

func (c *Controller) Search(text string) bool {
	topic := strings.TrimSpace(text)
	if topic == "" || topic == c.current {
		return false
	}
	if !c.gate.TryAcquire(domain.NavSearch) {
		c.log.Debug("navigation dropped", "kind", domain.NavSearch, "topic", topic)
		return false
	}
	c.beginExit(domain.NavSearch, domain.Forward, topic)
	return true
}

func (c *Controller) Explore(topic string) bool {
	if topic == "" || topic == c.current {
		return false
	}
	if !c.gate.TryAcquire(domain.NavExplore) {
		c.log.Debug("navigation dropped", "kind", domain.NavExplore, "topic", topic)
		return false
	}
	c.trail.Push(topic)
	c.beginExit(domain.NavExplore, domain.Forward, topic)
	return true
}

func (c *Controller) JumpToBreadcrumb(index int) bool {
	target, ok := c.trail.At(index)
	if !ok || target == c.current {
		return false
	}
	if !c.gate.TryAcquire(domain.NavBreadcrumb) {
		c.log.Debug("navigation dropped", "kind", domain.NavBreadcrumb, "index", index)
		return false
	}
	dir := domain.Backward
	if index > c.trail.Cursor() {
		dir = domain.Forward
	}
	c.trail.MoveTo(index)
	c.beginExit(domain.NavBreadcrumb, dir, target)
	return true
}

// Reset returns to the initial state. Alarms and fetches started before the
// reset are ignored when they come back.
func (c *Controller) Reset() {
	c.epoch++
	c.seq++
	c.trail.Clear()
	c.current = ""
	c.pending = ""
	c.gate.Reset()
	c.anim.Reset()
	c.disclosure.Clear()
	c.summaries = map[summaryKey]domain.SummaryState{}
	c.loading = false
	c.err = nil
	c.path = nil
}

func (c *Controller) ToggleSummary(topic string) bool {
	if topic == "" || (c.path != nil && topic == c.path.Topic) {
		return false
	}
	if c.disclosure.Toggle(topic) {
		c.requestSummary(topic)
	}
	return true
}

// requestSummary fetches the summary of topic at the current level unless
// it is cached or already loading.
func (c *Controller) requestSummary(topic string) {
	key := summaryKey{topic: topic, level: c.level}
	if st, ok := c.summaries[key]; ok && st.Err == nil {
		return
	}
	c.summaries[key] = domain.SummaryState{Loading: true}
	c.fetch.FetchSummary(domain.SummaryRequest{Topic: topic, Level: c.level})
}

// SetLevel changes the depth of the learning path. A topic already pending
// is requested again at the new level, and so is the summary of every
// expanded card.
func (c *Controller) SetLevel(level string) {
	if level == "" || level == c.level {
		return
	}
	c.level = level
	for _, topic := range c.disclosure.Open() {
		c.requestSummary(topic)
	}
	if c.pending != "" {
		c.dispatch(c.pending)
	}
}

func (c *Controller) Fire(alarm domain.Alarm) {
	if alarm.Epoch != c.epoch {
		return
	}
	switch alarm.Kind {
	case domain.AlarmDispatch:
		c.fetchTopic(alarm.Topic)
		if alarm.Nav == domain.NavSearch {
			c.trail.Clear()
		}
		c.gate.Release(alarm.Nav)
	case domain.AlarmDebounce:
		c.pending = alarm.Topic
		c.disclosure.Clear()
		token := c.anim.Enter()
		c.dispatch(alarm.Topic)
		c.sched.Schedule(c.timings.EnterHold, domain.Alarm{Kind: domain.AlarmSettle, Epoch: c.epoch, Token: token})
	case domain.AlarmSettle:
		c.anim.Settle(alarm.Token)
	}
}

func (c *Controller) ResolvePath(result domain.PathResult) {
	if result.Seq != c.seq {
		c.log.Debug("stale learning path dropped", "seq", result.Seq, "latest", c.seq)
		return
	}
	c.loading = false
	if result.Err != nil {
		c.err = result.Err
		c.log.Warn("learning path failed", "topic", c.pending, "level", c.level, "error", result.Err)
		return
	}
	path := result.Path
	if path.Topic == "" {
		path.Topic = c.pending
	}
	c.current = path.Topic
	c.trail.Seed(path.Topic)
	c.path = &path
}

func (c *Controller) ResolveSummary(result domain.SummaryResult) {
	key := summaryKey{topic: result.Topic, level: result.Level}
	st, ok := c.summaries[key]
	if !ok || !st.Loading {
		return
	}
	st.Loading = false
	if result.Err != nil {
		st.Err = result.Err
		c.log.Warn("summary failed", "topic", result.Topic, "level", result.Level, "error", result.Err)
	} else {
		st.Text = result.Summary
		st.Missing = result.Missing
	}
	c.summaries[key] = st
}

func (c *Controller) Snapshot() dto.Snapshot {
	_, held := c.gate.Held()
	snap := dto.Snapshot{
		Loading:   c.loading,
		Err:       c.err,
		Trail:     c.trail.Entries(),
		Cursor:    c.trail.Cursor(),
		Current:   c.current,
		Pending:   c.pending,
		Level:     c.level,
		Direction: c.anim.Direction().String(),
		Phase:     c.anim.Phase().String(),
		Offset:    c.anim.Offset(),
		Busy:      held || c.loading,
	}
	if c.loading || c.current == "" || c.path == nil {
		return snap
	}
	items := append([]string{c.path.Topic}, c.path.Links...)
	snap.Entries = make([]dto.Entry, 0, len(items))
	for _, item := range items {
		entry := dto.Entry{Topic: item, Main: item == c.path.Topic}
		if entry.Main {
			entry.Expanded = true
			entry.Summary = c.path.Summary
		} else {
			entry.Expanded = c.disclosure.Expanded(item)
			if st, ok := c.summaries[summaryKey{topic: item, level: c.level}]; ok {
				entry.Summary = st.Text
				entry.SummaryLoading = st.Loading
				entry.SummaryMissing = st.Missing
				entry.SummaryErr = st.Err
			}
		}
		snap.Entries = append(snap.Entries, entry)
	}
	return snap
}

func (c *Controller) beginExit(kind domain.NavKind, dir domain.Direction, topic string) {
	c.anim.Exit(dir)
	c.sched.Schedule(c.timings.ExitDelay, domain.Alarm{Kind: domain.AlarmDispatch, Epoch: c.epoch, Nav: kind, Topic: topic})
}

func (c *Controller) fetchTopic(topic string) {
	if topic == "" {
		return
	}
	c.sched.Schedule(c.timings.Debounce, domain.Alarm{Kind: domain.AlarmDebounce, Epoch: c.epoch, Topic: topic})
}

func (c *Controller) dispatch(topic string) {
	c.seq++
	c.loading = true
	c.err = nil
	c.path = nil
	c.fetch.FetchPath(domain.PathRequest{Seq: c.seq, Topic: topic, Level: c.level})
}
