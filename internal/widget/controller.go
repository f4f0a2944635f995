package widget

import (
	"context"
	"sync"
	"time"

	"github.com/weatherwidget/backend/internal/domain"
)

// DefaultSettleDelay is how long the panel stays at its fixed expanded size
const DefaultSettleDelay = 100 * time.Millisecond

// FetchFunc performs one lookup; it must not return without a result
type FetchFunc func(ctx context.Context, query string) domain.LookupResult

// Controller owns one widget's state and executes the effects Reduce emits
type Controller struct {
	mu    sync.Mutex
	state State

	fetch       FetchFunc
	sched       Scheduler
	settleDelay time.Duration
}

// NewController creates a controller in the initial state
func NewController(fetch FetchFunc, sched Scheduler, settleDelay time.Duration) *Controller {
	if sched == nil {
		sched = TimerScheduler{}
	}
	return &Controller{
		state:       Initial(),
		fetch:       fetch,
		sched:       sched,
		settleDelay: settleDelay,
	}
}

// State returns a snapshot of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetQuery records an edit to the search text
func (c *Controller) SetQuery(text string) State {
	return c.Dispatch(context.Background(), QueryChanged{Text: text})
}

// Submit starts a lookup for the current query and blocks until it resolves.
// Overlapping submissions are allowed; only the latest one's result lands.
func (c *Controller) Submit(ctx context.Context) State {
	return c.Dispatch(ctx, SubmitPressed{})
}

// Dispatch applies ev and runs the resulting effects. Fetches run in the
// calling goroutine without holding the lock.
func (c *Controller) Dispatch(ctx context.Context, ev Event) State {
	c.mu.Lock()
	next, effects := Reduce(c.state, ev)
	c.state = next
	c.mu.Unlock()

	for _, eff := range effects {
		c.run(ctx, eff)
	}
	return c.State()
}

func (c *Controller) run(ctx context.Context, eff Effect) {
	switch e := eff.(type) {
	case FetchEffect:
		res := c.fetch(ctx, e.Query)
		c.Dispatch(ctx, Resolved(e.Seq, res))
	case SettleEffect:
		seq := e.Seq
		c.sched.AfterFunc(c.settleDelay, func() {
			c.Dispatch(context.Background(), RevealSettled{Seq: seq})
		})
	}
}
