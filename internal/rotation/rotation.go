package rotation

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/school-board/internal/display"
	"github.com/i474232898/school-board/internal/scheduler"
)

// State is the content currently occupying the shared region.
type State int

const (
	ShowingNotifications State = iota
	ShowingWeather
)

func (s State) String() string {
	switch s {
	case ShowingNotifications:
		return "notifications"
	case ShowingWeather:
		return "weather"
	default:
		return "unknown"
	}
}

// Toggle returns the other state.
func (s State) Toggle() State {
	if s == ShowingWeather {
		return ShowingNotifications
	}
	return ShowingWeather
}

// ShowFunc fetches and renders one kind of content into the shared region.
type ShowFunc func(ctx context.Context)

// Options configures a Controller.
type Options struct {
	Region    display.Region
	Period    time.Duration // one content swap per period
	FadeDelay time.Duration // time between fade-out and swap

	ShowNotifications ShowFunc
	ShowWeather       ShowFunc

	// ShowTimeout bounds a single swap; zero means no bound.
	ShowTimeout time.Duration
	Logger      *log.Logger
}

// Status is a point-in-time view of the controller.
type Status struct {
	Current       string `json:"current"`
	Next          string `json:"next"`
	Transitioning bool   `json:"transitioning"`
	Cycles        uint64 `json:"cycles"`
	Skipped       uint64 `json:"skipped"`
}

// Controller alternates a region between notifications and weather.
// It is the only writer of its state; cycles never overlap. A tick that
// arrives while the previous swap is still running is dropped.
type Controller struct {
	mu            sync.Mutex
	current       State
	next          State
	transitioning bool
	cycles        uint64
	skipped       uint64

	sched   scheduler.Scheduler
	surface display.Surface
	opts    Options
	logger  *log.Logger
}

func New(sched scheduler.Scheduler, surface display.Surface, opts Options) (*Controller, error) {
	if opts.ShowNotifications == nil || opts.ShowWeather == nil {
		return nil, errors.New("rotation: both show functions are required")
	}
	if opts.Period <= 0 || opts.FadeDelay <= 0 {
		return nil, errors.New("rotation: period and fade delay must be positive")
	}
	if opts.FadeDelay >= opts.Period {
		return nil, errors.New("rotation: fade delay must be shorter than the period")
	}
	if opts.Region == "" {
		opts.Region = display.RegionNotifications
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Controller{
		current: ShowingNotifications,
		next:    ShowingWeather,
		sched:   sched,
		surface: surface,
		opts:    opts,
		logger:  logger,
	}, nil
}

// ShowInitial renders notifications once and arms the first swap to weather.
func (c *Controller) ShowInitial(ctx context.Context) {
	c.opts.ShowNotifications(ctx)

	c.mu.Lock()
	c.current = ShowingNotifications
	c.next = ShowingWeather
	c.mu.Unlock()
}

// Start registers the rotation with the scheduler.
func (c *Controller) Start() error {
	return c.sched.Every(c.opts.Period, c.beginCycle)
}

// beginCycle fades the region out and schedules the swap.
func (c *Controller) beginCycle() {
	c.mu.Lock()
	if c.transitioning {
		c.skipped++
		c.mu.Unlock()
		c.logger.Printf("WARN: rotation: previous swap still running, skipping tick")
		return
	}
	c.transitioning = true
	c.mu.Unlock()

	cycleID := uuid.NewString()
	c.surface.SetOpacity(c.opts.Region, 0)

	if err := c.sched.After(c.opts.FadeDelay, func() { c.completeCycle(cycleID) }); err != nil {
		c.logger.Printf("WARN: rotation %s: cannot schedule swap: %v", cycleID, err)
		c.mu.Lock()
		c.transitioning = false
		c.mu.Unlock()
		c.surface.SetOpacity(c.opts.Region, 1)
	}
}

// completeCycle shows the pending content, flips the state and fades back in.
func (c *Controller) completeCycle(cycleID string) {
	c.mu.Lock()
	target := c.next
	c.mu.Unlock()

	ctx := context.Background()
	if c.opts.ShowTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.ShowTimeout)
		defer cancel()
	}

	c.logger.Printf("DEBUG: rotation %s: showing %s", cycleID, target)
	if target == ShowingWeather {
		c.opts.ShowWeather(ctx)
	} else {
		c.opts.ShowNotifications(ctx)
	}

	c.mu.Lock()
	c.current = target
	c.next = target.Toggle()
	c.transitioning = false
	c.cycles++
	c.mu.Unlock()

	c.surface.SetOpacity(c.opts.Region, 1)
}

// State returns the content currently shown.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Next returns the content the next swap will show.
func (c *Controller) Next() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.next
}

// ShowWeatherNext reports whether the next swap shows weather.
func (c *Controller) ShowWeatherNext() bool {
	return c.Next() == ShowingWeather
}

// Status returns a snapshot for reporting.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		Current:       c.current.String(),
		Next:          c.next.String(),
		Transitioning: c.transitioning,
		Cycles:        c.cycles,
		Skipped:       c.skipped,
	}
}
