package board

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/i474232898/school-board/internal/display"
	"github.com/i474232898/school-board/internal/render"
	"github.com/i474232898/school-board/internal/rotation"
	"github.com/i474232898/school-board/internal/scheduler"
	"github.com/i474232898/school-board/internal/timedisplay"
)

var errNoProvider = errors.New("no weather provider configured")

// Intervals holds the periods of the board's recurring jobs.
type Intervals struct {
	Clock     time.Duration
	Rotation  time.Duration
	FadeDelay time.Duration
	Refresh   time.Duration // zero disables periodic refresh
	Fetch     time.Duration // bound for one scheduled fetch-and-render; zero means none
}

// Board wires fetching, rendering and the periodic tasks of the page.
type Board struct {
	fetcher   *Fetcher
	renderer  *render.Renderer
	clock     *timedisplay.Display
	rotation  *rotation.Controller
	sched     scheduler.Scheduler
	intervals Intervals
	logger    *log.Logger
}

func New(
	fetcher *Fetcher,
	renderer *render.Renderer,
	clock *timedisplay.Display,
	sched scheduler.Scheduler,
	surface display.Surface,
	intervals Intervals,
	logger *log.Logger,
) (*Board, error) {
	if logger == nil {
		logger = log.Default()
	}

	b := &Board{
		fetcher:   fetcher,
		renderer:  renderer,
		clock:     clock,
		sched:     sched,
		intervals: intervals,
		logger:    logger,
	}

	rot, err := rotation.New(sched, surface, rotation.Options{
		Region:            display.RegionNotifications,
		Period:            intervals.Rotation,
		FadeDelay:         intervals.FadeDelay,
		ShowNotifications: b.DisplayNotifications,
		ShowWeather:       b.DisplayWeather,
		ShowTimeout:       intervals.Fetch,
		Logger:            logger,
	})
	if err != nil {
		return nil, err
	}
	b.rotation = rot
	return b, nil
}

// DisplayNotifications fetches notifications into the shared panel.
func (b *Board) DisplayNotifications(ctx context.Context) {
	b.renderer.Notifications(display.RegionNotifications, b.fetcher.Notifications(ctx))
}

// DisplayWeather fetches the current weather into the shared panel.
func (b *Board) DisplayWeather(ctx context.Context) {
	b.renderer.Weather(display.RegionNotifications, b.fetcher.Weather(ctx))
}

// DisplayDailyRoutine fetches the daily routine into its region.
func (b *Board) DisplayDailyRoutine(ctx context.Context) {
	b.renderer.DailyRoutine(display.RegionDailyRoutine, b.fetcher.DailyRoutine(ctx))
}

// DisplayLessonSchedule fetches the week and renders today's lessons.
func (b *Board) DisplayLessonSchedule(ctx context.Context) {
	b.renderer.LessonSchedule(display.RegionTimetable, display.RegionDateHeading, b.fetcher.LessonSchedule(ctx))
}

// Bootstrap performs the initial load in order and then reveals the page.
func (b *Board) Bootstrap(ctx context.Context) {
	b.clock.Tick()
	b.rotation.ShowInitial(ctx)
	b.DisplayDailyRoutine(ctx)
	b.DisplayLessonSchedule(ctx)
	b.renderer.HideLoader(display.RegionLoader, display.RegionMainContent)
	b.logger.Println("INFO: board: initial load complete")
}

// Refresh re-fetches the daily routine and today's schedule.
func (b *Board) Refresh(ctx context.Context) {
	b.DisplayDailyRoutine(ctx)
	b.DisplayLessonSchedule(ctx)
}

// Start registers the clock, rotation and refresh jobs.
func (b *Board) Start() error {
	if err := b.clock.Start(b.sched, b.intervals.Clock); err != nil {
		return err
	}
	if err := b.rotation.Start(); err != nil {
		return err
	}
	if b.intervals.Refresh > 0 {
		return b.sched.Every(b.intervals.Refresh, func() {
			ctx, cancel := b.jobContext()
			defer cancel()
			b.Refresh(ctx)
		})
	}
	return nil
}

// Rotation exposes the rotation state for reporting.
func (b *Board) Rotation() rotation.Status {
	return b.rotation.Status()
}

func (b *Board) jobContext() (context.Context, context.CancelFunc) {
	if b.intervals.Fetch > 0 {
		return context.WithTimeout(context.Background(), b.intervals.Fetch)
	}
	return context.WithCancel(context.Background())
}
