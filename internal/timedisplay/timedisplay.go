package timedisplay

import (
	"time"

	"github.com/i474232898/school-board/internal/display"
	"github.com/i474232898/school-board/internal/scheduler"
)

const (
	DateLayout  = "02.01.2006"
	ClockLayout = "15:04:05"
)

// Format returns the date as DD.MM.YYYY and the time as a 24-hour HH:MM:SS.
func Format(t time.Time) (date, clock string) {
	return t.Format(DateLayout), t.Format(ClockLayout)
}

// Display keeps the date and time fields of the board current.
type Display struct {
	surface display.Surface
	now     func() time.Time
	loc     *time.Location
}

// New creates a Display. A nil now uses time.Now; a nil loc uses time.Local.
func New(surface display.Surface, now func() time.Time, loc *time.Location) *Display {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &Display{surface: surface, now: now, loc: loc}
}

// Tick writes the current date and time into their regions.
func (d *Display) Tick() {
	date, clock := Format(d.now().In(d.loc))
	d.surface.SetText(display.RegionCurrentDate, date)
	d.surface.SetText(display.RegionCurrentTime, clock)
}

// Start registers Tick to run every interval.
func (d *Display) Start(sched scheduler.Scheduler, interval time.Duration) error {
	return sched.Every(interval, d.Tick)
}
