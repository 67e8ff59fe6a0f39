package board

import (
	"context"
	"log"

	"github.com/i474232898/school-board/internal/school"
	"github.com/i474232898/school-board/internal/weather"
)

// Kind names a remote resource the board reads.
type Kind string

const (
	KindNotifications      Kind = "notifications"
	KindDailyRoutine       Kind = "daily_routine"
	KindFullLessonSchedule Kind = "full_lesson_schedule"
	KindWeather            Kind = "weather"
)

// SchoolSource is the school API as seen by the Fetcher.
type SchoolSource interface {
	Notifications(ctx context.Context) ([]school.Notification, error)
	DailyRoutine(ctx context.Context) ([]school.RoutineEntry, error)
	LessonSchedule(ctx context.Context) ([]school.DaySchedule, error)
}

// Fetcher issues one request per call and never returns an error: failures are
// logged once and replaced with a neutral value.
type Fetcher struct {
	school   SchoolSource
	weather  weather.Provider
	location weather.Location
	logger   *log.Logger
}

func NewFetcher(src SchoolSource, provider weather.Provider, loc weather.Location, logger *log.Logger) *Fetcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Fetcher{school: src, weather: provider, location: loc, logger: logger}
}

// Notifications returns an empty, non-nil slice on failure.
func (f *Fetcher) Notifications(ctx context.Context) []school.Notification {
	items, err := f.school.Notifications(ctx)
	if err != nil {
		f.fail(KindNotifications, err)
		return []school.Notification{}
	}
	if items == nil {
		items = []school.Notification{}
	}
	return items
}

// DailyRoutine returns nil on failure.
func (f *Fetcher) DailyRoutine(ctx context.Context) []school.RoutineEntry {
	entries, err := f.school.DailyRoutine(ctx)
	if err != nil {
		f.fail(KindDailyRoutine, err)
		return nil
	}
	return entries
}

// LessonSchedule returns nil on failure.
func (f *Fetcher) LessonSchedule(ctx context.Context) []school.DaySchedule {
	days, err := f.school.LessonSchedule(ctx)
	if err != nil {
		f.fail(KindFullLessonSchedule, err)
		return nil
	}
	return days
}

// Weather returns nil on failure.
func (f *Fetcher) Weather(ctx context.Context) *weather.Snapshot {
	if f.weather == nil {
		f.fail(KindWeather, errNoProvider)
		return nil
	}
	snap, err := f.weather.Current(ctx, f.location)
	if err != nil {
		f.fail(KindWeather, err)
		return nil
	}
	return &snap
}

func (f *Fetcher) fail(kind Kind, err error) {
	f.logger.Printf("WARN: fetch %s failed: %v", kind, err)
}
