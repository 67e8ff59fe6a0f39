package render

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/i474232898/school-board/internal/display"
	"github.com/i474232898/school-board/internal/school"
	"github.com/i474232898/school-board/internal/timedisplay"
	"github.com/i474232898/school-board/internal/weather"
)

// Renderer turns fetched board data into region content.
// It never fails: missing fields fall back to placeholder text.
type Renderer struct {
	surface display.Surface
	now     func() time.Time
	loc     *time.Location
	logger  *log.Logger
}

// New creates a Renderer. now and loc decide which weekday's lessons are shown.
func New(surface display.Surface, now func() time.Time, loc *time.Location, logger *log.Logger) *Renderer {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Renderer{surface: surface, now: now, loc: loc, logger: logger}
}

// Notifications renders one block per notification in order, or a placeholder when there are none.
func (r *Renderer) Notifications(region display.Region, items []school.Notification) {
	if len(items) == 0 {
		r.paragraph(region, NoNotifications)
		return
	}

	view := make([]school.Notification, 0, len(items))
	for _, n := range items {
		view = append(view, school.Notification{
			Title:       orDefault(n.Title, UntitledTitle),
			Description: orDefault(n.Description, EmptyDescription),
		})
	}
	r.execute(region, notificationsTmpl, view, NoNotifications)
}

// DailyRoutine renders "<name>: <start> - <end>" lines under a heading.
func (r *Renderer) DailyRoutine(region display.Region, entries []school.RoutineEntry) {
	if len(entries) == 0 {
		r.surface.SetText(region, RoutineUnavailable)
		return
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, RoutineLine(e))
	}
	r.execute(region, routineTmpl, struct {
		Heading string
		Lines   []string
	}{RoutineHeading, lines}, RoutineUnavailable)
}

// RoutineLine formats a single routine entry.
func RoutineLine(e school.RoutineEntry) string {
	return fmt.Sprintf("%s: %s - %s", e.Name, orDefault(e.StartTime, TimeNotSpecified), orDefault(e.EndTime, TimeNotSpecified))
}

// LessonSchedule renders today's lessons as a table and writes the dated heading.
// days is the whole week; today is picked by weekday number (0 = Sunday).
// The heading is cleared whenever there is no table to title.
func (r *Renderer) LessonSchedule(region, heading display.Region, days []school.DaySchedule) {
	if len(days) == 0 {
		r.surface.SetText(heading, "")
		r.paragraph(region, ScheduleLoadFailed)
		return
	}

	today := r.now().In(r.loc)
	day, ok := school.FindDay(days, int(today.Weekday()))
	if !ok || !day.HasLessons() {
		r.surface.SetText(heading, "")
		r.paragraph(region, ScheduleMissing)
		return
	}

	date, _ := timedisplay.Format(today)
	r.surface.SetText(heading, fmt.Sprintf(ScheduleHeadingFmt, date))

	view := make([]school.ClassBlock, 0, len(day.Classes))
	for _, c := range day.Classes {
		block := school.ClassBlock{
			Class:   orDefault(c.Class, ClassNotSpecified),
			Lessons: make([]school.Lesson, 0, len(c.Lessons)),
		}
		for _, l := range c.Lessons {
			block.Lessons = append(block.Lessons, school.Lesson{
				Name:      orDefault(l.Name, LessonUnnamed),
				Classroom: orDefault(l.Classroom, ClassroomUnassigned),
			})
		}
		view = append(view, block)
	}
	r.execute(region, timetableTmpl, view, ScheduleMissing)
}

// Weather renders the location and temperature, or a failure message when snap is nil.
func (r *Renderer) Weather(region display.Region, snap *weather.Snapshot) {
	if snap == nil {
		r.paragraph(region, WeatherLoadFailed)
		return
	}
	r.execute(region, weatherTmpl, struct {
		Name string
		Temp string
	}{snap.Name, snap.TempString()}, WeatherLoadFailed)
}

// HideLoader swaps the loader for the main content.
func (r *Renderer) HideLoader(loader, main display.Region) {
	r.surface.SetVisible(loader, false)
	r.surface.SetVisible(main, true)
}

func (r *Renderer) paragraph(region display.Region, text string) {
	r.execute(region, paragraphTmpl, text, text)
}

func (r *Renderer) execute(region display.Region, tmpl *template.Template, data any, fallback string) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		r.logger.Printf("WARN: render %s into %s failed: %v", tmpl.Name(), region, err)
		r.surface.SetText(region, fallback)
		return
	}
	r.surface.SetHTML(region, template.HTML(buf.String()))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
