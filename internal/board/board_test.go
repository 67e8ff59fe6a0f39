package board

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/i474232898/school-board/internal/display"
	"github.com/i474232898/school-board/internal/render"
	"github.com/i474232898/school-board/internal/scheduler/schedulertest"
	"github.com/i474232898/school-board/internal/school"
	"github.com/i474232898/school-board/internal/timedisplay"
	"github.com/i474232898/school-board/internal/weather"
	"github.com/i474232898/school-board/internal/weather/providers"
)

type fakeAPI struct {
	mu   sync.Mutex
	hits []string
}

func (a *fakeAPI) handler() http.Handler {
	bodies := map[string]string{
		"/api/notifications":        `[{"title":"Собрание","description":"В 15:00"}]`,
		"/api/daily_routine":        `[{"name":"Зарядка","start_time":"08:00","end_time":"08:15"}]`,
		"/api/full_lesson_schedule": `[{"weekday":1,"lessons":[{"class":"5А","lessons":[{"name":"Математика","classroom":"12"}]}]}]`,
		"/weather":                  `{"name":"Казань","main":{"temp":-1.5}}`,
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.hits = append(a.hits, r.URL.Path)
		a.mu.Unlock()

		body, ok := bodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	})
}

func (a *fakeAPI) count(path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, h := range a.hits {
		if h == path {
			n++
		}
	}
	return n
}

func (a *fakeAPI) order() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.hits...)
}

func newBoard(t *testing.T, intervals Intervals) (*Board, *display.Page, *schedulertest.Manual, *fakeAPI) {
	t.Helper()

	api := &fakeAPI{}
	ts := httptest.NewServer(api.handler())
	t.Cleanup(ts.Close)

	logger := log.New(io.Discard, "", 0)
	sched := schedulertest.NewManual() // Monday
	page := display.NewPage()

	client := school.NewClient(ts.URL+"/api", ts.Client(), school.Breakers{})
	provider := providers.NewOpenWeatherProvider(ts.Client(), "key", "ru", nil).WithBaseURL(ts.URL + "/weather")
	fetcher := NewFetcher(client, provider, weather.Location{City: "Kazan"}, logger)
	renderer := render.New(page, sched.Now, time.UTC, logger)
	clock := timedisplay.New(page, sched.Now, time.UTC)

	b, err := New(fetcher, renderer, clock, sched, page, intervals, logger)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b, page, sched, api
}

func defaultIntervals() Intervals {
	return Intervals{
		Clock:     time.Second,
		Rotation:  10 * time.Second,
		FadeDelay: time.Second,
	}
}

func region(t *testing.T, p *display.Page, r display.Region) display.RegionState {
	t.Helper()
	s, err := p.Region(r)
	if err != nil {
		t.Fatalf("region %s: %v", r, err)
	}
	return s
}

func TestBootstrapRendersEveryRegionInOrder(t *testing.T) {
	b, page, _, api := newBoard(t, defaultIntervals())

	b.Bootstrap(context.Background())

	want := []string{"/api/notifications", "/api/daily_routine", "/api/full_lesson_schedule"}
	got := api.order()
	if len(got) != len(want) {
		t.Fatalf("expected requests %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected requests %v, got %v", want, got)
		}
	}

	if s := region(t, page, display.RegionCurrentTime); s.HTML != "08:00:00" {
		t.Fatalf("expected clock readout, got %q", s.HTML)
	}
	if s := region(t, page, display.RegionNotifications); !strings.Contains(string(s.HTML), "Собрание") {
		t.Fatalf("expected notifications, got %q", s.HTML)
	}
	if s := region(t, page, display.RegionDailyRoutine); !strings.Contains(string(s.HTML), "Зарядка: 08:00 - 08:15") {
		t.Fatalf("expected routine, got %q", s.HTML)
	}
	if s := region(t, page, display.RegionTimetable); !strings.Contains(string(s.HTML), "Математика") {
		t.Fatalf("expected timetable, got %q", s.HTML)
	}
	if s := region(t, page, display.RegionDateHeading); s.HTML != "Расписание на 02.09.2024" {
		t.Fatalf("unexpected heading %q", s.HTML)
	}
	if region(t, page, display.RegionLoader).Visible || !region(t, page, display.RegionMainContent).Visible {
		t.Fatal("loader should be hidden and main content shown after bootstrap")
	}
}

func TestStartRotatesWeatherAndNotifications(t *testing.T) {
	b, page, sched, api := newBoard(t, defaultIntervals())
	b.Bootstrap(context.Background())
	if err := b.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	sched.Advance(11 * time.Second)
	if api.count("/weather") != 1 {
		t.Fatalf("expected one weather fetch, got %d", api.count("/weather"))
	}
	s := region(t, page, display.RegionNotifications)
	if !strings.Contains(string(s.HTML), "Казань") || !strings.Contains(string(s.HTML), "-1.5°C") || s.Opacity != 1 {
		t.Fatalf("expected weather panel, got %+v", s)
	}

	sched.Advance(10 * time.Second)
	if api.count("/api/notifications") != 2 {
		t.Fatalf("expected notifications fetched again, got %d", api.count("/api/notifications"))
	}
	if st := b.Rotation(); st.Current != "notifications" || st.Next != "weather" || st.Cycles != 2 {
		t.Fatalf("unexpected rotation status: %+v", st)
	}

	if s := region(t, page, display.RegionCurrentTime); s.HTML != "08:00:21" {
		t.Fatalf("expected clock to follow the scheduler, got %q", s.HTML)
	}
}

func TestPeriodicRefresh(t *testing.T) {
	intervals := defaultIntervals()
	intervals.Refresh = time.Minute

	b, _, sched, api := newBoard(t, intervals)
	b.Bootstrap(context.Background())
	if err := b.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	sched.Advance(2 * time.Minute)
	if n := api.count("/api/daily_routine"); n != 3 {
		t.Fatalf("expected bootstrap plus two refreshes, got %d", n)
	}
	if n := api.count("/api/full_lesson_schedule"); n != 3 {
		t.Fatalf("expected bootstrap plus two refreshes, got %d", n)
	}
}

func TestNewRejectsBadIntervals(t *testing.T) {
	page := display.NewPage()
	sched := schedulertest.NewManual()
	_, err := New(
		NewFetcher(nil, nil, weather.Location{}, nil),
		render.New(page, nil, nil, nil),
		timedisplay.New(page, nil, nil),
		sched,
		page,
		Intervals{Clock: time.Second, Rotation: time.Second, FadeDelay: 2 * time.Second},
		nil,
	)
	if err == nil {
		t.Fatal("expected error when fade delay exceeds the rotation period")
	}
}
