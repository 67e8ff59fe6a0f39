package board

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/i474232898/school-board/internal/fetch"
	"github.com/i474232898/school-board/internal/school"
	"github.com/i474232898/school-board/internal/weather"
	"github.com/i474232898/school-board/internal/weather/providers"
)

func failingServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newFetcher(t *testing.T, ts *httptest.Server, buf *bytes.Buffer) *Fetcher {
	t.Helper()
	client := school.NewClient(ts.URL+"/api/", ts.Client(), school.Breakers{})
	provider := providers.NewOpenWeatherProvider(ts.Client(), "key", "ru", nil).WithBaseURL(ts.URL + "/weather")
	return NewFetcher(client, provider, weather.Location{City: "Kazan"}, log.New(buf, "", 0))
}

func assertOneDiagnostic(t *testing.T, buf *bytes.Buffer, kind Kind) {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 || lines[0] == "" {
		t.Fatalf("%s: expected exactly one log line, got %q", kind, buf.String())
	}
	if !strings.Contains(lines[0], "fetch "+string(kind)+" failed") {
		t.Fatalf("%s: unexpected log line %q", kind, lines[0])
	}
}

func TestFetcherNeutralValuesOnServerError(t *testing.T) {
	ts := failingServer(t)
	ctx := context.Background()

	t.Run("notifications", func(t *testing.T) {
		var buf bytes.Buffer
		got := newFetcher(t, ts, &buf).Notifications(ctx)
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", got)
		}
		assertOneDiagnostic(t, &buf, KindNotifications)
	})

	t.Run("daily_routine", func(t *testing.T) {
		var buf bytes.Buffer
		if got := newFetcher(t, ts, &buf).DailyRoutine(ctx); got != nil {
			t.Fatalf("expected nil, got %#v", got)
		}
		assertOneDiagnostic(t, &buf, KindDailyRoutine)
	})

	t.Run("full_lesson_schedule", func(t *testing.T) {
		var buf bytes.Buffer
		if got := newFetcher(t, ts, &buf).LessonSchedule(ctx); got != nil {
			t.Fatalf("expected nil, got %#v", got)
		}
		assertOneDiagnostic(t, &buf, KindFullLessonSchedule)
	})

	t.Run("weather", func(t *testing.T) {
		var buf bytes.Buffer
		if got := newFetcher(t, ts, &buf).Weather(ctx); got != nil {
			t.Fatalf("expected nil, got %#v", got)
		}
		assertOneDiagnostic(t, &buf, KindWeather)
	})
}

func TestFetcherMalformedJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"oops":`))
	}))
	defer ts.Close()

	var buf bytes.Buffer
	f := newFetcher(t, ts, &buf)
	if got := f.Notifications(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty notifications, got %#v", got)
	}
	assertOneDiagnostic(t, &buf, KindNotifications)
}

func TestFetcherSuccessLogsNothing(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/notifications":
			_, _ = w.Write([]byte(`null`))
		case "/weather":
			_, _ = w.Write([]byte(`{"name":"Kazan","main":{"temp":1}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	var buf bytes.Buffer
	f := newFetcher(t, ts, &buf)

	if got := f.Notifications(context.Background()); got == nil || len(got) != 0 {
		t.Fatalf("null body should become an empty slice, got %#v", got)
	}
	if snap := f.Weather(context.Background()); snap == nil || snap.Name != "Kazan" {
		t.Fatalf("unexpected weather: %#v", snap)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %q", buf.String())
	}
}

func TestFetcherWithoutWeatherProvider(t *testing.T) {
	var buf bytes.Buffer
	f := NewFetcher(school.NewClient("http://example.invalid", http.DefaultClient, school.Breakers{}), nil, weather.Location{}, log.New(&buf, "", 0))

	if snap := f.Weather(context.Background()); snap != nil {
		t.Fatalf("expected nil snapshot, got %#v", snap)
	}
	assertOneDiagnostic(t, &buf, KindWeather)
}

func TestFetcherSingleDiagnosticWhenBreakerTrips(t *testing.T) {
	ts := failingServer(t)

	var fetchBuf, breakerBuf bytes.Buffer
	cfg := fetch.BreakerConfig{MaxFailures: 1, Interval: time.Minute, Timeout: time.Minute}
	client := school.NewClient(ts.URL+"/api/", ts.Client(), school.Breakers{
		Notifications: fetch.NewBreaker(string(KindNotifications), cfg, log.New(&breakerBuf, "", 0)),
	})
	f := NewFetcher(client, nil, weather.Location{}, log.New(&fetchBuf, "", 0))

	// First call fails upstream and trips the circuit.
	if got := f.Notifications(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty notifications, got %#v", got)
	}
	assertOneDiagnostic(t, &fetchBuf, KindNotifications)
	if !strings.Contains(breakerBuf.String(), "DEBUG: circuit notifications changed from closed to open") {
		t.Fatalf("expected state change on the breaker logger, got %q", breakerBuf.String())
	}

	// Second call is short-circuited and still reports exactly once.
	fetchBuf.Reset()
	if got := f.Notifications(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty notifications, got %#v", got)
	}
	assertOneDiagnostic(t, &fetchBuf, KindNotifications)
	if !strings.Contains(fetchBuf.String(), fetch.ErrCircuitOpen.Error()) {
		t.Fatalf("expected circuit open reason, got %q", fetchBuf.String())
	}
}
