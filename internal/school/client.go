package school

import (
	"context"
	"net/http"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/school-board/internal/fetch"
)

const (
	PathNotifications      = "notifications"
	PathDailyRoutine       = "daily_routine"
	PathFullLessonSchedule = "full_lesson_schedule"
)

// Breakers holds one circuit breaker per school API resource. Nil entries disable breaking.
type Breakers struct {
	Notifications  *gobreaker.CircuitBreaker
	DailyRoutine   *gobreaker.CircuitBreaker
	LessonSchedule *gobreaker.CircuitBreaker
}

// Client reads board data from the school schedule API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breakers   Breakers
}

func NewClient(baseURL string, httpClient *http.Client, breakers Breakers) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/",
		httpClient: httpClient,
		breakers:   breakers,
	}
}

func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var out []Notification
	if err := fetch.GetJSON(ctx, c.httpClient, c.breakers.Notifications, c.baseURL+PathNotifications, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DailyRoutine(ctx context.Context) ([]RoutineEntry, error) {
	var out []RoutineEntry
	if err := fetch.GetJSON(ctx, c.httpClient, c.breakers.DailyRoutine, c.baseURL+PathDailyRoutine, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) LessonSchedule(ctx context.Context) ([]DaySchedule, error) {
	var out []DaySchedule
	if err := fetch.GetJSON(ctx, c.httpClient, c.breakers.LessonSchedule, c.baseURL+PathFullLessonSchedule, &out); err != nil {
		return nil, err
	}
	return out, nil
}
