package school

// Notification is a single announcement shown on the board.
// Empty fields are treated as absent.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// RoutineEntry is one line of the daily routine.
type RoutineEntry struct {
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Lesson is a single subject slot for a class.
type Lesson struct {
	Name      string `json:"name"`
	Classroom string `json:"classroom"`
}

// ClassBlock groups the lessons of one class for a day.
type ClassBlock struct {
	Class   string   `json:"class"`
	Lessons []Lesson `json:"lessons"`
}

// DaySchedule is the schedule of every class for one weekday.
// Weekday follows time.Weekday numbering: 0 is Sunday.
type DaySchedule struct {
	Weekday int          `json:"weekday"`
	Classes []ClassBlock `json:"lessons"`
}

// HasLessons reports whether the day has at least one class and its first class has lessons.
func (d DaySchedule) HasLessons() bool {
	return len(d.Classes) > 0 && len(d.Classes[0].Lessons) > 0
}

// FindDay returns the schedule whose Weekday equals weekday.
func FindDay(days []DaySchedule, weekday int) (DaySchedule, bool) {
	for _, d := range days {
		if d.Weekday == weekday {
			return d, true
		}
	}
	return DaySchedule{}, false
}
