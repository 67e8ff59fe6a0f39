package display

import "html/template"

// Region names a fixed area of the board page.
type Region string

const (
	RegionNotifications Region = "notifications-container"
	RegionDailyRoutine  Region = "daily-routine"
	RegionTimetable     Region = "timetable"
	RegionDateHeading   Region = "date-heading"
	RegionCurrentDate   Region = "current-date"
	RegionCurrentTime   Region = "current-time"
	RegionLoader        Region = "loader"
	RegionMainContent   Region = "main-content"
)

// Regions lists every region in page order.
var Regions = []Region{
	RegionLoader,
	RegionMainContent,
	RegionCurrentDate,
	RegionCurrentTime,
	RegionNotifications,
	RegionDailyRoutine,
	RegionDateHeading,
	RegionTimetable,
}

// IsRegion reports whether r names a region of the page.
func IsRegion(r Region) bool {
	for _, known := range Regions {
		if known == r {
			return true
		}
	}
	return false
}

// Surface is where renderers write. Each call replaces the region's previous value.
type Surface interface {
	SetHTML(r Region, html template.HTML)
	SetText(r Region, text string)
	SetOpacity(r Region, opacity float64)
	SetVisible(r Region, visible bool)
}
