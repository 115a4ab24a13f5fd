package gcalendar

import "time"

// AllDayEventRequest describes an all-day event on a single date.
type AllDayEventRequest struct {
	CalendarID  string // Defaults to "primary"
	Summary     string
	Description string
	Date        time.Time // Only the calendar day is used
}

// Event is a simplified representation of a Google Calendar event.
type Event struct {
	ID       string
	Summary  string
	HtmlLink string
	Date     time.Time
}
