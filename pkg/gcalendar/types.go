package gcalendar

import "time"

// CreateEventRequest is the input for creating a Google Calendar event.
// AllDay events only use the date of StartTime.
type CreateEventRequest struct {
	CalendarID  string
	Summary     string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	AllDay      bool
	Timezone    string // IANA name, e.g. "Europe/Berlin"
}

// Event is a simplified representation of a Google Calendar event.
type Event struct {
	ID          string
	Summary     string
	Description string
	HTMLLink    string
	StartTime   time.Time
	EndTime     time.Time
	AllDay      bool
}

// ListEventsRequest is the input for listing Google Calendar events.
type ListEventsRequest struct {
	CalendarID string
	TimeMin    time.Time
	TimeMax    time.Time
	Query      string
	MaxResults int64
}
