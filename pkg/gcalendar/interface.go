package gcalendar

import "context"

// ICalendar is the subset of the Calendar API the service uses.
type ICalendar interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error)
	ListEvents(ctx context.Context, req ListEventsRequest) ([]Event, error)
}

// DefaultCalendarID addresses the calendar owned by the credentials.
const DefaultCalendarID = "primary"
