package usecase

import (
	"context"
	"fmt"
	"strings"

	"todo-assistant/internal/assistant"
	"todo-assistant/pkg/gcalendar"
)

// mirrorToCalendar adds a one-hour event for every reconciled task with a
// due time. Tasks that already have a matching event are skipped. Failures
// are logged only. All calls share one CalendarTimeout budget.
func (uc *implUseCase) mirrorToCalendar(ctx context.Context, p assistant.Proposal) {
	if uc.opts.Calendar == nil {
		return
	}
	timeout := uc.opts.CalendarTimeout
	if timeout <= 0 {
		timeout = defaultCalendarTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	loc := uc.dates.Location()

	for _, t := range p.Tasks {
		if t.ID == 0 || t.Due.IsZero() || !t.Due.HasTime() {
			continue
		}
		start := t.Due.In(loc)
		end := start.Add(mirrorDuration)

		events, err := uc.opts.Calendar.ListEvents(ctx, gcalendar.ListEventsRequest{
			CalendarID: uc.opts.CalendarID,
			TimeMin:    start,
			TimeMax:    end,
			Query:      t.Name,
		})
		if err != nil {
			uc.l.Warnf(ctx, "uc.Ask mirrorToCalendar ListEvents: %v", err)
			continue
		}
		if hasEvent(events, t.Name) {
			continue
		}

		_, err = uc.opts.Calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
			CalendarID:  uc.opts.CalendarID,
			Summary:     t.Name,
			Description: fmt.Sprintf("To-do task #%d", t.ID),
			StartTime:   start,
			EndTime:     end,
			Timezone:    loc.String(),
		})
		if err != nil {
			uc.l.Warnf(ctx, "uc.Ask mirrorToCalendar CreateEvent: %v", err)
		}
	}
}

func hasEvent(events []gcalendar.Event, summary string) bool {
	for _, ev := range events {
		if strings.EqualFold(strings.TrimSpace(ev.Summary), summary) {
			return true
		}
	}
	return false
}
