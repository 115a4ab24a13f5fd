package usecase

import (
	"context"
	"fmt"
	"time"

	"productivity-hub/internal/model"
	"productivity-hub/pkg/datemath"
	"productivity-hub/pkg/directive"
	"productivity-hub/pkg/gcalendar"
)

// coalesce returns newVal when set, otherwise existing.
func (uc *implUseCase) coalesce(newVal, existing string) string {
	if newVal != "" {
		return newVal
	}
	return existing
}

// normalizeDue moves an explicit due date to midnight of its day in the configured timezone.
func (uc *implUseCase) normalizeDue(t *time.Time) *time.Time {
	d := datemath.StartOfDay(t.In(uc.clock.Location()))
	return &d
}

func normalizeTitle(s string) string {
	return directive.CollapseWhitespace(s)
}

func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// createCalendarEvent returns the new event's ID and link, or empty strings when sync is
// disabled or the call fails.
func (uc *implUseCase) createCalendarEvent(ctx context.Context, t model.Task) (string, string) {
	if uc.calendar == nil || t.DueDate == nil {
		return "", ""
	}

	desc := fmt.Sprintf("Priority: %s\nProject: %s", t.Priority, t.ProjectID)
	if t.Description != "" {
		desc = t.Description + "\n\n" + desc
	}

	event, err := uc.calendar.CreateAllDayEvent(ctx, gcalendar.AllDayEventRequest{
		CalendarID:  uc.cfg.CalendarID,
		Summary:     t.Title,
		Description: desc,
		Date:        *t.DueDate,
	})
	if err != nil {
		uc.l.Warnf(ctx, "uc.createCalendarEvent: %v", err)
		return "", ""
	}
	return event.ID, event.HtmlLink
}

func (uc *implUseCase) deleteCalendarEvent(ctx context.Context, eventID string) {
	if uc.calendar == nil || eventID == "" {
		return
	}
	if err := uc.calendar.DeleteEvent(ctx, uc.cfg.CalendarID, eventID); err != nil {
		uc.l.Warnf(ctx, "uc.deleteCalendarEvent %s: %v", eventID, err)
	}
}
