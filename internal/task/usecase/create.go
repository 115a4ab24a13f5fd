package usecase

import (
	"context"

	"productivity-hub/internal/model"
	"productivity-hub/internal/task"
	"productivity-hub/internal/task/repository"
)

// Create turns quick-add text into a stored task.
// Precedence per field: explicit input, then directive, then configured default.
func (uc *implUseCase) Create(ctx context.Context, sc model.Scope, input task.CreateInput) (task.CreateOutput, error) {
	if sc.UserID == "" {
		return task.CreateOutput{}, task.ErrMissingUser
	}
	if input.Priority != "" && !input.Priority.IsValid() {
		return task.CreateOutput{}, task.ErrInvalidPriority
	}

	parsed, err := uc.Parse(ctx, task.ParseInput{RawText: input.RawText})
	if err != nil {
		return task.CreateOutput{}, err
	}
	if parsed.Title == "" {
		return task.CreateOutput{}, task.ErrEmptyTitle
	}

	priority := uc.cfg.DefaultPriority
	switch {
	case input.Priority != "":
		priority = input.Priority
	case parsed.Priority != "":
		priority = parsed.Priority
	}

	dueDate := parsed.DueDate
	if input.DueDate != nil {
		dueDate = uc.normalizeDue(input.DueDate)
	}

	projectID := uc.coalesce(input.ProjectID, uc.cfg.DefaultProjectID)

	t, err := uc.repo.CreateTask(ctx, repository.CreateTaskOptions{
		UserID:      sc.UserID,
		Title:       parsed.Title,
		Description: input.Description,
		Priority:    priority,
		DueDate:     dueDate,
		ProjectID:   projectID,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Create CreateTask: %v", err)
		return task.CreateOutput{}, err
	}

	if t.DueDate != nil {
		t = uc.attachCalendarEvent(ctx, t)
	}

	uc.l.Infof(ctx, "uc.Create: task %s for user %s (priority=%s due=%v)", t.ID, sc.UserID, t.Priority, t.DueDate != nil)
	return task.CreateOutput{Task: t, Parsed: parsed}, nil
}

// attachCalendarEvent creates the mirror event and stores its ID. Failures are logged and the
// task is returned unchanged.
func (uc *implUseCase) attachCalendarEvent(ctx context.Context, t model.Task) model.Task {
	eventID, link := uc.createCalendarEvent(ctx, t)
	if eventID == "" {
		return t
	}

	updated, err := uc.repo.UpdateTask(ctx, repository.UpdateTaskOptions{
		ID:              t.ID,
		Title:           t.Title,
		Description:     t.Description,
		Completed:       t.Completed,
		Priority:        t.Priority,
		DueDate:         t.DueDate,
		ProjectID:       t.ProjectID,
		CalendarEventID: eventID,
		CalendarLink:    link,
	})
	if err != nil || updated.ID == "" {
		uc.l.Warnf(ctx, "uc.Create: failed to store calendar event %s on task %s: %v", eventID, t.ID, err)
		return t
	}
	return updated
}
