package usecase

import (
	"context"

	"productivity-hub/internal/model"
	"productivity-hub/internal/task"
	"productivity-hub/internal/task/repository"
)

// Detail retrieves one of the caller's tasks. Returns ErrTaskNotFound when missing.
func (uc *implUseCase) Detail(ctx context.Context, sc model.Scope, id string) (task.DetailOutput, error) {
	t, err := uc.getOwned(ctx, sc, id)
	if err != nil {
		return task.DetailOutput{}, err
	}
	return task.DetailOutput{Task: t}, nil
}

// Update applies a partial update. A changed due date moves the calendar event.
func (uc *implUseCase) Update(ctx context.Context, sc model.Scope, input task.UpdateInput) (task.UpdateOutput, error) {
	if input.Priority != "" && !input.Priority.IsValid() {
		return task.UpdateOutput{}, task.ErrInvalidPriority
	}

	existing, err := uc.getOwned(ctx, sc, input.ID)
	if err != nil {
		return task.UpdateOutput{}, err
	}

	title := existing.Title
	if input.Title != "" {
		title = normalizeTitle(input.Title)
		if title == "" {
			return task.UpdateOutput{}, task.ErrEmptyTitle
		}
	}

	priority := existing.Priority
	if input.Priority != "" {
		priority = input.Priority
	}

	dueDate := existing.DueDate
	switch {
	case input.ClearDueDate:
		dueDate = nil
	case input.DueDate != nil:
		dueDate = uc.normalizeDue(input.DueDate)
	}

	completed := existing.Completed
	if input.Completed != nil {
		completed = *input.Completed
	}

	opt := repository.UpdateTaskOptions{
		ID:              existing.ID,
		Title:           title,
		Description:     uc.coalesce(input.Description, existing.Description),
		Completed:       completed,
		Priority:        priority,
		DueDate:         dueDate,
		ProjectID:       uc.coalesce(input.ProjectID, existing.ProjectID),
		CalendarEventID: existing.CalendarEventID,
		CalendarLink:    existing.CalendarLink,
	}

	if !sameDay(existing.DueDate, dueDate) {
		uc.deleteCalendarEvent(ctx, existing.CalendarEventID)
		opt.CalendarEventID, opt.CalendarLink = "", ""
		if dueDate != nil {
			opt.CalendarEventID, opt.CalendarLink = uc.createCalendarEvent(ctx, model.Task{
				Title:       opt.Title,
				Description: opt.Description,
				Priority:    opt.Priority,
				DueDate:     dueDate,
				ProjectID:   opt.ProjectID,
			})
		}
	}

	t, err := uc.repo.UpdateTask(ctx, opt)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Update UpdateTask: %v", err)
		return task.UpdateOutput{}, err
	}
	if t.ID == "" {
		return task.UpdateOutput{}, task.ErrTaskNotFound
	}
	return task.UpdateOutput{Task: t}, nil
}

// Toggle sets the completion state of a task.
func (uc *implUseCase) Toggle(ctx context.Context, sc model.Scope, id string, completed bool) (task.UpdateOutput, error) {
	return uc.Update(ctx, sc, task.UpdateInput{ID: id, Completed: &completed})
}

// Delete removes a task and its calendar event. Returns ErrTaskNotFound when missing.
func (uc *implUseCase) Delete(ctx context.Context, sc model.Scope, id string) error {
	existing, err := uc.getOwned(ctx, sc, id)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteTask(ctx, existing.ID); err != nil {
		uc.l.Errorf(ctx, "uc.Delete DeleteTask: %v", err)
		return err
	}

	uc.deleteCalendarEvent(ctx, existing.CalendarEventID)
	return nil
}

func (uc *implUseCase) getOwned(ctx context.Context, sc model.Scope, id string) (model.Task, error) {
	if sc.UserID == "" {
		return model.Task{}, task.ErrMissingUser
	}
	if id == "" {
		return model.Task{}, task.ErrTaskNotFound
	}

	t, err := uc.repo.GetTask(ctx, repository.GetTaskOptions{ID: id, UserID: sc.UserID})
	if err != nil {
		uc.l.Errorf(ctx, "uc.getOwned GetTask: %v", err)
		return model.Task{}, err
	}
	if t.ID == "" {
		return model.Task{}, task.ErrTaskNotFound
	}
	return t, nil
}
