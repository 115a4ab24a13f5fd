package memory

import (
	"context"
	"time"

	"productivity-hub/internal/model"
	"productivity-hub/internal/task/repository"
)

// CreateTask stores a new open task and returns it with a fresh ID.
func (r *implRepository) CreateTask(ctx context.Context, opt repository.CreateTaskOptions) (model.Task, error) {
	now := r.now()
	t := model.Task{
		ID:          r.newID(),
		UserID:      opt.UserID,
		Title:       opt.Title,
		Description: opt.Description,
		DueDate:     copyTime(opt.DueDate),
		Priority:    opt.Priority,
		ProjectID:   opt.ProjectID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	r.mu.Lock()
	r.tasks[t.ID] = t
	r.mu.Unlock()

	r.l.Debugf(ctx, "%s: id=%s user=%s", r.dsn("CreateTask"), t.ID, t.UserID)
	return cloneTask(t), nil
}

func (r *implRepository) GetTask(ctx context.Context, opt repository.GetTaskOptions) (model.Task, error) {
	r.mu.RLock()
	t, ok := r.tasks[opt.ID]
	r.mu.RUnlock()

	if !ok || (opt.UserID != "" && t.UserID != opt.UserID) {
		return model.Task{}, nil
	}
	return cloneTask(t), nil
}

func (r *implRepository) ListTasks(ctx context.Context, opt repository.ListTasksOptions) ([]model.Task, int, error) {
	r.mu.RLock()
	matched := make([]model.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if opt.Matches(t) {
			matched = append(matched, cloneTask(t))
		}
	}
	r.mu.RUnlock()

	repository.SortNewestFirst(matched)
	return repository.Paginate(matched, opt.Limit, opt.Offset), len(matched), nil
}

// UpdateTask replaces the mutable fields. Returns a zero-value Task when the ID is unknown.
func (r *implRepository) UpdateTask(ctx context.Context, opt repository.UpdateTaskOptions) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[opt.ID]
	if !ok {
		return model.Task{}, nil
	}

	t.Title = opt.Title
	t.Description = opt.Description
	t.Completed = opt.Completed
	t.Priority = opt.Priority
	t.DueDate = copyTime(opt.DueDate)
	t.ProjectID = opt.ProjectID
	t.CalendarEventID = opt.CalendarEventID
	t.CalendarLink = opt.CalendarLink
	t.UpdatedAt = r.now()
	r.tasks[t.ID] = t

	return cloneTask(t), nil
}

func (r *implRepository) DeleteTask(ctx context.Context, id string) error {
	r.mu.Lock()
	delete(r.tasks, id)
	r.mu.Unlock()
	return nil
}

// cloneTask detaches the DueDate pointer so callers cannot mutate stored state.
func cloneTask(t model.Task) model.Task {
	t.DueDate = copyTime(t.DueDate)
	return t
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
