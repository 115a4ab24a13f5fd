package memos

import (
	"context"
	"errors"
	"strings"
	"time"

	"productivity-hub/internal/model"
	"productivity-hub/internal/task/repository"
	pkgLog "productivity-hub/pkg/log"
)

const (
	visibilityPrivate = "PRIVATE"
	listPageSize      = 1000
)

type implRepository struct {
	client *Client
	loc    *time.Location
	l      pkgLog.Logger
}

// New creates a Memos-backed repository. Due dates are resolved in loc.
func New(client *Client, loc *time.Location, l pkgLog.Logger) repository.Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &implRepository{
		client: client,
		loc:    loc,
		l:      l,
	}
}

func (r *implRepository) CreateTask(ctx context.Context, opt repository.CreateTaskOptions) (model.Task, error) {
	content := encodeContent(document{
		UserID:      opt.UserID,
		Title:       opt.Title,
		Description: opt.Description,
		DueDate:     opt.DueDate,
		Priority:    opt.Priority,
		ProjectID:   opt.ProjectID,
	})

	memo, err := r.client.CreateMemo(ctx, CreateMemoRequest{Content: content, Visibility: visibilityPrivate})
	if err != nil {
		r.l.Errorf(ctx, "memos repository: failed to create memo: %v", err)
		return model.Task{}, repository.ErrFailedToInsert
	}

	t, err := r.memoToTask(memo)
	if err != nil {
		r.l.Errorf(ctx, "memos repository: created memo %s is unreadable: %v", memo.Name, err)
		return model.Task{}, repository.ErrFailedToInsert
	}
	return t, nil
}

func (r *implRepository) GetTask(ctx context.Context, opt repository.GetTaskOptions) (model.Task, error) {
	memo, err := r.client.GetMemo(ctx, opt.ID)
	if err != nil {
		if errors.Is(err, ErrMemoNotFound) {
			return model.Task{}, nil
		}
		r.l.Errorf(ctx, "memos repository: failed to get memo %s: %v", opt.ID, err)
		return model.Task{}, repository.ErrFailedToGet
	}

	t, err := r.memoToTask(memo)
	if err != nil {
		// Not one of ours; treat like a miss.
		return model.Task{}, nil
	}
	if opt.UserID != "" && t.UserID != opt.UserID {
		return model.Task{}, nil
	}
	return t, nil
}

func (r *implRepository) ListTasks(ctx context.Context, opt repository.ListTasksOptions) ([]model.Task, int, error) {
	tag := strings.TrimPrefix(taskTag, "#")
	if opt.UserID != "" {
		tag = strings.TrimPrefix(userTag, "#") + tagValue(opt.UserID)
	}

	memos, err := r.client.ListMemos(ctx, tag, listPageSize)
	if err != nil {
		r.l.Errorf(ctx, "memos repository: failed to list memos: %v", err)
		return nil, 0, repository.ErrFailedToList
	}

	tasks := make([]model.Task, 0, len(memos))
	for i := range memos {
		t, err := r.memoToTask(&memos[i])
		if err != nil {
			r.l.Debugf(ctx, "memos repository: skipping memo %s: %v", memos[i].Name, err)
			continue
		}
		if opt.Matches(t) {
			tasks = append(tasks, t)
		}
	}

	repository.SortNewestFirst(tasks)
	return repository.Paginate(tasks, opt.Limit, opt.Offset), len(tasks), nil
}

// UpdateTask rewrites the memo content. Returns a zero-value Task when the memo is gone.
func (r *implRepository) UpdateTask(ctx context.Context, opt repository.UpdateTaskOptions) (model.Task, error) {
	current, err := r.GetTask(ctx, repository.GetTaskOptions{ID: opt.ID})
	if err != nil {
		return model.Task{}, repository.ErrFailedToUpdate
	}
	if current.ID == "" {
		return model.Task{}, nil
	}

	content := encodeContent(document{
		UserID:          current.UserID,
		Title:           opt.Title,
		Description:     opt.Description,
		Completed:       opt.Completed,
		DueDate:         opt.DueDate,
		Priority:        opt.Priority,
		ProjectID:       opt.ProjectID,
		CalendarEventID: opt.CalendarEventID,
		CalendarLink:    opt.CalendarLink,
	})

	memo, err := r.client.UpdateMemo(ctx, opt.ID, UpdateMemoRequest{Content: content, UpdateMask: "content"})
	if err != nil {
		r.l.Errorf(ctx, "memos repository: failed to update memo %s: %v", opt.ID, err)
		return model.Task{}, repository.ErrFailedToUpdate
	}

	t, err := r.memoToTask(memo)
	if err != nil {
		return model.Task{}, repository.ErrFailedToUpdate
	}
	return t, nil
}

func (r *implRepository) DeleteTask(ctx context.Context, id string) error {
	if err := r.client.DeleteMemo(ctx, id); err != nil {
		if errors.Is(err, ErrMemoNotFound) {
			return nil
		}
		r.l.Errorf(ctx, "memos repository: failed to delete memo %s: %v", id, err)
		return repository.ErrFailedToDelete
	}
	return nil
}

func (r *implRepository) memoToTask(m *Memo) (model.Task, error) {
	d, err := decodeContent(m.Content, r.loc)
	if err != nil {
		return model.Task{}, err
	}

	return model.Task{
		ID:              memoID(m),
		UserID:          d.UserID,
		Title:           d.Title,
		Description:     d.Description,
		Completed:       d.Completed,
		DueDate:         d.DueDate,
		Priority:        d.Priority,
		ProjectID:       d.ProjectID,
		CalendarEventID: d.CalendarEventID,
		CalendarLink:    d.CalendarLink,
		CreatedAt:       parseTimestamp(m.CreateTime),
		UpdatedAt:       parseTimestamp(m.UpdateTime),
	}, nil
}

// memoID prefers the UID and falls back to the trailing segment of "memos/{uid}".
func memoID(m *Memo) string {
	if m.UID != "" {
		return m.UID
	}
	return strings.TrimPrefix(m.Name, "memos/")
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
