package repository

import (
	"sort"

	"productivity-hub/internal/model"
)

// Matches reports whether t passes every non-empty filter in opt.
func (opt ListTasksOptions) Matches(t model.Task) bool {
	if opt.UserID != "" && t.UserID != opt.UserID {
		return false
	}
	if opt.Completed != nil && t.Completed != *opt.Completed {
		return false
	}
	if opt.ProjectID != "" && t.ProjectID != opt.ProjectID {
		return false
	}
	return true
}

// SortNewestFirst orders tasks by CreatedAt descending; ID breaks ties so equal
// timestamps still list deterministically.
func SortNewestFirst(tasks []model.Task) {
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID > tasks[j].ID
		}
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
}

// Paginate returns the [offset, offset+limit) window of tasks. limit <= 0 means no limit.
func Paginate(tasks []model.Task, limit, offset int) []model.Task {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(tasks) {
		return []model.Task{}
	}
	tasks = tasks[offset:]
	if limit > 0 && limit < len(tasks) {
		tasks = tasks[:limit]
	}
	return tasks
}
