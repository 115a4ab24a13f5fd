package usecase

import (
	"context"

	"productivity-hub/internal/model"
	"productivity-hub/internal/task"
	"productivity-hub/internal/task/repository"
)

// List returns a page of the caller's tasks, newest first.
func (uc *implUseCase) List(ctx context.Context, sc model.Scope, input task.ListInput) (task.ListOutput, error) {
	if sc.UserID == "" {
		return task.ListOutput{}, task.ErrMissingUser
	}

	tasks, total, err := uc.repo.ListTasks(ctx, repository.ListTasksOptions{
		UserID:    sc.UserID,
		Completed: input.Completed,
		ProjectID: input.ProjectID,
		Limit:     input.Limit,
		Offset:    input.Offset,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.List ListTasks: %v", err)
		return task.ListOutput{}, err
	}

	return task.ListOutput{
		Tasks:  tasks,
		Total:  total,
		Limit:  input.Limit,
		Offset: input.Offset,
	}, nil
}
