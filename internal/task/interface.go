package task

import (
	"context"

	"productivity-hub/internal/model"
)

// UseCase defines the business logic interface for the task domain.
type UseCase interface {
	// Parse previews how quick-add text would be split into a title, priority and due date.
	Parse(ctx context.Context, input ParseInput) (ParseOutput, error)

	// Create parses quick-add text, merges explicit overrides and persists the task.
	Create(ctx context.Context, sc model.Scope, input CreateInput) (CreateOutput, error)

	List(ctx context.Context, sc model.Scope, input ListInput) (ListOutput, error)
	Detail(ctx context.Context, sc model.Scope, id string) (DetailOutput, error)
	Update(ctx context.Context, sc model.Scope, input UpdateInput) (UpdateOutput, error)

	// Toggle sets the completion state of a task.
	Toggle(ctx context.Context, sc model.Scope, id string, completed bool) (UpdateOutput, error)

	Delete(ctx context.Context, sc model.Scope, id string) error
}
