package usecase

import (
	"context"
	"strings"

	"productivity-hub/internal/model"
	"productivity-hub/internal/task"
	"productivity-hub/pkg/directive"
)

// Parse runs the directive parser against the current time in the configured timezone.
func (uc *implUseCase) Parse(ctx context.Context, input task.ParseInput) (task.ParseOutput, error) {
	if strings.TrimSpace(input.RawText) == "" {
		return task.ParseOutput{}, task.ErrEmptyInput
	}

	ref := uc.clock.Now()
	parsed := directive.Parse(input.RawText, ref)

	return task.ParseOutput{
		Title:     parsed.Title,
		Priority:  model.Priority(parsed.Priority),
		DueDate:   parsed.DueDate,
		Reference: ref,
	}, nil
}
