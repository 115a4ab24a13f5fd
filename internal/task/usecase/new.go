package usecase

import (
	"context"

	"productivity-hub/internal/model"
	"productivity-hub/internal/task"
	"productivity-hub/internal/task/repository"
	"productivity-hub/pkg/datemath"
	"productivity-hub/pkg/gcalendar"
	pkgLog "productivity-hub/pkg/log"
)

// CalendarClient mirrors dated tasks as all-day events. *gcalendar.Client satisfies it.
type CalendarClient interface {
	CreateAllDayEvent(ctx context.Context, req gcalendar.AllDayEventRequest) (*gcalendar.Event, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

// Config holds the defaults applied when quick-add text and overrides leave a field unset.
type Config struct {
	DefaultPriority  model.Priority
	DefaultProjectID string
	CalendarID       string
}

type implUseCase struct {
	l        pkgLog.Logger
	repo     repository.Repository
	clock    *datemath.Calendar
	calendar CalendarClient // nil disables calendar sync
	cfg      Config
}

// New creates a new task UseCase. calendar may be nil.
func New(
	l pkgLog.Logger,
	repo repository.Repository,
	clock *datemath.Calendar,
	calendar CalendarClient,
	cfg Config,
) task.UseCase {
	if !cfg.DefaultPriority.IsValid() {
		cfg.DefaultPriority = model.DefaultPriority
	}
	if cfg.DefaultProjectID == "" {
		cfg.DefaultProjectID = model.DefaultProjectID
	}
	return &implUseCase{
		l:        l,
		repo:     repo,
		clock:    clock,
		calendar: calendar,
		cfg:      cfg,
	}
}
