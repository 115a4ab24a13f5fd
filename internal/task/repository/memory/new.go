package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"productivity-hub/internal/model"
	"productivity-hub/internal/task/repository"
	pkgLog "productivity-hub/pkg/log"
)

type implRepository struct {
	mu    sync.RWMutex
	tasks map[string]model.Task
	now   func() time.Time
	newID func() string
	l     pkgLog.Logger
}

// New creates an in-process task repository. Data lives only as long as the process.
func New(l pkgLog.Logger) repository.Repository {
	return &implRepository{
		tasks: make(map[string]model.Task),
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
		l:     l,
	}
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("task/repository/memory.%s", method)
}
