package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"productivity-hub/internal/model"
	"productivity-hub/internal/task"
	"productivity-hub/internal/task/repository"
	"productivity-hub/internal/task/repository/memory"
	"productivity-hub/internal/task/usecase"
	"productivity-hub/pkg/datemath"
	"productivity-hub/pkg/gcalendar"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

type mockCalendar struct {
	fail     bool
	created  []gcalendar.AllDayEventRequest
	deleted  []string
	sequence int
}

func (m *mockCalendar) CreateAllDayEvent(ctx context.Context, req gcalendar.AllDayEventRequest) (*gcalendar.Event, error) {
	if m.fail {
		return nil, errors.New("calendar down")
	}
	m.created = append(m.created, req)
	m.sequence++
	id := "evt-" + string(rune('0'+m.sequence))
	return &gcalendar.Event{ID: id, HtmlLink: "https://calendar.test/" + id, Date: req.Date}, nil
}

func (m *mockCalendar) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	m.deleted = append(m.deleted, eventID)
	return nil
}

type failingRepo struct{}

var errStore = errors.New("store unavailable")

func (failingRepo) CreateTask(ctx context.Context, opt repository.CreateTaskOptions) (model.Task, error) {
	return model.Task{}, errStore
}
func (failingRepo) GetTask(ctx context.Context, opt repository.GetTaskOptions) (model.Task, error) {
	return model.Task{}, errStore
}
func (failingRepo) ListTasks(ctx context.Context, opt repository.ListTasksOptions) ([]model.Task, int, error) {
	return nil, 0, errStore
}
func (failingRepo) UpdateTask(ctx context.Context, opt repository.UpdateTaskOptions) (model.Task, error) {
	return model.Task{}, errStore
}
func (failingRepo) DeleteTask(ctx context.Context, id string) error { return errStore }

var (
	hcm = mustLoad("Asia/Ho_Chi_Minh")
	// 2024-12-15 09:30 in Ho Chi Minh City.
	fixedNow = time.Date(2024, 12, 15, 9, 30, 0, 0, hcm)
	alice    = model.Scope{UserID: "alice", Username: "alice"}
	bob      = model.Scope{UserID: "bob"}
)

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func newUseCase(t *testing.T, cal usecase.CalendarClient) task.UseCase {
	t.Helper()
	clock, err := datemath.NewCalendar("Asia/Ho_Chi_Minh", datemath.WithClock(func() time.Time { return fixedNow }))
	if err != nil {
		t.Fatalf("NewCalendar: %v", err)
	}
	l := &mockLogger{}
	return usecase.New(l, memory.New(l), clock, cal, usecase.Config{CalendarID: "primary"})
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, hcm)
}

func TestParse(t *testing.T) {
	uc := newUseCase(t, nil)

	out, err := uc.Parse(context.Background(), task.ParseInput{RawText: "Renew passport 1/2 P1"})
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if out.Title != "Renew passport" || out.Priority != model.PriorityHigh {
		t.Errorf("unexpected output: %+v", out)
	}
	if out.DueDate == nil || !out.DueDate.Equal(day(2025, 1, 2)) {
		t.Errorf("DueDate got = %v, want 2025-01-02", out.DueDate)
	}
	if !out.Reference.Equal(fixedNow) {
		t.Errorf("Reference got = %v, want %v", out.Reference, fixedNow)
	}

	if _, err := uc.Parse(context.Background(), task.ParseInput{RawText: "   "}); !errors.Is(err, task.ErrEmptyInput) {
		t.Errorf("error = %v, want ErrEmptyInput", err)
	}
}

func TestCreate(t *testing.T) {
	explicitDue := time.Date(2025, 6, 1, 22, 0, 0, 0, time.UTC) // 2025-06-02 05:00 in HCM

	tests := []struct {
		name         string
		scope        model.Scope
		input        task.CreateInput
		wantErr      error
		wantTitle    string
		wantPriority model.Priority
		wantDue      *time.Time
		wantProject  string
	}{
		{
			name:         "Defaults",
			scope:        alice,
			input:        task.CreateInput{RawText: "Buy milk"},
			wantTitle:    "Buy milk",
			wantPriority: model.PriorityMedium,
			wantProject:  model.DefaultProjectID,
		},
		{
			name:         "Directives",
			scope:        alice,
			input:        task.CreateInput{RawText: "Pay rent P3 12/20"},
			wantTitle:    "Pay rent",
			wantPriority: model.PriorityLow,
			wantDue:      ptr(day(2024, 12, 20)),
			wantProject:  model.DefaultProjectID,
		},
		{
			name:  "Explicit fields win",
			scope: alice,
			input: task.CreateInput{
				RawText:   "Pay rent P3 12/20",
				Priority:  model.PriorityHigh,
				DueDate:   &explicitDue,
				ProjectID: "home",
			},
			wantTitle:    "Pay rent",
			wantPriority: model.PriorityHigh,
			wantDue:      ptr(day(2025, 6, 2)),
			wantProject:  "home",
		},
		{
			name:    "Missing user",
			scope:   model.Scope{},
			input:   task.CreateInput{RawText: "Buy milk"},
			wantErr: task.ErrMissingUser,
		},
		{
			name:    "Empty input",
			scope:   alice,
			input:   task.CreateInput{RawText: ""},
			wantErr: task.ErrEmptyInput,
		},
		{
			name:    "Only directives",
			scope:   alice,
			input:   task.CreateInput{RawText: "P1 3/4"},
			wantErr: task.ErrEmptyTitle,
		},
		{
			name:    "Invalid priority",
			scope:   alice,
			input:   task.CreateInput{RawText: "Buy milk", Priority: "urgent"},
			wantErr: task.ErrInvalidPriority,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(t, nil)
			out, err := uc.Create(context.Background(), tt.scope, tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create error = %v", err)
			}

			got := out.Task
			if got.ID == "" || got.UserID != tt.scope.UserID {
				t.Errorf("unexpected identity: %+v", got)
			}
			if got.Title != tt.wantTitle || got.Priority != tt.wantPriority || got.ProjectID != tt.wantProject {
				t.Errorf("got title=%q priority=%q project=%q", got.Title, got.Priority, got.ProjectID)
			}
			if (got.DueDate == nil) != (tt.wantDue == nil) {
				t.Fatalf("DueDate got = %v, want %v", got.DueDate, tt.wantDue)
			}
			if got.DueDate != nil && !got.DueDate.Equal(*tt.wantDue) {
				t.Errorf("DueDate got = %v, want %v", got.DueDate, tt.wantDue)
			}
		})
	}
}

func TestCreateCalendarSync(t *testing.T) {
	ctx := context.Background()

	t.Run("Dated task gets an event", func(t *testing.T) {
		cal := &mockCalendar{}
		uc := newUseCase(t, cal)

		out, err := uc.Create(ctx, alice, task.CreateInput{RawText: "Dentist 12/20"})
		if err != nil {
			t.Fatalf("Create error = %v", err)
		}
		if len(cal.created) != 1 || cal.created[0].Summary != "Dentist" || cal.created[0].CalendarID != "primary" {
			t.Fatalf("unexpected calendar calls: %+v", cal.created)
		}
		if out.Task.CalendarEventID != "evt-1" || out.Task.CalendarLink == "" {
			t.Errorf("event not attached: %+v", out.Task)
		}
	})

	t.Run("Undated task skips calendar", func(t *testing.T) {
		cal := &mockCalendar{}
		uc := newUseCase(t, cal)

		if _, err := uc.Create(ctx, alice, task.CreateInput{RawText: "Someday"}); err != nil {
			t.Fatalf("Create error = %v", err)
		}
		if len(cal.created) != 0 {
			t.Errorf("calendar called for undated task")
		}
	})

	t.Run("Calendar failure does not fail create", func(t *testing.T) {
		uc := newUseCase(t, &mockCalendar{fail: true})

		out, err := uc.Create(ctx, alice, task.CreateInput{RawText: "Dentist 12/20"})
		if err != nil {
			t.Fatalf("Create error = %v", err)
		}
		if out.Task.CalendarEventID != "" {
			t.Errorf("unexpected event ID %q", out.Task.CalendarEventID)
		}
	})
}

func TestListDetailUpdateDelete(t *testing.T) {
	ctx := context.Background()
	cal := &mockCalendar{}
	uc := newUseCase(t, cal)

	first, _ := uc.Create(ctx, alice, task.CreateInput{RawText: "Write report P1 12/16"})
	uc.Create(ctx, alice, task.CreateInput{RawText: "Call mom", ProjectID: "family"})
	uc.Create(ctx, bob, task.CreateInput{RawText: "Bob's task"})

	t.Run("List scoped to the caller", func(t *testing.T) {
		out, err := uc.List(ctx, alice, task.ListInput{})
		if err != nil {
			t.Fatalf("List error = %v", err)
		}
		if out.Total != 2 || len(out.Tasks) != 2 {
			t.Fatalf("got %d of %d tasks", len(out.Tasks), out.Total)
		}

		out, _ = uc.List(ctx, alice, task.ListInput{ProjectID: "family"})
		if out.Total != 1 || out.Tasks[0].Title != "Call mom" {
			t.Errorf("project filter got %+v", out.Tasks)
		}

		if _, err := uc.List(ctx, model.Scope{}, task.ListInput{}); !errors.Is(err, task.ErrMissingUser) {
			t.Errorf("error = %v, want ErrMissingUser", err)
		}
	})

	t.Run("Detail", func(t *testing.T) {
		out, err := uc.Detail(ctx, alice, first.Task.ID)
		if err != nil || out.Task.Title != "Write report" {
			t.Fatalf("Detail got %+v, %v", out, err)
		}
		if _, err := uc.Detail(ctx, bob, first.Task.ID); !errors.Is(err, task.ErrTaskNotFound) {
			t.Errorf("other user error = %v, want ErrTaskNotFound", err)
		}
		if _, err := uc.Detail(ctx, alice, "missing"); !errors.Is(err, task.ErrTaskNotFound) {
			t.Errorf("missing error = %v, want ErrTaskNotFound", err)
		}
	})

	t.Run("Update keeps unset fields", func(t *testing.T) {
		out, err := uc.Update(ctx, alice, task.UpdateInput{ID: first.Task.ID, Description: "Q4 numbers"})
		if err != nil {
			t.Fatalf("Update error = %v", err)
		}
		got := out.Task
		if got.Title != "Write report" || got.Priority != model.PriorityHigh || got.Description != "Q4 numbers" {
			t.Errorf("unexpected task: %+v", got)
		}
		if got.CalendarEventID != first.Task.CalendarEventID {
			t.Errorf("event changed without a due date change: %q -> %q", first.Task.CalendarEventID, got.CalendarEventID)
		}
	})

	t.Run("Update moves the calendar event", func(t *testing.T) {
		newDue := day(2024, 12, 24)
		out, err := uc.Update(ctx, alice, task.UpdateInput{ID: first.Task.ID, DueDate: &newDue, Title: "  Final   report "})
		if err != nil {
			t.Fatalf("Update error = %v", err)
		}
		if out.Task.Title != "Final report" {
			t.Errorf("Title got = %q", out.Task.Title)
		}
		if len(cal.deleted) != 1 || cal.deleted[0] != first.Task.CalendarEventID {
			t.Errorf("old event not deleted: %v", cal.deleted)
		}
		if out.Task.CalendarEventID == "" || out.Task.CalendarEventID == first.Task.CalendarEventID {
			t.Errorf("new event not attached: %q", out.Task.CalendarEventID)
		}
	})

	t.Run("Update clears the due date", func(t *testing.T) {
		out, err := uc.Update(ctx, alice, task.UpdateInput{ID: first.Task.ID, ClearDueDate: true})
		if err != nil {
			t.Fatalf("Update error = %v", err)
		}
		if out.Task.DueDate != nil || out.Task.CalendarEventID != "" {
			t.Errorf("due date not cleared: %+v", out.Task)
		}
	})

	t.Run("Update validation", func(t *testing.T) {
		if _, err := uc.Update(ctx, alice, task.UpdateInput{ID: first.Task.ID, Priority: "p0"}); !errors.Is(err, task.ErrInvalidPriority) {
			t.Errorf("error = %v, want ErrInvalidPriority", err)
		}
		if _, err := uc.Update(ctx, alice, task.UpdateInput{ID: first.Task.ID, Title: " \t "}); !errors.Is(err, task.ErrEmptyTitle) {
			t.Errorf("error = %v, want ErrEmptyTitle", err)
		}
		if _, err := uc.Update(ctx, bob, task.UpdateInput{ID: first.Task.ID, Title: "hijack"}); !errors.Is(err, task.ErrTaskNotFound) {
			t.Errorf("error = %v, want ErrTaskNotFound", err)
		}
	})

	t.Run("Toggle", func(t *testing.T) {
		out, err := uc.Toggle(ctx, alice, first.Task.ID, true)
		if err != nil || !out.Task.Completed {
			t.Fatalf("Toggle got %+v, %v", out.Task, err)
		}

		done := true
		list, _ := uc.List(ctx, alice, task.ListInput{Completed: &done})
		if list.Total != 1 || list.Tasks[0].ID != first.Task.ID {
			t.Errorf("completed filter got %+v", list.Tasks)
		}

		out, _ = uc.Toggle(ctx, alice, first.Task.ID, false)
		if out.Task.Completed {
			t.Error("task still completed")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := uc.Delete(ctx, bob, first.Task.ID); !errors.Is(err, task.ErrTaskNotFound) {
			t.Errorf("other user error = %v, want ErrTaskNotFound", err)
		}
		if err := uc.Delete(ctx, alice, first.Task.ID); err != nil {
			t.Fatalf("Delete error = %v", err)
		}
		if _, err := uc.Detail(ctx, alice, first.Task.ID); !errors.Is(err, task.ErrTaskNotFound) {
			t.Errorf("task still present: %v", err)
		}
	})
}

func TestRepositoryErrorsPropagate(t *testing.T) {
	clock, _ := datemath.NewCalendar("UTC")
	uc := usecase.New(&mockLogger{}, failingRepo{}, clock, nil, usecase.Config{})
	ctx := context.Background()

	if _, err := uc.Create(ctx, alice, task.CreateInput{RawText: "x"}); !errors.Is(err, errStore) {
		t.Errorf("Create error = %v", err)
	}
	if _, err := uc.List(ctx, alice, task.ListInput{}); !errors.Is(err, errStore) {
		t.Errorf("List error = %v", err)
	}
	if _, err := uc.Detail(ctx, alice, "id"); !errors.Is(err, errStore) {
		t.Errorf("Detail error = %v", err)
	}
	if err := uc.Delete(ctx, alice, "id"); !errors.Is(err, errStore) {
		t.Errorf("Delete error = %v", err)
	}
}

func ptr[T any](v T) *T { return &v }
