package http

import (
	"strings"
	"time"

	"productivity-hub/internal/model"
	"productivity-hub/internal/task"
	"productivity-hub/pkg/response"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// --- Request DTOs ---

type parseReq struct {
	Text string `json:"text" binding:"required,max=1000"`
}

func (r parseReq) toInput() task.ParseInput {
	return task.ParseInput{RawText: r.Text}
}

// ---

type createReq struct {
	Text        string `json:"text"        binding:"required,max=1000"`
	Description string `json:"description" binding:"max=5000"`
	Priority    string `json:"priority"    binding:"omitempty,oneof=low medium high"`
	DueDate     string `json:"due_date"`
	ProjectID   string `json:"project_id"  binding:"omitempty,max=64,excludesall=#"`

	dueDate *time.Time
}

func (r *createReq) validate(loc *time.Location) error {
	due, err := parseDueDate(r.DueDate, loc)
	if err != nil {
		return err
	}
	r.dueDate = due
	return nil
}

func (r createReq) toInput() task.CreateInput {
	return task.CreateInput{
		RawText:     r.Text,
		Description: r.Description,
		Priority:    model.Priority(r.Priority),
		DueDate:     r.dueDate,
		ProjectID:   r.ProjectID,
	}
}

// ---

type listReq struct {
	Completed *bool  `form:"completed"`
	ProjectID string `form:"project_id"`
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
}

func (r listReq) toInput() task.ListInput {
	limit := r.Limit
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
	return task.ListInput{
		Completed: r.Completed,
		ProjectID: r.ProjectID,
		Limit:     limit,
		Offset:    r.Offset,
	}
}

// ---

type updateReq struct {
	ID           string `json:"-"` // populated from URI param
	Title        string `json:"title"          binding:"omitempty,max=1000"`
	Description  string `json:"description"    binding:"omitempty,max=5000"`
	Priority     string `json:"priority"       binding:"omitempty,oneof=low medium high"`
	DueDate      string `json:"due_date"`
	ClearDueDate bool   `json:"clear_due_date"`
	Completed    *bool  `json:"completed"`
	ProjectID    string `json:"project_id"     binding:"omitempty,max=64,excludesall=#"`

	dueDate *time.Time
}

func (r *updateReq) validate(loc *time.Location) error {
	due, err := parseDueDate(r.DueDate, loc)
	if err != nil {
		return err
	}
	r.dueDate = due
	return nil
}

func (r updateReq) toInput() task.UpdateInput {
	return task.UpdateInput{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Priority:     model.Priority(r.Priority),
		DueDate:      r.dueDate,
		ClearDueDate: r.ClearDueDate,
		Completed:    r.Completed,
		ProjectID:    r.ProjectID,
	}
}

// ---

type toggleReq struct {
	Completed *bool `json:"completed" binding:"required"`
}

func parseDueDate(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(response.DateFormat, s, loc)
	if err != nil {
		return nil, errInvalidDueDate
	}
	return &t, nil
}

// --- Response DTOs ---

type taskResp struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description,omitempty"`
	Completed    bool              `json:"completed"`
	Priority     string            `json:"priority"`
	ProjectID    string            `json:"project_id"`
	DueDate      *response.Date    `json:"due_date"`
	CalendarLink string            `json:"calendar_link,omitempty"`
	CreatedAt    response.DateTime `json:"created_at"`
	UpdatedAt    response.DateTime `json:"updated_at"`
}

func newTaskResp(t model.Task) taskResp {
	return taskResp{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Completed:    t.Completed,
		Priority:     string(t.Priority),
		ProjectID:    t.ProjectID,
		DueDate:      response.NewDate(t.DueDate),
		CalendarLink: t.CalendarLink,
		CreatedAt:    response.DateTime(t.CreatedAt),
		UpdatedAt:    response.DateTime(t.UpdatedAt),
	}
}

type parseResp struct {
	Title    string         `json:"title"`
	Priority *string        `json:"priority"`
	DueDate  *response.Date `json:"due_date"`
}

func newParseResp(out task.ParseOutput) parseResp {
	resp := parseResp{
		Title:   out.Title,
		DueDate: response.NewDate(out.DueDate),
	}
	if out.Priority != "" {
		p := string(out.Priority)
		resp.Priority = &p
	}
	return resp
}

func (h *handler) newParseResp(out task.ParseOutput) parseResp {
	return newParseResp(out)
}

type createResp struct {
	Task   taskResp  `json:"task"`
	Parsed parseResp `json:"parsed"`
}

func (h *handler) newCreateResp(out task.CreateOutput) createResp {
	return createResp{Task: newTaskResp(out.Task), Parsed: newParseResp(out.Parsed)}
}

type listResp struct {
	Tasks  []taskResp `json:"tasks"`
	Total  int        `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

func (h *handler) newListResp(out task.ListOutput) listResp {
	tasks := make([]taskResp, len(out.Tasks))
	for i, t := range out.Tasks {
		tasks[i] = newTaskResp(t)
	}
	return listResp{
		Tasks:  tasks,
		Total:  out.Total,
		Limit:  out.Limit,
		Offset: out.Offset,
	}
}

type detailResp struct {
	Task taskResp `json:"task"`
}

func (h *handler) newDetailResp(out task.DetailOutput) detailResp {
	return detailResp{Task: newTaskResp(out.Task)}
}

type updateResp struct {
	Task taskResp `json:"task"`
}

func (h *handler) newUpdateResp(out task.UpdateOutput) updateResp {
	return updateResp{Task: newTaskResp(out.Task)}
}
