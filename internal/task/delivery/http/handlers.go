package http

import (
	"github.com/gin-gonic/gin"

	"productivity-hub/pkg/response"
)

// Parse godoc
// @Summary     Preview quick-add parsing
// @Description Splits raw text into a title, an optional priority (P1/P2/P3) and an optional due date (M/D). Nothing is stored.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       body body parseReq true "Quick-add text"
// @Success     200  {object} parseResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Router      /api/v1/tasks/parse [POST]
func (h *handler) Parse(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processParseReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Parse(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.Parse: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newParseResp(output))
}

// Create godoc
// @Summary     Create a task from quick-add text
// @Description Parses the text and stores the task. Explicit priority, due_date and project_id override directives.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string    true "Caller ID"
// @Param       body      body   createReq true "Task data"
// @Success     200 {object} createResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     422 {object} response.Resp "Title empty after removing directives"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks [POST]
func (h *handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processCreateReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Create(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Create: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newCreateResp(output))
}

// List godoc
// @Summary     List tasks
// @Description Returns the caller's tasks, newest first.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       X-User-ID  header string true  "Caller ID"
// @Param       completed  query  bool   false "Filter by completion"
// @Param       project_id query  string false "Filter by project"
// @Param       limit      query  int    false "Page size (default: 20, max: 100)"
// @Param       offset     query  int    false "Page offset (default: 0)"
// @Success     200 {object} listResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processListReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.List(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.List: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newListResp(output))
}

// Detail godoc
// @Summary     Get task detail
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string true "Caller ID"
// @Param       id        path   string true "Task ID"
// @Success     200 {object} detailResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	sc, id, err := h.processIDReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Detail(ctx, sc, id)
	if err != nil {
		h.l.Errorf(ctx, "uc.Detail: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newDetailResp(output))
}

// Update godoc
// @Summary     Update a task
// @Description Partial update. Omitted fields keep their value; clear_due_date removes the due date.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string    true "Caller ID"
// @Param       id        path   string    true "Task ID"
// @Param       body      body   updateReq true "Fields to update"
// @Success     200 {object} updateResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/{id} [PATCH]
func (h *handler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processUpdateReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Update(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Update: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newUpdateResp(output))
}

// Toggle godoc
// @Summary     Set task completion
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string    true "Caller ID"
// @Param       id        path   string    true "Task ID"
// @Param       body      body   toggleReq true "Completion state"
// @Success     200 {object} updateResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/tasks/{id}/toggle [POST]
func (h *handler) Toggle(c *gin.Context) {
	ctx := c.Request.Context()

	sc, id, req, err := h.processToggleReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Toggle(ctx, sc, id, *req.Completed)
	if err != nil {
		h.l.Errorf(ctx, "uc.Toggle: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newUpdateResp(output))
}

// Delete godoc
// @Summary     Delete a task
// @Description Removes the task and its calendar event.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string true "Caller ID"
// @Param       id        path   string true "Task ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/{id} [DELETE]
func (h *handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	sc, id, err := h.processIDReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if err := h.uc.Delete(ctx, sc, id); err != nil {
		h.l.Errorf(ctx, "uc.Delete: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, nil)
}
