package http

import (
	"github.com/gin-gonic/gin"

	"productivity-hub/internal/middleware"
	"productivity-hub/internal/model"
)

func (h *handler) processScope(c *gin.Context) (model.Scope, error) {
	sc, ok := middleware.GetScope(c)
	if !ok {
		return model.Scope{}, errMissingScope
	}
	return sc, nil
}

// processParseReq binds the parse preview body.
func (h *handler) processParseReq(c *gin.Context) (parseReq, error) {
	var req parseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processCreateReq binds and validates the create task body.
func (h *handler) processCreateReq(c *gin.Context) (model.Scope, createReq, error) {
	var req createReq
	sc, err := h.processScope(c)
	if err != nil {
		return sc, req, err
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return sc, req, err
	}
	return sc, req, req.validate(h.loc)
}

// processListReq binds the list query parameters.
func (h *handler) processListReq(c *gin.Context) (model.Scope, listReq, error) {
	var req listReq
	sc, err := h.processScope(c)
	if err != nil {
		return sc, req, err
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		return sc, req, err
	}
	return sc, req, nil
}

// processIDReq reads the :id URI param.
func (h *handler) processIDReq(c *gin.Context) (model.Scope, string, error) {
	sc, err := h.processScope(c)
	if err != nil {
		return sc, "", err
	}
	id := c.Param("id")
	if id == "" {
		return sc, "", errMissingID
	}
	return sc, id, nil
}

// processUpdateReq binds and validates the update body + URI param.
func (h *handler) processUpdateReq(c *gin.Context) (model.Scope, updateReq, error) {
	var req updateReq
	sc, id, err := h.processIDReq(c)
	if err != nil {
		return sc, req, err
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return sc, req, err
	}
	req.ID = id
	return sc, req, req.validate(h.loc)
}

// processToggleReq binds the toggle body + URI param.
func (h *handler) processToggleReq(c *gin.Context) (model.Scope, string, toggleReq, error) {
	var req toggleReq
	sc, id, err := h.processIDReq(c)
	if err != nil {
		return sc, id, req, err
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return sc, id, req, err
	}
	return sc, id, req, nil
}
