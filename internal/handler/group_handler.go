package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devanshg/splitmate/internal/middleware"
	"github.com/devanshg/splitmate/internal/service"
)

// GroupHandler exposes the group operations over HTTP.
type GroupHandler struct {
	svc *service.GroupService
}

// NewGroupHandler creates a GroupHandler backed by svc.
func NewGroupHandler(svc *service.GroupService) *GroupHandler {
	return &GroupHandler{svc: svc}
}

// Create handles POST /api/groups.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string   `json:"name"`
		Members []string `json:"members"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	g, err := h.svc.CreateGroup(r.Context(), middleware.GetUser(r.Context()), req.Name, req.Members)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, newGroupView(g))
}

// List handles GET /api/groups: every group the caller is a member of.
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.ListGroups(r.Context(), middleware.GetUser(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	views := make([]groupView, len(groups))
	for i, g := range groups {
		views[i] = newGroupView(g)
	}
	writeSuccess(w, http.StatusOK, views)
}

// Get handles GET /api/groups/{id}.
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.svc.GetGroup(r.Context(), middleware.GetUser(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, newGroupView(g))
}

// AddMember handles POST /api/groups/{id}/members.
func (h *GroupHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	g, err := h.svc.AddMember(r.Context(), middleware.GetUser(r.Context()), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, newGroupView(g))
}

// Delete handles DELETE /api/groups/{id}.
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteGroup(r.Context(), middleware.GetUser(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Group deleted successfully")
}
