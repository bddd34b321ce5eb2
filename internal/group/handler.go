package group

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/ScottHCollier/inntrac-app/internal/transport"
	"github.com/ScottHCollier/inntrac-app/pkg/logger"
)

type ServiceAPI interface {
	CreateGroup(dto CreateGroupDTO) (*Group, error)
	GetGroup(id string) (*Group, error)
	GetGroups(siteID string) ([]*Group, error)
	UpdateGroup(id string, dto UpdateGroupDTO) (*Group, error)
	DeleteGroup(id string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
	}
}

func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var dto CreateGroupDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	group, err := h.Service.CreateGroup(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, group)
}

func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.Service.GetGroup(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, group)
}

func (h *Handler) GetGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Service.GetGroups(r.URL.Query().Get("siteId"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, groups)
}

func (h *Handler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	var dto UpdateGroupDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	group, err := h.Service.UpdateGroup(chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, group)
}

func (h *Handler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteGroup(chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
