package shift

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/ScottHCollier/inntrac-app/internal/transport"
	"github.com/ScottHCollier/inntrac-app/pkg/logger"
)

type ServiceAPI interface {
	CreateShift(dto CreateShiftDTO) (*Shift, error)
	UpdateShift(id string, dto UpdateShiftDTO) (*Shift, error)
	DeleteShift(id string) error
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

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var dto CreateShiftDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	shift, err := h.Service.CreateShift(dto)
	if err != nil {
		h.Logger.Error("CreateShift: service error", "error", err, "user_id", dto.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, shift)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	var dto UpdateShiftDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	shift, err := h.Service.UpdateShift(chi.URLParam(r, "id"), dto)
	if err != nil {
		h.Logger.Error("UpdateShift: service error", "error", err, "shift_id", chi.URLParam(r, "id"))
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteShift(chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
