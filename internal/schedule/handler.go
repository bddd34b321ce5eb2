package schedule

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/ScottHCollier/inntrac-app/internal/transport"
	"github.com/ScottHCollier/inntrac-app/pkg/logger"
)

type ServiceAPI interface {
	CreateSchedule(dto ScheduleItemDTO) (*Schedule, error)
	BulkCreate(dtos []ScheduleItemDTO) ([]*Schedule, error)
	BulkUpdate(dtos []ScheduleItemDTO) ([]*Schedule, error)
	UpdateSchedule(id string, dto ScheduleItemDTO) (*Schedule, error)
	DeleteSchedule(id string) error
	RequestTimeOff(ctx context.Context, dto TimeOffDTO) ([]*Schedule, error)
	WeekRows(q WeekQuery) ([]*UserRow, error)
	PendingTimeOff(siteID string) ([]*UserRow, error)
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

// GetWeek serves the weekly grid. weekStart and weekEnd are RFC 3339
// timestamps; siteId is required, groupId, userId and searchTerm narrow the
// rows.
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	q, err := parseWeekQuery(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.Service.WeekRows(q)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rows)
}

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var dto ScheduleItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	schedule, err := h.Service.CreateSchedule(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, schedule)
}

func (h *Handler) BulkCreateSchedules(w http.ResponseWriter, r *http.Request) {
	var dtos []ScheduleItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dtos); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	schedules, err := h.Service.BulkCreate(dtos)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, schedules)
}

func (h *Handler) BulkUpdateSchedules(w http.ResponseWriter, r *http.Request) {
	var dtos []ScheduleItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dtos); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	schedules, err := h.Service.BulkUpdate(dtos)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, schedules)
}

func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var dto ScheduleItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	schedule, err := h.Service.UpdateSchedule(chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, schedule)
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteSchedule(chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RequestTimeOff(w http.ResponseWriter, r *http.Request) {
	var dto TimeOffDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	schedules, err := h.Service.RequestTimeOff(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, schedules)
}

func (h *Handler) GetPendingTimeOff(w http.ResponseWriter, r *http.Request) {
	siteID := r.URL.Query().Get("siteId")
	if siteID == "" {
		h.WriteError(w, http.StatusBadRequest, "siteId is required")
		return
	}

	rows, err := h.Service.PendingTimeOff(siteID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rows)
}

func parseWeekQuery(r *http.Request) (WeekQuery, error) {
	values := r.URL.Query()

	q := WeekQuery{
		SiteID:     values.Get("siteId"),
		GroupID:    values.Get("groupId"),
		UserID:     values.Get("userId"),
		SearchTerm: values.Get("searchTerm"),
	}

	if raw := values.Get("weekStart"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return q, err
		}
		q.WeekStart = t
	}
	if raw := values.Get("weekEnd"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return q, err
		}
		q.WeekEnd = t
	}

	return q, q.Validate()
}
