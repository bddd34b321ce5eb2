package site

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/ScottHCollier/inntrac-app/internal/transport"
	"github.com/ScottHCollier/inntrac-app/pkg/logger"
)

type ServiceAPI interface {
	CreateSite(dto CreateSiteDTO) (*Site, error)
	GetSite(id string) (*Site, error)
	GetSites() ([]*Site, error)
	UpdateSite(id string, dto UpdateSiteDTO) (*Site, error)
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

func (h *Handler) CreateSite(w http.ResponseWriter, r *http.Request) {
	var dto CreateSiteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	site, err := h.Service.CreateSite(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, site)
}

func (h *Handler) GetSite(w http.ResponseWriter, r *http.Request) {
	site, err := h.Service.GetSite(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, site)
}

func (h *Handler) GetSites(w http.ResponseWriter, r *http.Request) {
	sites, err := h.Service.GetSites()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, sites)
}

func (h *Handler) UpdateSite(w http.ResponseWriter, r *http.Request) {
	var dto UpdateSiteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	site, err := h.Service.UpdateSite(chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, site)
}
