package account

import (
	"encoding/json"
	"net/http"

	"github.com/ScottHCollier/inntrac-app/internal/auth"
	"github.com/ScottHCollier/inntrac-app/internal/transport"
	"github.com/ScottHCollier/inntrac-app/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
	Auth    auth.ServiceAPI
}

func NewHandler(service *Service, authService auth.ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
		Auth:        authService,
	}
}

// Login authenticates and returns the full account projection the client
// hydrates from.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto auth.LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	info, err := h.Auth.Authenticate(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	projection, err := h.Service.Projection(info.UserID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, projection)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto auth.RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	info, err := h.Auth.Register(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	projection, err := h.Service.Projection(info.UserID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, projection)
}

// SetPassword completes an invited account and signs it in.
func (h *Handler) SetPassword(w http.ResponseWriter, r *http.Request) {
	var dto auth.SetPasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	info, err := h.Auth.SetPassword(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	projection, err := h.Service.Projection(info.UserID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, projection)
}

// AddUser is the admin invite flow.
func (h *Handler) AddUser(w http.ResponseWriter, r *http.Request) {
	var dto AddUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.Service.AddUser(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, user)
}

// GetAccount returns the projection for the authenticated user, with a fresh
// token.
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	projection, err := h.Service.Projection(user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, projection)
}
