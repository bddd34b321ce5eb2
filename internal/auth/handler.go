package auth

import (
	"context"
	"net/http"

	"github.com/ScottHCollier/inntrac-app/internal"
	"github.com/ScottHCollier/inntrac-app/internal/transport"
	"github.com/ScottHCollier/inntrac-app/pkg/logger"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthInfo, error)
	Register(dto RegisterDTO) (AuthInfo, error)
	SetPassword(dto SetPasswordDTO) (AuthInfo, error)
	ValidateAccessToken(tokenString string) (*User, error)
	InviteToken(email string) (string, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     svc,
	}
}

// Middleware rejects requests without a valid Bearer token and places the
// authenticated user in the request context.
func (h *Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		user, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.Logger.Warn("token validation failed", "error", err)
			h.HandleServiceError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), internal.ContextUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates a route to administrator accounts. It must run inside
// Middleware.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || !user.IsAdmin {
			h.HandleServiceError(w, internal.ErrAdminRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext returns the authenticated user set by Middleware.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(internal.ContextUserKey).(*User)
	return user, ok
}
