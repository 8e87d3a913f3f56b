package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Adprivat/praxislabor/internal/transport"
	"github.com/Adprivat/praxislabor/pkg/logger"
)

type ctxKey string

const contextUserKey ctxKey = "currentUser"

// UserFromContext returns the authenticated user placed by AuthMiddleware.
func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(contextUserKey).(*User)
	return u, ok
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

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Error("authentication failed", "error", err)

		switch err {
		case ErrInvalidCredentials:
			h.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		case ErrUserInactive:
			h.WriteError(w, http.StatusUnauthorized, "user is inactive")
		default:
			h.WriteError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.Service.RefreshTokens(dto.RefreshToken)
	if err != nil {
		h.Logger.Error("token refresh failed", "error", err)

		switch err {
		case ErrInvalidToken, ErrTokenExpired:
			h.WriteError(w, http.StatusUnauthorized, "invalid refresh token")
		case ErrUserInactive:
			h.WriteError(w, http.StatusUnauthorized, "user is inactive")
		default:
			h.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	if _, err := h.Service.ValidateAccessToken(token); err != nil {
		h.WriteError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ChangePassword lets the authenticated user rotate their own password.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	currentUser, ok := UserFromContext(r.Context())
	if !ok || currentUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto ChangePasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ChangePassword(currentUser.ID, dto); err != nil {
		switch err {
		case ErrWrongPassword:
			h.WriteError(w, http.StatusUnauthorized, "current password is incorrect")
		case ErrSamePassword, ErrPasswordLocked:
			h.WriteError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			h.WriteError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "password_changed"})
}

// GetCurrentUser echoes the authenticated user's profile.
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	currentUser, ok := UserFromContext(r.Context())
	if !ok || currentUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	h.WriteJSON(w, http.StatusOK, currentUser)
}

// AuthMiddleware validates the bearer token and loads the current user
// into the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.Logger.Warn("token validation failed", "error", err)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		currentUser, err := h.Service.GetUser(claims.UserID)
		if err != nil {
			h.Logger.Error("auth middleware: failed to load user", "user_id", claims.UserID, "error", err)
			h.WriteError(w, http.StatusUnauthorized, "user not found")
			return
		}
		if !currentUser.IsActive {
			h.WriteError(w, http.StatusUnauthorized, "user is inactive")
			return
		}

		ctx := context.WithValue(r.Context(), contextUserKey, currentUser)
		ctx = logger.With(ctx, "user_id", currentUser.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireManager admits MANAGER and ADMIN roles. Authorization failures
// stop here and never reach the services behind the route.
func (h *Handler) RequireManager(next http.Handler) http.Handler {
	return h.requireRole(next, func(u *User) bool { return u.IsManager() }, "manager role required")
}

// RequireAdmin admits the ADMIN role only.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return h.requireRole(next, func(u *User) bool { return u.IsAdmin() }, "admin role required")
}

func (h *Handler) requireRole(next http.Handler, allowed func(*User) bool, message string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		currentUser, ok := UserFromContext(r.Context())
		if !ok || currentUser == nil {
			h.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if !allowed(currentUser) {
			h.Logger.Warn("role check failed", "user_id", currentUser.ID, "role", currentUser.Role, "path", r.URL.Path)
			h.WriteError(w, http.StatusForbidden, message)
			return
		}
		next.ServeHTTP(w, r)
	})
}
