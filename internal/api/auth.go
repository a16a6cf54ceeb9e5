package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/albertomt/cricheck/internal/auth"
	"github.com/albertomt/cricheck/internal/model"
	"github.com/albertomt/cricheck/internal/store"
)

// loginTimeout bounds credential checks so a stuck database cannot hold the
// login endpoint open indefinitely.
const loginTimeout = 5 * time.Second

// AuthHandler handles registration, login and session endpoints.
type AuthHandler struct {
	Store     store.Store
	JWTSecret string

	// LoginTimeout overrides the default credential-check deadline when set.
	LoginTimeout time.Duration
}

type registerRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	FiscalCode string `json:"fiscal_code"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Register handles POST /api/register. New accounts are always volunteers;
// only an admin can promote them afterwards.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := model.ValidateRegistration(req.Username, req.Password, req.Name, req.Surname, req.FiscalCode); err != nil {
		storeError(w, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user, err := h.Store.CreateUser(r.Context(), model.NewUser{
		Username:     req.Username,
		PasswordHash: hash,
		Name:         req.Name,
		Surname:      req.Surname,
		FiscalCode:   model.NormalizeFiscalCode(req.FiscalCode),
		Role:         model.RoleVolunteer,
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			jsonError(w, http.StatusConflict, "username or fiscal code already registered")
			return
		}
		storeError(w, err)
		return
	}

	if err := h.establishSession(w, r, user); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	slog.Info("user registered", "user", user.Username)
	jsonResponse(w, http.StatusCreated, user)
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "username and password required")
		return
	}

	timeout := h.LoginTimeout
	if timeout <= 0 {
		timeout = loginTimeout
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	user, err := h.Store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if errors.Is(err, context.DeadlineExceeded) {
			jsonError(w, http.StatusServiceUnavailable, "login timed out")
			return
		}
		storeError(w, err)
		return
	}
	if user.DeletedAt != nil {
		jsonError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		slog.Warn("login failed", "username", req.Username, "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := h.Store.TouchLastLogin(ctx, user.ID); err != nil {
		slog.Warn("updating last login", "user", user.Username, "error", err)
	}

	if err := h.establishSession(w, r, user); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	slog.Info("user logged in", "user", user.Username, "role", user.Role)
	jsonResponse(w, http.StatusOK, user)
}

// Logout handles POST /api/logout. Logging out an already dead session is
// fine; the client just wants the cookie gone.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if tokenStr := sessionToken(r); tokenStr != "" {
		if claims, err := auth.ValidateToken(h.JWTSecret, tokenStr); err == nil {
			if err := h.Store.DeleteSession(r.Context(), claims.SessionID()); err != nil {
				storeError(w, err)
				return
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// CurrentUser handles GET /api/user.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := h.Store.GetUser(r.Context(), claims.UserID)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, user)
}

// ChangePassword handles PUT /api/user/password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := model.ValidatePassword(req.NewPassword); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.Store.GetUser(r.Context(), claims.UserID)
	if err != nil {
		storeError(w, err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		jsonError(w, http.StatusUnauthorized, "current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	if err := h.Store.UpdateUserPassword(r.Context(), claims.UserID, hash); err != nil {
		storeError(w, err)
		return
	}

	slog.Info("user changed own password", "user", claims.Username)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "password updated"})
}

// establishSession creates a server-side session for user and sets the
// session cookie on the response.
func (h *AuthHandler) establishSession(w http.ResponseWriter, r *http.Request, user *model.User) error {
	token, sessionID, expiresAt, err := auth.NewSessionToken(h.JWTSecret, user.ID, user.Username, user.Role)
	if err != nil {
		return err
	}
	if err := h.Store.CreateSession(r.Context(), sessionID, user.ID, expiresAt); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
