package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/albertomt/cricheck/internal/model"
	"github.com/albertomt/cricheck/internal/store"
)

// UsersHandler handles admin user-management endpoints.
type UsersHandler struct {
	Store store.Store
}

type updateUserRequest struct {
	Role string `json:"role"`
}

// List handles GET /api/users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.ListUsers(r.Context())
	if err != nil {
		storeError(w, err)
		return
	}
	if users == nil {
		users = []model.User{}
	}
	jsonResponse(w, http.StatusOK, users)
}

// Update handles PUT /api/users/{id}. Only the role can be changed.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !model.ValidRole(req.Role) {
		jsonError(w, http.StatusBadRequest, "invalid role")
		return
	}

	if err := h.Store.UpdateUserRole(r.Context(), id, req.Role); err != nil {
		storeError(w, err)
		return
	}

	slog.Info("user role updated", "user_id", id, "role", req.Role)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "user updated"})
}

// Delete handles DELETE /api/users/{id}. Accounts are deactivated rather than
// removed so old checklists keep their author.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	claims := GetClaims(r.Context())
	if claims != nil && claims.UserID == id {
		jsonError(w, http.StatusBadRequest, "cannot deactivate your own account")
		return
	}

	if err := h.Store.DeactivateUser(r.Context(), id); err != nil {
		storeError(w, err)
		return
	}

	slog.Info("user deactivated", "user_id", id)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "user deactivated"})
}
