package api

import (
	"log/slog"
	"net/http"

	"github.com/albertomt/cricheck/internal/model"
	"github.com/albertomt/cricheck/internal/store"
)

// ChecklistsHandler handles vehicle checklist endpoints.
type ChecklistsHandler struct {
	Store store.Store
}

type createChecklistRequest struct {
	VehicleID   int64                     `json:"vehicle_id"`
	OxygenLevel int                       `json:"oxygen_level"`
	Items       []model.ChecklistItemInfo `json:"items"`
}

// Create handles POST /api/checklists. The author is always the session
// user; the client cannot file a checklist on someone else's behalf.
func (h *ChecklistsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req createChecklistRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := model.ValidateChecklist(req.OxygenLevel, req.Items); err != nil {
		storeError(w, err)
		return
	}
	items := model.NormalizeChecklistItems(req.Items)

	checklist, err := h.Store.CreateChecklist(r.Context(), claims.UserID, req.VehicleID, req.OxygenLevel, items)
	if err != nil {
		storeError(w, err)
		return
	}

	slog.Info("checklist filed", "user", claims.Username, "vehicle_id", req.VehicleID, "items", len(items))
	jsonResponse(w, http.StatusCreated, checklist)
}

// List handles GET /api/checklists.
func (h *ChecklistsHandler) List(w http.ResponseWriter, r *http.Request) {
	checklists, err := h.Store.ListChecklists(r.Context())
	if err != nil {
		storeError(w, err)
		return
	}
	if checklists == nil {
		checklists = []model.ChecklistWithItems{}
	}
	jsonResponse(w, http.StatusOK, checklists)
}

// Equipment handles GET /api/equipment, serving the fixed catalog the
// checklist form is built from.
func (h *ChecklistsHandler) Equipment(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, model.EquipmentCatalog)
}
