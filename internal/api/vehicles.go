package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/albertomt/cricheck/internal/model"
	"github.com/albertomt/cricheck/internal/store"
)

// VehiclesHandler handles the vehicle registry endpoints.
type VehiclesHandler struct {
	Store store.Store
}

type createVehicleRequest struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
}

// List handles GET /api/vehicles.
func (h *VehiclesHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.Store.ListVehicles(r.Context())
	if err != nil {
		storeError(w, err)
		return
	}
	if vehicles == nil {
		vehicles = []model.Vehicle{}
	}
	jsonResponse(w, http.StatusOK, vehicles)
}

// Get handles GET /api/vehicles/{code}. Codes contain spaces, so clients
// URL-escape them; PathValue hands back the decoded form.
func (h *VehiclesHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(r.PathValue("code"))
	if code == "" {
		jsonError(w, http.StatusBadRequest, "vehicle code required")
		return
	}

	vehicle, err := h.Store.GetVehicleByCode(r.Context(), code)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, vehicle)
}

// Create handles POST /api/vehicles.
func (h *VehiclesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createVehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Code = strings.TrimSpace(req.Code)
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if req.Code == "" || req.DisplayName == "" {
		jsonError(w, http.StatusBadRequest, "code and display_name are required")
		return
	}

	vehicle, err := h.Store.CreateVehicle(r.Context(), req.Code, req.DisplayName)
	if err != nil {
		storeError(w, err)
		return
	}

	slog.Info("vehicle created", "code", vehicle.Code)
	jsonResponse(w, http.StatusCreated, vehicle)
}
