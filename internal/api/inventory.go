package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/albertomt/cricheck/internal/model"
	"github.com/albertomt/cricheck/internal/store"
)

// InventoryHandler handles warehouse inventory endpoints.
type InventoryHandler struct {
	Store store.Store
}

// List handles GET /api/inventory.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	inventory, err := h.Store.ListInventory(r.Context())
	if err != nil {
		storeError(w, err)
		return
	}
	if inventory == nil {
		inventory = []model.InventoryItem{}
	}
	jsonResponse(w, http.StatusOK, inventory)
}

// Create handles POST /api/inventory.
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.NewInventoryItem
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := model.ValidateInventoryItem(req); err != nil {
		storeError(w, err)
		return
	}

	item, err := h.Store.CreateInventoryItem(r.Context(), req)
	if err != nil {
		storeError(w, err)
		return
	}

	slog.Info("inventory item created", "name", item.Name, "quantity", item.Quantity)
	jsonResponse(w, http.StatusCreated, item)
}

// Update handles PUT /api/inventory/{id}. Fields absent from the body are
// left as they are.
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var patch model.InventoryPatch
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := model.ValidateInventoryPatch(patch); err != nil {
		storeError(w, err)
		return
	}

	item, err := h.Store.UpdateInventoryItem(r.Context(), id, patch)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/inventory/{id}.
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.Store.DeleteInventoryItem(r.Context(), id); err != nil {
		storeError(w, err)
		return
	}

	slog.Info("inventory item deleted", "item_id", id)
	w.WriteHeader(http.StatusNoContent)
}
