package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/albertomt/cricheck/internal/model"
	"github.com/albertomt/cricheck/internal/qr"
	"github.com/albertomt/cricheck/internal/store"
)

// defaultQrCodeListLimit caps the recent-codes listing when the client does
// not ask for a specific count.
const defaultQrCodeListLimit = 10

// QrCodesHandler handles QR label generation and scan audit endpoints.
// Labels are printed and stuck on vehicles; scanning one opens the check-in
// URL for that vehicle.
type QrCodesHandler struct {
	Store   store.Store
	BaseURL string
}

type createQrCodeRequest struct {
	VehicleID int64 `json:"vehicle_id"`
}

type createScanRequest struct {
	QrCodeID int64 `json:"qr_code_id"`
}

// Create handles POST /api/qrcodes.
func (h *QrCodesHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req createQrCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vehicle, err := h.Store.GetVehicle(r.Context(), req.VehicleID)
	if err != nil {
		storeError(w, err)
		return
	}

	checkinURL := fmt.Sprintf("%s/checkin/%s",
		strings.TrimSuffix(h.BaseURL, "/"), url.PathEscape(vehicle.Code))

	code, err := h.Store.CreateQrCode(r.Context(), vehicle.ID, checkinURL, claims.UserID)
	if err != nil {
		storeError(w, err)
		return
	}

	slog.Info("qr code created", "vehicle", vehicle.Code, "by", claims.Username)
	jsonResponse(w, http.StatusCreated, code)
}

// List handles GET /api/qrcodes, newest first.
func (h *QrCodesHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultQrCodeListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			jsonError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	codes, err := h.Store.ListRecentQrCodes(r.Context(), limit)
	if err != nil {
		storeError(w, err)
		return
	}
	if codes == nil {
		codes = []model.QrCode{}
	}
	jsonResponse(w, http.StatusOK, codes)
}

// Image handles GET /api/qrcodes/{id}/image, rendering the stored URL as a
// PNG. The endpoint is public so printed labels can be regenerated without a
// session.
func (h *QrCodesHandler) Image(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid qr code id")
		return
	}

	size := 0
	if v := r.URL.Query().Get("size"); v != "" {
		size, err = strconv.Atoi(v)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid size")
			return
		}
	}

	code, err := h.Store.GetQrCode(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}

	png, err := qr.PNG(code.URL, size)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		slog.Warn("writing qr image", "error", err)
	}
}

// Scan handles POST /api/scans, recording that the session user scanned a
// label.
func (h *QrCodesHandler) Scan(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req createScanRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	scan, err := h.Store.CreateScan(r.Context(), req.QrCodeID, claims.UserID)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, scan)
}
