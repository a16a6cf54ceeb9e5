package api

import (
	"net/http"

	"github.com/albertomt/cricheck/internal/model"
	"github.com/albertomt/cricheck/internal/store"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(s store.Store, jwtSecret, baseURL string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{Store: s, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{Store: s}
	vehiclesHandler := &VehiclesHandler{Store: s}
	checklistsHandler := &ChecklistsHandler{Store: s}
	inventoryHandler := &InventoryHandler{Store: s}
	qrCodesHandler := &QrCodesHandler{Store: s, BaseURL: baseURL}
	statsHandler := &StatsHandler{Store: s}

	authMW := AuthMiddleware(jwtSecret, s)
	requireAdmin := RequireRole(model.RoleAdmin)
	requireWarehouse := RequireRole(model.RoleWarehouse)

	// Public: registration, login and reference data.
	mux.HandleFunc("POST /api/register", authHandler.Register)
	mux.HandleFunc("POST /api/login", authHandler.Login)
	mux.HandleFunc("POST /api/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/vehicles", vehiclesHandler.List)
	mux.HandleFunc("GET /api/vehicles/{code}", vehiclesHandler.Get)
	mux.HandleFunc("GET /api/equipment", checklistsHandler.Equipment)
	mux.HandleFunc("GET /api/qrcodes/{id}/image", qrCodesHandler.Image)

	// Session endpoints.
	mux.Handle("GET /api/user", authMW(http.HandlerFunc(authHandler.CurrentUser)))
	mux.Handle("PUT /api/user/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("POST /api/checklists", authMW(http.HandlerFunc(checklistsHandler.Create)))
	mux.Handle("POST /api/scans", authMW(http.HandlerFunc(qrCodesHandler.Scan)))

	// Warehouse managers and above.
	mux.Handle("GET /api/inventory", authMW(requireWarehouse(http.HandlerFunc(inventoryHandler.List))))
	mux.Handle("POST /api/inventory", authMW(requireWarehouse(http.HandlerFunc(inventoryHandler.Create))))
	mux.Handle("PUT /api/inventory/{id}", authMW(requireWarehouse(http.HandlerFunc(inventoryHandler.Update))))
	mux.Handle("DELETE /api/inventory/{id}", authMW(requireWarehouse(http.HandlerFunc(inventoryHandler.Delete))))

	// Admin only.
	mux.Handle("GET /api/checklists", authMW(requireAdmin(http.HandlerFunc(checklistsHandler.List))))
	mux.Handle("POST /api/vehicles", authMW(requireAdmin(http.HandlerFunc(vehiclesHandler.Create))))
	mux.Handle("GET /api/qrcodes", authMW(requireAdmin(http.HandlerFunc(qrCodesHandler.List))))
	mux.Handle("POST /api/qrcodes", authMW(requireAdmin(http.HandlerFunc(qrCodesHandler.Create))))
	mux.Handle("GET /api/stats/dashboard", authMW(requireAdmin(http.HandlerFunc(statsHandler.Dashboard))))
	mux.Handle("GET /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("PUT /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Update))))
	mux.Handle("DELETE /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Delete))))

	return mux
}
