package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/frota/handlers"
	"p9e.in/frota/middleware"
	"p9e.in/frota/models"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")
	r.Handle("/token", middleware.JWTMiddleware(
		http.HandlerFunc(handlers.GetCurrentUser))).Methods("GET")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))),
	)

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)

	registerFleetRoutes(api)
	registerReportRoutes(api)

	api.HandleFunc("/files/upload", handlers.UploadFile).Methods("POST")

	// =====================================================
	// Admin Routes
	// =====================================================
	admin := api.PathPrefix("/admin").Subrouter()
	registerAdminRoutes(admin)

	return r
}

// registerFleetRoutes registers the operational resources
func registerFleetRoutes(api *mux.Router) {
	registerCRUDRoutes(api, "/vehicles", crudHandlers{
		getAll: handlers.GetAllVehicles,
		create: handlers.CreateVehicle,
		getOne: handlers.GetVehicle,
		update: handlers.UpdateVehicle,
		delete: handlers.DeleteVehicle,
	})
	api.HandleFunc("/vehicles/{id}/status", handlers.GetVehicleStatus).Methods("GET")
	api.HandleFunc("/vehicles/{id}/timeline", handlers.GetVehicleTimeline).Methods("GET")
	api.HandleFunc("/vehicles/{id}/report", handlers.GetVehicleReport).Methods("GET")

	registerCRUDRoutes(api, "/dailylogs", crudHandlers{
		getAll: handlers.GetAllDailyLogs,
		create: handlers.CreateDailyLog,
		getOne: handlers.GetDailyLog,
		update: handlers.UpdateDailyLog,
		delete: handlers.DeleteDailyLog,
	})

	registerCRUDRoutes(api, "/refuelings", crudHandlers{
		getAll: handlers.GetAllRefuelings,
		create: handlers.CreateRefueling,
		getOne: handlers.GetRefueling,
		update: handlers.UpdateRefueling,
		delete: handlers.DeleteRefueling,
	})

	registerCRUDRoutes(api, "/gasstations", crudHandlers{
		getAll: handlers.GetAllGasStations,
		create: handlers.CreateGasStation,
		getOne: handlers.GetGasStation,
		update: handlers.UpdateGasStation,
		delete: handlers.DeleteGasStation,
	})

	api.HandleFunc("/requisitions", handlers.GetAllRequisitions).Methods("GET")
	api.HandleFunc("/requisitions", handlers.CreateRequisition).Methods("POST")
	api.HandleFunc("/requisitions/{id}", handlers.GetRequisition).Methods("GET")
	api.HandleFunc("/requisitions/{id}", handlers.DeleteRequisition).Methods("DELETE")
	approvers := []string{models.RoleAdmin, models.RoleOperator}
	api.Handle("/requisitions/{id}/approve", middleware.RequireRole(approvers,
		http.HandlerFunc(handlers.ApproveRequisition))).Methods("POST")
	api.Handle("/requisitions/{id}/reject", middleware.RequireRole(approvers,
		http.HandlerFunc(handlers.RejectRequisition))).Methods("POST")

	api.HandleFunc("/users/vehicles", handlers.GetMyVehicles).Methods("GET")
}

// registerReportRoutes registers dashboards, alerts and exports
func registerReportRoutes(api *mux.Router) {
	api.HandleFunc("/dashboard", handlers.GetDashboard).Methods("GET")
	api.HandleFunc("/alerts", handlers.GetAlerts).Methods("GET")
	api.HandleFunc("/reports/consumption", handlers.GetConsumptionReport).Methods("GET")
	api.HandleFunc("/reports/refuelings/export", handlers.ExportRefuelings).Methods("GET")
}

// registerAdminRoutes registers user management, admin role only
func registerAdminRoutes(admin *mux.Router) {
	adminOnly := []string{models.RoleAdmin}
	admin.Handle("/users", middleware.RequireRole(adminOnly,
		http.HandlerFunc(handlers.GetAllUsers))).Methods("GET")
	admin.Handle("/users/{id}/active", middleware.RequireRole(adminOnly,
		http.HandlerFunc(handlers.SetUserActive))).Methods("PUT")
	admin.Handle("/users/{id}/vehicles", middleware.RequireRole(adminOnly,
		http.HandlerFunc(handlers.GetUserVehicles))).Methods("GET")
	admin.Handle("/users/{id}/vehicles", middleware.RequireRole(adminOnly,
		http.HandlerFunc(handlers.AssignUserVehicle))).Methods("POST")
	admin.Handle("/users/{id}/vehicles/{vehicleId}", middleware.RequireRole(adminOnly,
		http.HandlerFunc(handlers.UnassignUserVehicle))).Methods("DELETE")
}

type crudHandlers struct {
	getAll func(http.ResponseWriter, *http.Request)
	create func(http.ResponseWriter, *http.Request)
	getOne func(http.ResponseWriter, *http.Request)
	update func(http.ResponseWriter, *http.Request)
	delete func(http.ResponseWriter, *http.Request)
}

func registerCRUDRoutes(router *mux.Router, path string, h crudHandlers) {
	router.HandleFunc(path, h.getAll).Methods("GET")
	router.HandleFunc(path, h.create).Methods("POST")
	router.HandleFunc(path+"/{id}", h.getOne).Methods("GET")
	router.HandleFunc(path+"/{id}", h.update).Methods("PUT")
	router.HandleFunc(path+"/{id}", h.delete).Methods("DELETE")
}
