package http

import (
	"net/http"

	"go-clinic-booking/internal/delivery/http/handler"
	"go-clinic-booking/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                  *mux.Router
	authHandler             *handler.AuthHandler
	doctorHandler           *handler.DoctorHandler
	businessHourHandler     *handler.BusinessHourHandler
	patientHandler          *handler.PatientHandler
	treatmentRequestHandler *handler.TreatmentRequestHandler
	auditLogHandler         *handler.AuditLogHandler
	authMiddleware          *middleware.AuthMiddleware
	corsMiddleware          *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	businessHourHandler *handler.BusinessHourHandler,
	patientHandler *handler.PatientHandler,
	treatmentRequestHandler *handler.TreatmentRequestHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:                  mux.NewRouter(),
		authHandler:             authHandler,
		doctorHandler:           doctorHandler,
		businessHourHandler:     businessHourHandler,
		patientHandler:          patientHandler,
		treatmentRequestHandler: treatmentRequestHandler,
		auditLogHandler:         auditLogHandler,
		authMiddleware:          authMiddleware,
		corsMiddleware:          corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/staff", r.authHandler.CreateStaff).Methods(http.MethodPost)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Public clinic routes: browsing doctors and booking
	api.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{doctorId}/business-hours", r.businessHourHandler.GetDoctorBusinessHours).Methods(http.MethodGet)
	api.HandleFunc("/business-hours/{id}", r.businessHourHandler.GetBusinessHour).Methods(http.MethodGet)
	api.HandleFunc("/patients", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	api.HandleFunc("/treatment-requests", r.treatmentRequestHandler.CreateRequest).Methods(http.MethodPost)

	// Staff routes (staff or admin)
	staff := api.NewRoute().Subrouter()
	staff.Use(r.authMiddleware.Authenticate)
	staff.Use(middleware.RequireStaff)

	staff.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	staff.HandleFunc("/doctors/{id}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)
	staff.HandleFunc("/doctors/{id}", r.doctorHandler.DeleteDoctor).Methods(http.MethodDelete)

	staff.HandleFunc("/business-hours", r.businessHourHandler.CreateBusinessHour).Methods(http.MethodPost)
	staff.HandleFunc("/business-hours/{id}", r.businessHourHandler.UpdateBusinessHour).Methods(http.MethodPut)
	staff.HandleFunc("/business-hours/{id}", r.businessHourHandler.DeleteBusinessHour).Methods(http.MethodDelete)

	staff.HandleFunc("/patients", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	staff.HandleFunc("/patients/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	staff.HandleFunc("/patients/{id}", r.patientHandler.DeletePatient).Methods(http.MethodDelete)

	staff.HandleFunc("/treatment-requests", r.treatmentRequestHandler.ListRequests).Methods(http.MethodGet)
	staff.HandleFunc("/treatment-requests/{id}", r.treatmentRequestHandler.GetRequest).Methods(http.MethodGet)
	staff.HandleFunc("/treatment-requests/{id}/accept", r.treatmentRequestHandler.AcceptRequest).Methods(http.MethodPatch)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
