package http

import (
	"net/http"

	"github.com/clinitrack/clinical-record-service/internal/clinical"
	"github.com/clinitrack/clinical-record-service/internal/telemetry"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

// SetupRouter initializes all routes for the application
func SetupRouter(service clinical.ServiceInterface, metrics *telemetry.Metrics) *mux.Router {
	handler := clinical.NewHandler(service)

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("clinical-record-service"))
	r.Use(CORSMiddleware)
	r.Use(MetricsMiddleware(metrics))

	// Public health endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"clinical-record-service"}`))
	}).Methods("GET")

	// Patient routes. /patients/critical is registered before
	// /patients/{id} so "critical" is not captured as an id.
	r.HandleFunc("/patients", handler.RegisterPatient).Methods("POST")
	r.HandleFunc("/patients", handler.ListPatients).Methods("GET")
	r.HandleFunc("/patients/critical", handler.ListCriticalPatients).Methods("GET")
	r.HandleFunc("/patients/{id}", handler.GetPatient).Methods("GET")

	// Test routes
	r.HandleFunc("/patients/{id}/tests", handler.RecordTest).Methods("POST")
	r.HandleFunc("/patients/{id}/tests", handler.ListTests).Methods("GET")
	r.HandleFunc("/patients/{id}/history", handler.GetPatientHistory).Methods("GET")

	return r
}
