package clinical

import (
	"encoding/json"
	"net/http"

	"github.com/clinitrack/clinical-record-service/internal/pagination"
	"github.com/clinitrack/clinical-record-service/internal/record"
	"github.com/gorilla/mux"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type PatientSuccessResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Patient *record.Patient `json:"patient,omitempty"`
}

type PatientListResponse struct {
	Success  bool             `json:"success"`
	Patients []record.Patient `json:"patients"`
	Total    int              `json:"total"`
	Meta     *pagination.Meta `json:"meta,omitempty"`
}

type TestSuccessResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Test    *record.Test `json:"test,omitempty"`
}

type TestListResponse struct {
	Success bool          `json:"success"`
	Tests   []record.Test `json:"tests"`
	Total   int           `json:"total"`
}

type HistoryResponse struct {
	Success bool            `json:"success"`
	History *PatientHistory `json:"history,omitempty"`
}

func (h *Handler) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	var req record.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	patient, err := h.service.RegisterPatient(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "registration_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(PatientSuccessResponse{
		Success: true,
		Message: "Patient registered successfully",
		Patient: patient,
	})
}

func (h *Handler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.service.ListPatients(r.Context())
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	h.writePatientList(w, r, patients)
}

func (h *Handler) GetPatient(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Patient ID is required")
		return
	}

	patient, err := h.service.GetPatient(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PatientSuccessResponse{
		Success: true,
		Message: "Patient retrieved successfully",
		Patient: patient,
	})
}

func (h *Handler) ListCriticalPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.service.ListCriticalPatients(r.Context())
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	h.writePatientList(w, r, patients)
}

func (h *Handler) RecordTest(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID := vars["id"]
	if patientID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Patient ID is required")
		return
	}

	var req record.CreateTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	test, err := h.service.RecordTest(r.Context(), patientID, req)
	if err != nil {
		respondServiceError(w, err, "recording_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(TestSuccessResponse{
		Success: true,
		Message: "Test recorded successfully",
		Test:    test,
	})
}

func (h *Handler) ListTests(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID := vars["id"]
	if patientID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Patient ID is required")
		return
	}

	tests, err := h.service.ListTests(r.Context(), patientID)
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TestListResponse{
		Success: true,
		Tests:   tests,
		Total:   len(tests),
	})
}

func (h *Handler) GetPatientHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID := vars["id"]
	if patientID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Patient ID is required")
		return
	}

	history, err := h.service.GetPatientHistory(r.Context(), patientID)
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HistoryResponse{
		Success: true,
		History: history,
	})
}

// writePatientList returns the full ordered sequence, windowed only when
// the caller explicitly asked for a page.
func (h *Handler) writePatientList(w http.ResponseWriter, r *http.Request, patients []record.Patient) {
	total := len(patients)

	var meta *pagination.Meta
	if params, ok := pagination.ParseParams(r); ok {
		lo, hi := params.Window(total)
		patients = patients[lo:hi]
		m := params.CalculateMeta(total)
		meta = &m
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PatientListResponse{
		Success:  true,
		Patients: patients,
		Total:    total,
		Meta:     meta,
	})
}

// respondServiceError maps the store error taxonomy onto HTTP statuses:
// validation failures are the caller's input, missing patients are 404,
// everything else is internal.
func respondServiceError(w http.ResponseWriter, err error, fallbackType string) {
	switch {
	case record.IsValidation(err):
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case record.IsNotFound(err):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, fallbackType, err.Error())
	}
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}
