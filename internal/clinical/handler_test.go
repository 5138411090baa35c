package clinical

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clinitrack/clinical-record-service/internal/record"
	"github.com/gorilla/mux"
)

// mockService implements ServiceInterface for testing
type mockService struct {
	registerPatientFunc      func(ctx context.Context, req record.CreatePatientRequest) (*record.Patient, error)
	listPatientsFunc         func(ctx context.Context) ([]record.Patient, error)
	getPatientFunc           func(ctx context.Context, id string) (*record.Patient, error)
	recordTestFunc           func(ctx context.Context, patientID string, req record.CreateTestRequest) (*record.Test, error)
	listTestsFunc            func(ctx context.Context, patientID string) ([]record.Test, error)
	getPatientHistoryFunc    func(ctx context.Context, patientID string) (*PatientHistory, error)
	listCriticalPatientsFunc func(ctx context.Context) ([]record.Patient, error)
}

func (m *mockService) RegisterPatient(ctx context.Context, req record.CreatePatientRequest) (*record.Patient, error) {
	if m.registerPatientFunc != nil {
		return m.registerPatientFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) ListPatients(ctx context.Context) ([]record.Patient, error) {
	if m.listPatientsFunc != nil {
		return m.listPatientsFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) GetPatient(ctx context.Context, id string) (*record.Patient, error) {
	if m.getPatientFunc != nil {
		return m.getPatientFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) RecordTest(ctx context.Context, patientID string, req record.CreateTestRequest) (*record.Test, error) {
	if m.recordTestFunc != nil {
		return m.recordTestFunc(ctx, patientID, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) ListTests(ctx context.Context, patientID string) ([]record.Test, error) {
	if m.listTestsFunc != nil {
		return m.listTestsFunc(ctx, patientID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) GetPatientHistory(ctx context.Context, patientID string) (*PatientHistory, error) {
	if m.getPatientHistoryFunc != nil {
		return m.getPatientHistoryFunc(ctx, patientID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) ListCriticalPatients(ctx context.Context) ([]record.Patient, error) {
	if m.listCriticalPatientsFunc != nil {
		return m.listCriticalPatientsFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func TestHandlerRegisterPatient_Success(t *testing.T) {
	mockSvc := &mockService{
		registerPatientFunc: func(ctx context.Context, req record.CreatePatientRequest) (*record.Patient, error) {
			return &record.Patient{
				ID:     "patient-123",
				Name:   req.Name,
				Age:    *req.Age,
				Gender: req.Gender,
			}, nil
		},
	}
	handler := NewHandler(mockSvc)

	body, _ := json.Marshal(map[string]interface{}{
		"name":   "Alice",
		"age":    45,
		"gender": "F",
	})
	req := httptest.NewRequest(http.MethodPost, "/patients", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.RegisterPatient(rr, req)

	if rr.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rr.Code)
	}

	var response PatientSuccessResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !response.Success {
		t.Error("Expected success to be true")
	}
	if response.Patient.Name != "Alice" {
		t.Errorf("Expected name Alice, got %s", response.Patient.Name)
	}
}

func TestHandlerRegisterPatient_ValidationError(t *testing.T) {
	mockSvc := &mockService{
		registerPatientFunc: func(ctx context.Context, req record.CreatePatientRequest) (*record.Patient, error) {
			return nil, record.ErrMissingName
		},
	}
	handler := NewHandler(mockSvc)

	req := httptest.NewRequest(http.MethodPost, "/patients", bytes.NewReader([]byte(`{"age": 45}`)))
	rr := httptest.NewRecorder()
	handler.RegisterPatient(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestHandlerRegisterPatient_InvalidJSON(t *testing.T) {
	handler := NewHandler(&mockService{})

	req := httptest.NewRequest(http.MethodPost, "/patients", bytes.NewReader([]byte(`{not json`)))
	rr := httptest.NewRecorder()
	handler.RegisterPatient(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestHandlerGetPatient_NotFound(t *testing.T) {
	mockSvc := &mockService{
		getPatientFunc: func(ctx context.Context, id string) (*record.Patient, error) {
			return nil, record.ErrPatientNotFound
		},
	}
	handler := NewHandler(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/patients/nonexistent", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "nonexistent"})

	rr := httptest.NewRecorder()
	handler.GetPatient(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}

func TestHandlerListPatients_FullSequence(t *testing.T) {
	mockSvc := &mockService{
		listPatientsFunc: func(ctx context.Context) ([]record.Patient, error) {
			return []record.Patient{
				{ID: "p1", Name: "Alice"},
				{ID: "p2", Name: "Bob"},
				{ID: "p3", Name: "Carol"},
			}, nil
		},
	}
	handler := NewHandler(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	rr := httptest.NewRecorder()
	handler.ListPatients(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var response PatientListResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Total != 3 || len(response.Patients) != 3 {
		t.Errorf("Expected full sequence of 3, got total %d with %d patients", response.Total, len(response.Patients))
	}
	if response.Meta != nil {
		t.Error("Expected no pagination meta without page params")
	}
	if response.Patients[0].Name != "Alice" || response.Patients[2].Name != "Carol" {
		t.Error("Expected insertion order to be preserved")
	}
}

func TestHandlerListPatients_Windowed(t *testing.T) {
	mockSvc := &mockService{
		listPatientsFunc: func(ctx context.Context) ([]record.Patient, error) {
			return []record.Patient{
				{ID: "p1"}, {ID: "p2"}, {ID: "p3"},
			}, nil
		},
	}
	handler := NewHandler(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/patients?page=2&limit=2", nil)
	rr := httptest.NewRecorder()
	handler.ListPatients(rr, req)

	var response PatientListResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Patients) != 1 || response.Patients[0].ID != "p3" {
		t.Errorf("Expected window [p3], got %+v", response.Patients)
	}
	if response.Total != 3 {
		t.Errorf("Expected total 3, got %d", response.Total)
	}
	if response.Meta == nil || response.Meta.TotalPages != 2 || !response.Meta.HasPrevious {
		t.Errorf("Unexpected pagination meta: %+v", response.Meta)
	}
}

func TestHandlerListCriticalPatients(t *testing.T) {
	mockSvc := &mockService{
		listCriticalPatientsFunc: func(ctx context.Context) ([]record.Patient, error) {
			return []record.Patient{{ID: "p1", Name: "Alice"}}, nil
		},
	}
	handler := NewHandler(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/patients/critical", nil)
	rr := httptest.NewRecorder()
	handler.ListCriticalPatients(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var response PatientListResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Total != 1 || response.Patients[0].Name != "Alice" {
		t.Errorf("Unexpected critical list: %+v", response)
	}
}

func TestHandlerRecordTest_Success(t *testing.T) {
	mockSvc := &mockService{
		recordTestFunc: func(ctx context.Context, patientID string, req record.CreateTestRequest) (*record.Test, error) {
			return &record.Test{
				ID:        "test-123",
				PatientID: patientID,
				TestType:  req.TestType,
				TestDate:  req.TestDate,
				Result:    req.Result,
			}, nil
		},
	}
	handler := NewHandler(mockSvc)

	body, _ := json.Marshal(record.CreateTestRequest{
		TestType: "blood",
		TestDate: "2024-01-01",
		Result:   "critical",
	})
	req := httptest.NewRequest(http.MethodPost, "/patients/patient-123/tests", bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": "patient-123"})

	rr := httptest.NewRecorder()
	handler.RecordTest(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rr.Code)
	}

	var response TestSuccessResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Test.PatientID != "patient-123" {
		t.Errorf("Expected patient ID patient-123, got %s", response.Test.PatientID)
	}
}

func TestHandlerRecordTest_PatientNotFound(t *testing.T) {
	mockSvc := &mockService{
		recordTestFunc: func(ctx context.Context, patientID string, req record.CreateTestRequest) (*record.Test, error) {
			return nil, record.ErrPatientNotFound
		},
	}
	handler := NewHandler(mockSvc)

	body, _ := json.Marshal(record.CreateTestRequest{
		TestType: "blood",
		TestDate: "2024-01-01",
		Result:   "normal",
	})
	req := httptest.NewRequest(http.MethodPost, "/patients/nonexistent/tests", bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": "nonexistent"})

	rr := httptest.NewRecorder()
	handler.RecordTest(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}

func TestHandlerListTests(t *testing.T) {
	mockSvc := &mockService{
		listTestsFunc: func(ctx context.Context, patientID string) ([]record.Test, error) {
			return []record.Test{
				{ID: "t1", PatientID: patientID, Result: "normal"},
				{ID: "t2", PatientID: patientID, Result: "critical"},
			}, nil
		},
	}
	handler := NewHandler(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/patients/p1/tests", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "p1"})

	rr := httptest.NewRecorder()
	handler.ListTests(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var response TestListResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Total != 2 || response.Tests[0].ID != "t1" {
		t.Errorf("Unexpected test list: %+v", response)
	}
}

func TestHandlerGetPatientHistory(t *testing.T) {
	mockSvc := &mockService{
		getPatientHistoryFunc: func(ctx context.Context, patientID string) (*PatientHistory, error) {
			return &PatientHistory{
				Patient: record.Patient{ID: patientID, Name: "Alice"},
				Tests:   []record.Test{{ID: "t1", PatientID: patientID}},
			}, nil
		},
	}
	handler := NewHandler(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/patients/p1/history", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "p1"})

	rr := httptest.NewRecorder()
	handler.GetPatientHistory(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var response HistoryResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.History.Patient.Name != "Alice" || len(response.History.Tests) != 1 {
		t.Errorf("Unexpected history: %+v", response.History)
	}
}

func TestHandlerGetPatientHistory_NotFound(t *testing.T) {
	mockSvc := &mockService{
		getPatientHistoryFunc: func(ctx context.Context, patientID string) (*PatientHistory, error) {
			return nil, record.ErrPatientNotFound
		},
	}
	handler := NewHandler(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/patients/nonexistent/history", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "nonexistent"})

	rr := httptest.NewRecorder()
	handler.GetPatientHistory(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}
